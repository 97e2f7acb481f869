// Package dedupe removes records that cannot coexist in one registry.
//
// Identity keys must be unique: the first record with a key wins and later
// ones are removed, never merged. Records without a key are rejected.
// Distinct records that canonicalize to the same path are kept, with a
// numeric suffix added to the later record's file stem.
package dedupe

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/agentstation/roster/pkg/logging"
	"github.com/agentstation/roster/pkg/registry"
	"github.com/agentstation/roster/pkg/report"
)

// Reason explains why a record was removed.
type Reason string

// Removal reasons.
const (
	ReasonDuplicateIdentity Reason = "duplicate-identity"
	ReasonMissingIdentity   Reason = "missing-identity"
)

// Removed is a record excluded from the accepted set.
type Removed struct {
	Record registry.CanonicalRecord
	Reason Reason
	// Index is the record's position in the input
	Index int
}

// Result is the outcome of Resolve.
type Result struct {
	Accepted    []registry.CanonicalRecord
	Removed     []Removed
	Diagnostics []report.Diagnostic
}

// Resolve returns the accepted records in input order. The input slice is
// not modified.
func Resolve(ctx context.Context, records []registry.CanonicalRecord) Result {
	logger := logging.FromContext(ctx)

	res := Result{Accepted: make([]registry.CanonicalRecord, 0, len(records))}
	firstSeen := make(map[string]int, len(records))
	owners := make(map[string]string, len(records))

	for i, rec := range records {
		key := strings.TrimSpace(rec.Name)
		if key == "" {
			res.Removed = append(res.Removed, Removed{Record: rec, Reason: ReasonMissingIdentity, Index: i})
			res.Diagnostics = append(res.Diagnostics, report.Error(report.CodeMissingIdentity, "", rec.Path,
				"record %d has no identity key and was rejected", i+1))
			continue
		}

		if first, ok := firstSeen[key]; ok {
			res.Removed = append(res.Removed, Removed{Record: rec, Reason: ReasonDuplicateIdentity, Index: i})
			res.Diagnostics = append(res.Diagnostics, report.Warning(report.CodeDuplicateIdentity, key, rec.Path,
				"duplicate of record %d, removed", first+1))
			logger.Debug().Str("key", key).Int("index", i).Msg("dropped duplicate identity")
			continue
		}
		firstSeen[key] = i

		if owner, taken := owners[rec.CanonicalPath]; taken {
			original := rec.CanonicalPath
			rec.CanonicalPath = disambiguate(original, owners)
			res.Diagnostics = append(res.Diagnostics, report.Warning(report.CodePathCollision, key, original,
				"canonical path already claimed by %q, using %q", owner, rec.CanonicalPath))
		}
		owners[rec.CanonicalPath] = key
		res.Accepted = append(res.Accepted, rec)
	}
	return res
}

// disambiguate appends -2, -3, ... to the stem until the path is free.
func disambiguate(p string, owners map[string]string) string {
	dir, file := path.Split(p)
	ext := path.Ext(file)
	stem := strings.TrimSuffix(file, ext)
	for n := 2; ; n++ {
		candidate := dir + fmt.Sprintf("%s-%d%s", stem, n, ext)
		if _, taken := owners[candidate]; !taken {
			return candidate
		}
	}
}
