// Package rescue recovers files whose canonical location is empty by
// finding them elsewhere in the tree by basename.
//
// Rescue only acts on a unique match. A basename found in several places is
// reported with every candidate and left alone, and a basename found nowhere
// is reported missing; the matcher never guesses.
package rescue

import (
	"context"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
	"github.com/agentstation/roster/pkg/registry"
	"github.com/agentstation/roster/pkg/report"
)

// Result holds the counts and diagnostics of a rescue pass.
type Result struct {
	Moved       int
	Skipped     int
	Ambiguous   int
	Missing     int
	Failed      int
	Diagnostics []report.Diagnostic
}

// Matcher relocates records' files by unique basename match.
type Matcher struct {
	fs     afero.Fs
	dryRun bool
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithDryRun makes the matcher report the moves it would make without
// touching the tree.
func WithDryRun(dryRun bool) Option {
	return func(m *Matcher) {
		m.dryRun = dryRun
	}
}

// NewMatcher creates a matcher for the tree rooted at fs.
func NewMatcher(fs afero.Fs, opts ...Option) *Matcher {
	m := &Matcher{fs: fs}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run resolves each record whose canonical path does not exist against idx.
// A file already sitting at any record's canonical path belongs to that
// record and is never a candidate. A moved candidate is removed from idx so
// it cannot satisfy a later record. The returned error is only non-nil when
// ctx is cancelled.
func (m *Matcher) Run(ctx context.Context, records []registry.CanonicalRecord, idx Index) (Result, error) {
	logger := logging.FromContext(ctx)
	var res Result

	for _, rec := range records {
		idx.remove(rec.CanonicalPath)
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		target := rec.CanonicalPath

		present, err := afero.Exists(m.fs, filepath.FromSlash(target))
		if err != nil {
			res.Failed++
			res.Diagnostics = append(res.Diagnostics, report.Warning(report.CodeRescueFailed, rec.Name, target,
				"cannot check target: %v", errors.WrapIO("stat", target, err)))
			continue
		}
		if present {
			res.Skipped++
			logger.Debug().Str("key", rec.Name).Str("target", target).Msg("target present, skipped")
			continue
		}

		candidates := idx.Lookup(target)
		switch len(candidates) {
		case 0:
			res.Missing++
			res.Diagnostics = append(res.Diagnostics, report.Warning(report.CodeMissing, rec.Name, target,
				"no file named %s in the tree", path.Base(target)))
		case 1:
			source := candidates[0]
			if err := m.rename(source, target); err != nil {
				res.Failed++
				res.Diagnostics = append(res.Diagnostics, report.Warning(report.CodeRescueFailed, rec.Name, source,
					"move to %s failed: %v", target, err))
				continue
			}
			idx.remove(source)
			res.Moved++
			verb := "rescued"
			if m.dryRun {
				verb = "would rescue"
			}
			res.Diagnostics = append(res.Diagnostics, report.Info(report.CodeRescued, rec.Name, source,
				"%s to %s", verb, target))
		default:
			res.Ambiguous++
			d := report.Warning(report.CodeAmbiguous, rec.Name, target,
				"%d files named %s, not moving any", len(candidates), path.Base(target))
			d.Candidates = append([]string(nil), candidates...)
			res.Diagnostics = append(res.Diagnostics, d)
		}
	}
	return res, nil
}

func (m *Matcher) rename(from, to string) error {
	if m.dryRun {
		return nil
	}
	dir := filepath.FromSlash(path.Dir(to))
	if err := m.fs.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", dir, err)
	}
	if err := m.fs.Rename(filepath.FromSlash(from), filepath.FromSlash(to)); err != nil {
		return errors.WrapIO("rename", from, err)
	}
	return nil
}
