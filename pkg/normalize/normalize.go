// Package normalize turns declared registry records into canonical records.
//
// Normalization never fails: every input record produces a canonical record,
// and anything questionable about it is returned as a warning diagnostic.
// Unknown categories fall back to the layout's default category instead of
// dropping the record.
package normalize

import (
	"context"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/logging"
	"github.com/agentstation/roster/pkg/registry"
	"github.com/agentstation/roster/pkg/report"
)

// Normalizer resolves categories and canonical paths against a layout.
type Normalizer struct {
	layout           registry.Layout
	descriptionLimit int
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithDescriptionLimit sets the rune count past which descriptions are
// reported. Non-positive values keep the default.
func WithDescriptionLimit(limit int) Option {
	return func(n *Normalizer) {
		if limit > 0 {
			n.descriptionLimit = limit
		}
	}
}

// New creates a Normalizer for the given layout.
func New(layout registry.Layout, opts ...Option) *Normalizer {
	n := &Normalizer{
		layout:           layout,
		descriptionLimit: constants.MaxDescriptionLength,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize resolves one record. The input is not modified.
func (n *Normalizer) Normalize(rec registry.Record) (registry.CanonicalRecord, []report.Diagnostic) {
	var diags []report.Diagnostic

	key, known := n.resolveCategory(rec.Category)
	if !known {
		diags = append(diags, report.Warning(report.CodeUnknownCategory, rec.Name, rec.Path,
			"category %q is unknown, using %q", rec.Category, key))
	}

	declared, unsafe := cleanPath(rec.Path)
	if unsafe {
		diags = append(diags, report.Warning(report.CodeUnsafePath, rec.Name, rec.Path,
			"path leaves the tree, keeping only %q", declared))
	}
	if declared == "" {
		declared = n.synthesize(rec.Name)
		diags = append(diags, report.Warning(report.CodeSynthesizedPath, rec.Name, "",
			"path is empty, using %q", declared))
	}

	if count := utf8.RuneCountInString(rec.Description); count > n.descriptionLimit {
		diags = append(diags, report.Warning(report.CodeLongDescription, rec.Name, rec.Path,
			"description is %d characters, limit is %d", count, n.descriptionLimit))
	}

	out := registry.CanonicalRecord{
		Record:        rec,
		CategoryKey:   key,
		CanonicalPath: n.canonicalPath(declared, key),
	}
	out.Path = declared
	if len(rec.Tools) > 0 {
		out.Tools = append([]string(nil), rec.Tools...)
	}
	return out, diags
}

// NormalizeAll normalizes records in order.
func (n *Normalizer) NormalizeAll(ctx context.Context, records []registry.Record) ([]registry.CanonicalRecord, []report.Diagnostic) {
	logger := logging.FromContext(ctx)

	out := make([]registry.CanonicalRecord, 0, len(records))
	var diags []report.Diagnostic
	for _, rec := range records {
		canonical, recDiags := n.Normalize(rec)
		out = append(out, canonical)
		diags = append(diags, recDiags...)

		logger.Debug().
			Str("key", rec.Name).
			Str("category", canonical.CategoryKey).
			Str("path", canonical.CanonicalPath).
			Msg("normalized record")
	}
	return out, diags
}

// resolveCategory substitutes aliases and falls back to the default
// category. The bool is false when the fallback was used.
func (n *Normalizer) resolveCategory(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		for _, candidate := range []string{trimmed, strings.ToLower(trimmed), Kebab(trimmed)} {
			key := n.layout.Aliases.Resolve(candidate)
			if n.layout.IsKnown(key) {
				return key, true
			}
		}
	}
	return n.layout.DefaultCategory, false
}

// synthesize builds a filename from the identity key.
func (n *Normalizer) synthesize(name string) string {
	stem := Kebab(name)
	if stem == "" {
		stem = constants.UnnamedStem
	}
	return Basename(stem + "." + strings.TrimPrefix(n.layout.Extension, "."))
}

// canonicalPath places the normalized basename under the category
// directory. A declared path already inside that directory keeps its
// directory as-is.
func (n *Normalizer) canonicalPath(declared, key string) string {
	dir := n.layout.Dir(key)
	declaredDir, file := path.Split(declared)
	declaredDir = path.Clean(declaredDir)
	base := Basename(file)

	if inDir(declaredDir, dir) {
		return path.Join(declaredDir, base)
	}
	return path.Join(dir, base)
}

// inDir reports whether dir is target or below it.
func inDir(dir, target string) bool {
	if target == "." {
		return dir == "."
	}
	return dir == target || strings.HasPrefix(dir, target+"/")
}

// cleanPath converts a declared path to a clean relative slash path. Paths
// that are absolute or climb out of the tree are cut down to their
// basename and reported as unsafe.
func cleanPath(p string) (string, bool) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return "", false
	}
	cleaned := path.Clean(p)
	unsafe := strings.HasPrefix(p, "/") || cleaned == ".." || strings.HasPrefix(cleaned, "../")
	if unsafe {
		base := path.Base(cleaned)
		if base == ".." || base == "/" || base == "." {
			base = ""
		}
		return base, true
	}
	if cleaned == "." {
		return "", false
	}
	return cleaned, false
}
