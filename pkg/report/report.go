// Package report collects the diagnostics and counts of a reconciliation
// run and renders them as plain text: one line per diagnostic followed by a
// summary line of integer counts.
package report

import (
	"fmt"
	"io"
	"strings"
)

// Severity grades a diagnostic.
type Severity string

// Severity values.
const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Code identifies the condition a diagnostic reports.
type Code string

// Normalizer codes.
const (
	CodeUnknownCategory Code = "unknown-category"
	CodeSynthesizedPath Code = "synthesized-path"
	CodeLongDescription Code = "long-description"
	CodeUnsafePath      Code = "unsafe-path"
)

// DuplicateResolver codes.
const (
	CodeDuplicateIdentity Code = "duplicate-identity"
	CodeMissingIdentity   Code = "missing-identity"
	CodePathCollision     Code = "path-collision"
)

// MovePlanner and MoveExecutor codes.
const (
	CodePlannedMove Code = "planned-move"
	CodeMoved       Code = "moved"
	CodeMoveFailed  Code = "move-failed"
	CodeUnresolved  Code = "unresolved"
)

// RescueMatcher codes.
const (
	CodeRescued      Code = "rescued"
	CodeAmbiguous    Code = "ambiguous"
	CodeMissing      Code = "missing"
	CodeRescueFailed Code = "rescue-failed"
)

// Diagnostic is one reported condition.
type Diagnostic struct {
	Severity   Severity `json:"severity" yaml:"severity"`
	Code       Code     `json:"code" yaml:"code"`
	Key        string   `json:"key,omitempty" yaml:"key,omitempty"`
	Path       string   `json:"path,omitempty" yaml:"path,omitempty"`
	Message    string   `json:"message" yaml:"message"`
	Candidates []string `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

// Warning builds a warning diagnostic.
func Warning(code Code, key, path, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Code: code, Key: key, Path: path, Message: fmt.Sprintf(format, args...)}
}

// Info builds an informational diagnostic.
func Info(code Code, key, path, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityInfo, Code: code, Key: key, Path: path, Message: fmt.Sprintf(format, args...)}
}

// Error builds an error diagnostic. Error diagnostics never stop a run.
func Error(code Code, key, path, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityError, Code: code, Key: key, Path: path, Message: fmt.Sprintf(format, args...)}
}

// String renders the diagnostic as a single report line.
func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", d.Severity, d.Code)
	if d.Key != "" {
		fmt.Fprintf(&b, " [%s]", d.Key)
	}
	if d.Path != "" {
		fmt.Fprintf(&b, " %s", d.Path)
	}
	if d.Message != "" {
		fmt.Fprintf(&b, ": %s", d.Message)
	}
	if len(d.Candidates) > 0 {
		fmt.Fprintf(&b, " (candidates: %s)", strings.Join(d.Candidates, ", "))
	}
	return b.String()
}

// Kind selects which counts the summary line shows.
type Kind string

// Report kinds.
const (
	KindLint   Kind = "lint"
	KindRescue Kind = "rescue"
)

// Summary holds the integer counts of a run.
type Summary struct {
	Total      int `json:"total" yaml:"total"`
	Kept       int `json:"kept" yaml:"kept"`
	Removed    int `json:"removed" yaml:"removed"`
	Planned    int `json:"planned" yaml:"planned"`
	Moved      int `json:"moved" yaml:"moved"`
	Skipped    int `json:"skipped" yaml:"skipped"`
	Unresolved int `json:"unresolved" yaml:"unresolved"`
	Missing    int `json:"missing" yaml:"missing"`
	Ambiguous  int `json:"ambiguous" yaml:"ambiguous"`
	Failed     int `json:"failed" yaml:"failed"`
}

// Line renders the counts that apply to the given kind of run.
func (s Summary) Line(kind Kind) string {
	if kind == KindRescue {
		return fmt.Sprintf("total=%d moved=%d skipped=%d missing=%d ambiguous=%d failed=%d",
			s.Total, s.Moved, s.Skipped, s.Missing, s.Ambiguous, s.Failed)
	}
	return fmt.Sprintf("total=%d kept=%d removed=%d planned=%d moved=%d skipped=%d unresolved=%d failed=%d",
		s.Total, s.Kept, s.Removed, s.Planned, s.Moved, s.Skipped, s.Unresolved, s.Failed)
}

// Report is the accumulated outcome of a run.
type Report struct {
	Kind        Kind         `json:"kind" yaml:"kind"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	Summary     Summary      `json:"summary" yaml:"summary"`
}

// New creates an empty report.
func New(kind Kind) *Report {
	return &Report{Kind: kind, Diagnostics: []Diagnostic{}}
}

// Add appends diagnostics in order.
func (r *Report) Add(diags ...Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, diags...)
}

// Count returns how many diagnostics carry the given code.
func (r *Report) Count(code Code) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Code == code {
			n++
		}
	}
	return n
}

// Filter returns the diagnostics at the given severity.
func (r *Report) Filter(severity Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == severity {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any error diagnostic was recorded.
func (r *Report) HasErrors() bool {
	return len(r.Filter(SeverityError)) > 0
}

// WriteText writes one line per diagnostic and the summary line.
func (r *Report) WriteText(w io.Writer) error {
	for _, d := range r.Diagnostics {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, r.Summary.Line(r.Kind))
	return err
}
