package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster/pkg/report"
)

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name string
		diag report.Diagnostic
		want string
	}{
		{
			name: "warning with key and path",
			diag: report.Warning(report.CodeUnknownCategory, "api-designer", "a.md", "category %q is unknown", "misc"),
			want: `warning unknown-category [api-designer] a.md: category "misc" is unknown`,
		},
		{
			name: "candidates are listed",
			diag: report.Diagnostic{
				Severity:   report.SeverityWarning,
				Code:       report.CodeAmbiguous,
				Path:       "reviewer.md",
				Message:    "2 candidates",
				Candidates: []string{"a/reviewer.md", "b/reviewer.md"},
			},
			want: "warning ambiguous reviewer.md: 2 candidates (candidates: a/reviewer.md, b/reviewer.md)",
		},
		{
			name: "error without path",
			diag: report.Error(report.CodeMissingIdentity, "", "", "record 3 has no name"),
			want: "error missing-identity: record 3 has no name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diag.String())
		})
	}
}

func TestReportWriteText(t *testing.T) {
	r := report.New(report.KindLint)
	r.Add(
		report.Warning(report.CodeDuplicateIdentity, "x", "b.md", "duplicate of record 1"),
		report.Info(report.CodePlannedMove, "y", "y.md", "move to categories/01-core-development/y.md"),
	)
	r.Summary = report.Summary{Total: 3, Kept: 2, Removed: 1, Planned: 1}

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "total=3 kept=2 removed=1 planned=1 moved=0 skipped=0 unresolved=0 failed=0", lines[2])

	assert.Equal(t, 1, r.Count(report.CodeDuplicateIdentity))
	assert.Len(t, r.Filter(report.SeverityWarning), 1)
	assert.False(t, r.HasErrors())
}

func TestSummaryLineRescue(t *testing.T) {
	s := report.Summary{Total: 4, Moved: 1, Skipped: 1, Missing: 1, Ambiguous: 1}
	assert.Equal(t, "total=4 moved=1 skipped=1 missing=1 ambiguous=1 failed=0", s.Line(report.KindRescue))
}
