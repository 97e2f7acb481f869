package normalize_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster/pkg/normalize"
	"github.com/agentstation/roster/pkg/registry"
	"github.com/agentstation/roster/pkg/report"
)

func codes(diags []report.Diagnostic) []report.Code {
	out := make([]report.Code, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestNormalize(t *testing.T) {
	n := normalize.New(registry.DefaultLayout())

	tests := []struct {
		name         string
		record       registry.Record
		wantCategory string
		wantPath     string
		wantDeclared string
		wantCodes    []report.Code
	}{
		{
			name:         "alias resolves to core development",
			record:       registry.Record{Name: "foo", Category: "engineering", Path: "foo.md"},
			wantCategory: "core-development",
			wantPath:     "categories/01-core-development/foo.md",
			wantDeclared: "foo.md",
			wantCodes:    []report.Code{},
		},
		{
			name:         "basename is kebab cased",
			record:       registry.Record{Name: "my-file", Category: "core-development", Path: "My File.md"},
			wantCategory: "core-development",
			wantPath:     "categories/01-core-development/my-file.md",
			wantDeclared: "My File.md",
			wantCodes:    []report.Code{},
		},
		{
			name:         "unknown category falls back to default",
			record:       registry.Record{Name: "oddball", Category: "misc", Path: "oddball.md"},
			wantCategory: "specialized-domains",
			wantPath:     "categories/07-specialized-domains/oddball.md",
			wantDeclared: "oddball.md",
			wantCodes:    []report.Code{report.CodeUnknownCategory},
		},
		{
			name:         "empty category falls back to default",
			record:       registry.Record{Name: "blank", Path: "blank.md"},
			wantCategory: "specialized-domains",
			wantPath:     "categories/07-specialized-domains/blank.md",
			wantDeclared: "blank.md",
			wantCodes:    []report.Code{report.CodeUnknownCategory},
		},
		{
			name:         "empty path is synthesized from the identity key",
			record:       registry.Record{Name: "API Designer", Category: "core-development"},
			wantCategory: "core-development",
			wantPath:     "categories/01-core-development/api-designer.md",
			wantDeclared: "api-designer.md",
			wantCodes:    []report.Code{report.CodeSynthesizedPath},
		},
		{
			name:         "directory inside the category is preserved",
			record:       registry.Record{Name: "deep", Category: "data-ai", Path: "categories/05-data-ai/ML Ops/Deep Learner.md"},
			wantCategory: "data-ai",
			wantPath:     "categories/05-data-ai/ML Ops/deep-learner.md",
			wantDeclared: "categories/05-data-ai/ML Ops/Deep Learner.md",
			wantCodes:    []report.Code{},
		},
		{
			name:         "wrong category directory is replaced",
			record:       registry.Record{Name: "moved", Category: "infra", Path: "categories/01-core-development/moved.md"},
			wantCategory: "infrastructure",
			wantPath:     "categories/03-infrastructure/moved.md",
			wantDeclared: "categories/01-core-development/moved.md",
			wantCodes:    []report.Code{},
		},
		{
			name:         "root category lives in the root directory",
			record:       registry.Record{Name: "readme", Category: "root", Path: "docs/README.md"},
			wantCategory: "root",
			wantPath:     "readme.md",
			wantDeclared: "docs/README.md",
			wantCodes:    []report.Code{},
		},
		{
			name:         "category spelling is case insensitive",
			record:       registry.Record{Name: "x", Category: "Core Development", Path: "./x.md"},
			wantCategory: "core-development",
			wantPath:     "categories/01-core-development/x.md",
			wantDeclared: "x.md",
			wantCodes:    []report.Code{},
		},
		{
			name:         "escaping path is cut to its basename",
			record:       registry.Record{Name: "esc", Category: "qa", Path: "../../etc/esc.md"},
			wantCategory: "quality-security",
			wantPath:     "categories/04-quality-security/esc.md",
			wantDeclared: "esc.md",
			wantCodes:    []report.Code{report.CodeUnsafePath},
		},
		{
			name:         "backslashes are treated as separators",
			record:       registry.Record{Name: "win", Category: "dx", Path: `categories\06-developer-experience\Win Tool.md`},
			wantCategory: "developer-experience",
			wantPath:     "categories/06-developer-experience/win-tool.md",
			wantDeclared: "categories/06-developer-experience/Win Tool.md",
			wantCodes:    []report.Code{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := n.Normalize(tt.record)
			assert.Equal(t, tt.wantCategory, got.CategoryKey)
			assert.Equal(t, tt.wantPath, got.CanonicalPath)
			assert.Equal(t, tt.wantDeclared, got.Path)
			assert.Equal(t, tt.wantCodes, codes(diags))
			assert.Equal(t, tt.record.Category, got.Category, "declared category is kept on the record")
		})
	}
}

func TestNormalizeDescriptionLength(t *testing.T) {
	n := normalize.New(registry.DefaultLayout())

	_, diags := n.Normalize(registry.Record{Name: "a", Category: "qa", Path: "a.md", Description: strings.Repeat("é", 160)})
	assert.Empty(t, diags, "160 runes is within the limit")

	got, diags := n.Normalize(registry.Record{Name: "a", Category: "qa", Path: "a.md", Description: strings.Repeat("x", 161)})
	require.Len(t, diags, 1)
	assert.Equal(t, report.CodeLongDescription, diags[0].Code)
	assert.Equal(t, report.SeverityWarning, diags[0].Severity)
	assert.Equal(t, "categories/04-quality-security/a.md", got.CanonicalPath, "long descriptions are never rejected")

	short := normalize.New(registry.DefaultLayout(), normalize.WithDescriptionLimit(10))
	_, diags = short.Normalize(registry.Record{Name: "a", Category: "qa", Path: "a.md", Description: "eleven char"})
	assert.Equal(t, []report.Code{report.CodeLongDescription}, codes(diags))
}

func TestNormalizeDocumentTables(t *testing.T) {
	doc := &registry.Document{
		Categories: registry.CategoryTable{"custom": "11-custom"},
		Aliases:    registry.AliasTable{"legacy": "custom"},
	}
	n := normalize.New(registry.DefaultLayout().ForDocument(doc))

	got, diags := n.Normalize(registry.Record{Name: "old", Category: "legacy", Path: "old.md"})
	assert.Empty(t, diags)
	assert.Equal(t, "custom", got.CategoryKey)
	assert.Equal(t, "categories/11-custom/old.md", got.CanonicalPath)
}

func TestNormalizeAllPreservesOrderAndInput(t *testing.T) {
	records := []registry.Record{
		{Name: "b", Category: "engineering", Path: "B.md", Tools: []string{"Read"}},
		{Name: "a", Category: "nope", Path: ""},
	}
	n := normalize.New(registry.DefaultLayout())

	got, diags := n.NormalizeAll(context.Background(), records)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Name)
	assert.Equal(t, "a", got[1].Name)
	assert.Equal(t, []report.Code{report.CodeUnknownCategory, report.CodeSynthesizedPath}, codes(diags))

	got[0].Tools[0] = "Write"
	assert.Equal(t, "Read", records[0].Tools[0])
	assert.Equal(t, "", records[1].Path)
}

func TestNormalizeIdempotent(t *testing.T) {
	n := normalize.New(registry.DefaultLayout())
	records := []registry.Record{
		{Name: "one", Category: "engineering", Path: "One Thing.md"},
		{Name: "two", Category: "root", Path: "x/Two.md"},
		{Name: "three", Category: "unknown", Path: ""},
	}

	first, _ := n.NormalizeAll(context.Background(), records)
	again := make([]registry.Record, 0, len(first))
	for _, c := range first {
		again = append(again, c.Canonical())
	}
	second, diags := n.NormalizeAll(context.Background(), again)

	assert.Empty(t, diags)
	for i := range first {
		assert.Equal(t, first[i].CanonicalPath, second[i].CanonicalPath)
		assert.Equal(t, second[i].CanonicalPath, second[i].Path, "canonical records do not move again")
	}
}
