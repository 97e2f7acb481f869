package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster/internal/testsupport"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/registry"
	"github.com/agentstation/roster/pkg/report"
)

const registryYAML = `agents:
- name: foo
  category: engineering
  path: foo.md
- name: My File
  category: dx
  path: My File.md
- name: foo
  category: qa
  path: other.md
`

// run executes the CLI against args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app, err := New("1.2.3", "abc123", "2025-01-01", "test", WithOutput(&out, &errOut))
	require.NoError(t, err)
	err = app.Execute(context.Background(), args)
	return out.String(), err
}

func setup(t *testing.T, files map[string]string) string {
	t.Helper()
	isolate(t)
	t.Setenv("ROSTER_LOG_OUTPUT", "discard")
	_, root := testsupport.NewTree(t, files)
	return root
}

func TestNew(t *testing.T) {
	isolate(t)
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.Equal(t, "text", app.OutputFormat())
	assert.Equal(t, ".md", app.Suffix())

	r, err := app.Reconciler()
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestNewRejectsNilConfig(t *testing.T) {
	isolate(t)
	_, err := New("dev", "", "", "", WithConfig(nil))
	assert.True(t, errors.IsValidationError(err))
}

func TestVersionCommand(t *testing.T) {
	setup(t, nil)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "roster version 1.2.3")
	assert.Contains(t, out, "commit: abc123")
}

func TestLintRequiresRegistryArgument(t *testing.T) {
	setup(t, nil)
	_, err := run(t, "lint")
	assert.Error(t, err)
}

func TestLintReportOnly(t *testing.T) {
	root := setup(t, map[string]string{"agents.yaml": registryYAML, "foo.md": "foo"})
	path := filepath.Join(root, "agents.yaml")

	out, err := run(t, "lint", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "total=3 kept=2 removed=1 planned=2 moved=0 skipped=0 unresolved=0 failed=0", lines[len(lines)-1])
	assert.Contains(t, out, "duplicate-identity")
	assert.Equal(t, registryYAML, testsupport.ReadFile(t, root, "agents.yaml"))
	assert.False(t, testsupport.Exists(t, root, "agents.yaml.bak"))
}

func TestLintApplyMovesRequiresFix(t *testing.T) {
	root := setup(t, map[string]string{"agents.yaml": registryYAML, "foo.md": "foo"})

	_, err := run(t, "lint", "--apply-moves", filepath.Join(root, "agents.yaml"))

	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, []string{"agents.yaml", "foo.md"}, testsupport.Files(t, root))
}

func TestLintFixWritesBackupAndDocument(t *testing.T) {
	root := setup(t, map[string]string{"agents.yaml": registryYAML})
	path := filepath.Join(root, "agents.yaml")

	_, err := run(t, "lint", "--fix", path)
	require.NoError(t, err)

	assert.Equal(t, registryYAML, testsupport.ReadFile(t, root, "agents.yaml.bak"))
	doc, err := registry.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, doc.Agents, 2)
	assert.Equal(t, "core-development", doc.Agents[0].Category)
	assert.Equal(t, "categories/01-core-development/foo.md", doc.Agents[0].Path)
	assert.Equal(t, "categories/06-developer-experience/my-file.md", doc.Agents[1].Path)
	assert.False(t, testsupport.Exists(t, root, "agents.yaml.lock"))
}

func TestLintFixApplyMovesIsIdempotent(t *testing.T) {
	root := setup(t, map[string]string{
		"agents.yaml": registryYAML,
		"foo.md":      "foo",
		"My File.md":  "mine",
	})
	path := filepath.Join(root, "agents.yaml")

	_, err := run(t, "lint", "--fix", "--apply-moves", path)
	require.NoError(t, err)
	assert.Equal(t, "foo", testsupport.ReadFile(t, root, "categories/01-core-development/foo.md"))
	assert.Equal(t, "mine", testsupport.ReadFile(t, root, "categories/06-developer-experience/my-file.md"))
	after := testsupport.Files(t, root)

	out, err := run(t, "-o", "json", "lint", "--fix", "--apply-moves", path)
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Zero(t, rep.Summary.Planned)
	assert.Zero(t, rep.Summary.Moved)
	assert.Equal(t, after, testsupport.Files(t, root))
}

func TestLintDryRunTouchesNothing(t *testing.T) {
	root := setup(t, map[string]string{"agents.yaml": registryYAML, "foo.md": "foo"})
	before := testsupport.Files(t, root)

	out, err := run(t, "lint", "--fix", "--apply-moves", "--dry-run", filepath.Join(root, "agents.yaml"))
	require.NoError(t, err)

	assert.Contains(t, out, "would move")
	assert.Equal(t, before, testsupport.Files(t, root))
	assert.Equal(t, registryYAML, testsupport.ReadFile(t, root, "agents.yaml"))
}

func TestLintUndecodableRegistry(t *testing.T) {
	root := setup(t, map[string]string{"agents.yaml": "agents: [unclosed\n\t- {"})
	path := filepath.Join(root, "agents.yaml")

	_, err := run(t, "lint", "--fix", path)

	require.Error(t, err)
	assert.True(t, errors.IsDecodeError(err))
	assert.False(t, testsupport.Exists(t, root, "agents.yaml.bak"))
}

func TestLintMissingRegistry(t *testing.T) {
	root := setup(t, nil)
	_, err := run(t, "lint", filepath.Join(root, "missing.yaml"))
	assert.True(t, errors.IsNotExist(err))
}

func TestRescueAmbiguous(t *testing.T) {
	root := setup(t, map[string]string{
		"agents.json":   `[{"name": "reviewer", "category": "qa", "path": "reviewer.md"}]`,
		"a/reviewer.md": "",
		"b/reviewer.md": "",
		"c/reviewer.md": "",
	})

	out, err := run(t, "rescue", "--format", "json", filepath.Join(root, "agents.json"))
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 1, rep.Summary.Ambiguous)
	assert.Zero(t, rep.Summary.Moved)
	assert.Equal(t, `[{"name": "reviewer", "category": "qa", "path": "reviewer.md"}]`, testsupport.ReadFile(t, root, "agents.json"))
}

func TestRescueWithRootAndSuffix(t *testing.T) {
	root := setup(t, map[string]string{
		"registry/agents.yaml":  "agents:\n- name: helper\n  category: core\n  path: helper.txt\n",
		"tree/stray/helper.txt": "h",
	})
	treeDir := filepath.Join(root, "tree")

	out, err := run(t, "rescue", "--root", treeDir, "--suffix", ".txt", filepath.Join(root, "registry", "agents.yaml"))
	require.NoError(t, err)

	assert.Contains(t, out, "total=1 moved=1")
	data, err := os.ReadFile(filepath.Join(treeDir, "categories", "01-core-development", "helper.txt"))
	require.NoError(t, err)
	assert.Equal(t, "h", string(data))
}

func TestRescueSuffixFromConfigFile(t *testing.T) {
	root := setup(t, map[string]string{
		"roster.yaml":      "suffix: .txt\n",
		"agents.yaml":      "agents:\n- name: helper\n  category: core\n  path: helper.txt\n",
		"stray/helper.txt": "h",
	})

	out, err := run(t, "--config", filepath.Join(root, "roster.yaml"), "rescue", filepath.Join(root, "agents.yaml"))
	require.NoError(t, err)

	assert.Contains(t, out, "total=1 moved=1")
	assert.True(t, testsupport.Exists(t, root, "categories/01-core-development/helper.txt"))
}

func TestInvalidFormatFlag(t *testing.T) {
	root := setup(t, map[string]string{"agents.yaml": registryYAML})
	_, err := run(t, "--format", "xml", "lint", filepath.Join(root, "agents.yaml"))
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
