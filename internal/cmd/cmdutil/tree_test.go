package cmdutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster/internal/testsupport"
	"github.com/agentstation/roster/pkg/errors"
)

func TestOpenTreeDefaultsToRegistryDir(t *testing.T) {
	_, dir := testsupport.NewTree(t, map[string]string{
		"agents.yaml": "agents: []\n",
		"a.md":        "a",
	})

	fs, root, err := OpenTree(filepath.Join(dir, "agents.yaml"), "")
	require.NoError(t, err)

	assert.Equal(t, dir, root)
	ok, err := afero.Exists(fs, "a.md")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOpenTreeExplicitRoot(t *testing.T) {
	_, dir := testsupport.NewTree(t, map[string]string{"tree/b.md": "b"})

	fs, _, err := OpenTree("elsewhere/agents.yaml", filepath.Join(dir, "tree"))
	require.NoError(t, err)

	ok, err := afero.Exists(fs, "b.md")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOpenTreeRejectsFile(t *testing.T) {
	_, dir := testsupport.NewTree(t, map[string]string{"file.md": ""})

	_, _, err := OpenTree("agents.yaml", filepath.Join(dir, "file.md"))
	assert.True(t, errors.IsValidationError(err))

	_, _, err = OpenTree("agents.yaml", filepath.Join(dir, "missing"))
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotExist(err))
}
