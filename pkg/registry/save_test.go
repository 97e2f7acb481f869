package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesBackupFirst(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "agents.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o644))

	doc, err := Load(ctx, path)
	require.NoError(t, err)

	updated := doc.WithAgents([]Record{{
		Name:     "api-designer",
		Category: "core-development",
		Path:     "categories/01-core-development/api-designer.md",
	}})
	backup, err := Save(ctx, path, updated)
	require.NoError(t, err)
	assert.Equal(t, path+".bak", backup)

	original, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, yamlDoc, string(original))

	reloaded, err := Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", reloaded.Format)
	require.Len(t, reloaded.Agents, 1)
	assert.Equal(t, "categories/01-core-development/api-designer.md", reloaded.Agents[0].Path)
	assert.Equal(t, CategoryTable{"custom": "11-custom"}, reloaded.Categories)

	_, err = os.Stat(path + ".lock")
	assert.True(t, os.IsNotExist(err), "lock file is removed after the write")

	// the input document is not modified
	assert.Equal(t, "api-designer.md", doc.Agents[0].Path)
}

func TestSaveMissingOriginal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.json")
	_, err := Save(context.Background(), path, &Document{Format: "json"})
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing is written without an original to back up")
}
