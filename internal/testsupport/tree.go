// Package testsupport holds helpers shared by package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// NewTree creates a temp directory holding the given files, keyed by
// slash-separated relative path, and returns an afero.Fs rooted at it along
// with its OS path.
func NewTree(t testing.TB, files map[string]string) (afero.Fs, string) {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		WriteFile(t, root, rel, content)
	}
	return afero.NewBasePathFs(afero.NewOsFs(), root), root
}

// WriteFile writes content to rel under root, creating parent directories.
func WriteFile(t testing.TB, root, rel, content string) {
	t.Helper()

	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

// Exists reports whether rel exists under root.
func Exists(t testing.TB, root, rel string) bool {
	t.Helper()

	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	if err == nil {
		return true
	}
	if !os.IsNotExist(err) {
		t.Fatalf("stat %s: %v", rel, err)
	}
	return false
}

// ReadFile returns the content of rel under root.
func ReadFile(t testing.TB, root, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// Files lists every regular file under root as sorted slash paths.
func Files(t testing.TB, root string) []string {
	t.Helper()

	var out []string
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return out
}
