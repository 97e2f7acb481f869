package cmdutil

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/agentstation/roster/pkg/errors"
)

// OpenTree returns the file tree commands operate on. An empty root selects
// the directory holding the registry document.
func OpenTree(registryPath, root string) (afero.Fs, string, error) {
	if root == "" {
		root = filepath.Dir(registryPath)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, "", errors.WrapIO("resolve", root, err)
	}
	info, err := os.Stat(abs)
	if errors.IsNotExist(err) {
		return nil, "", errors.NewNotFoundError("root directory", abs, err)
	}
	if err != nil {
		return nil, "", errors.WrapIO("stat", abs, err)
	}
	if !info.IsDir() {
		return nil, "", errors.NewValidationError("root", root, "is not a directory")
	}
	return afero.NewBasePathFs(afero.NewOsFs(), abs), abs, nil
}
