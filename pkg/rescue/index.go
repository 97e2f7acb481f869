package rescue

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
)

// Index maps a lower-cased basename to every file in the tree carrying it.
// Candidate lists are sorted slash paths relative to the tree root.
type Index map[string][]string

// BuildIndex walks the whole tree and indexes every regular file whose name
// ends in suffix (case-insensitive; empty matches all files). Directories
// whose name starts with a dot are not descended into.
func BuildIndex(ctx context.Context, fs afero.Fs, suffix string) (Index, error) {
	suffix = strings.ToLower(suffix)
	idx := make(Index)

	err := afero.Walk(fs, ".", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := info.Name()
		if info.IsDir() {
			if p != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() || !strings.HasSuffix(strings.ToLower(name), suffix) {
			return nil
		}
		idx.add(filepath.ToSlash(p))
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.WrapIO("walk", ".", err)
	}

	for _, paths := range idx {
		sort.Strings(paths)
	}
	logging.FromContext(ctx).Debug().
		Int("basenames", len(idx)).
		Str("suffix", suffix).
		Msg("indexed tree")
	return idx, nil
}

// Lookup returns the candidates for the basename of target.
func (idx Index) Lookup(target string) []string {
	return idx[key(target)]
}

// Len returns the number of indexed files.
func (idx Index) Len() int {
	n := 0
	for _, paths := range idx {
		n += len(paths)
	}
	return n
}

func (idx Index) add(p string) {
	k := key(p)
	idx[k] = append(idx[k], p)
}

// remove drops a path that has been moved so later records cannot claim it.
func (idx Index) remove(p string) {
	k := key(p)
	paths := idx[k]
	for i, existing := range paths {
		if existing == p {
			idx[k] = append(paths[:i:i], paths[i+1:]...)
			break
		}
	}
	if len(idx[k]) == 0 {
		delete(idx, k)
	}
}

func key(p string) string {
	return strings.ToLower(path.Base(p))
}
