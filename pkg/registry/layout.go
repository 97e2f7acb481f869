package registry

import (
	"path"
	"strings"

	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
)

// Layout is the directory policy canonical paths are derived from.
type Layout struct {
	// CategoriesDir is the parent of every category directory
	CategoriesDir string

	// RootCategory is the category key placed under RootDir
	RootCategory string

	// RootDir holds root-category records
	RootDir string

	// DefaultCategory receives records with an unknown category
	DefaultCategory string

	// Extension is used for synthesized filenames, without the dot
	Extension string

	// Categories maps category keys to directory names
	Categories CategoryTable

	// Aliases maps alternate spellings to category keys
	Aliases AliasTable
}

// DefaultLayout returns the built-in layout.
func DefaultLayout() Layout {
	return Layout{
		CategoriesDir:   constants.CategoriesDir,
		RootCategory:    constants.RootCategory,
		RootDir:         constants.RootDir,
		DefaultCategory: constants.DefaultCategory,
		Extension:       constants.Extension,
		Categories:      DefaultCategories(),
		Aliases:         DefaultAliases(),
	}
}

// ForDocument returns the layout with the document's own category and alias
// tables overlaid on the configured ones.
func (l Layout) ForDocument(doc *Document) Layout {
	if doc == nil {
		return l
	}
	out := l
	out.Categories = l.Categories.Merge(doc.Categories)
	out.Aliases = l.Aliases.Merge(doc.Aliases)
	return out
}

// Validate checks the layout is usable.
func (l Layout) Validate() error {
	if strings.TrimSpace(l.RootCategory) == "" {
		return errors.NewConfigError("layout", "root category is empty", nil)
	}
	if strings.TrimSpace(l.Extension) == "" {
		return errors.NewConfigError("layout", "extension is empty", nil)
	}
	if l.DefaultCategory != l.RootCategory {
		if _, ok := l.Categories[l.DefaultCategory]; !ok {
			return errors.NewConfigError("layout", "default category "+l.DefaultCategory+" is not a declared category", nil)
		}
	}
	return nil
}

// IsKnown reports whether key is a declared category or the root category.
func (l Layout) IsKnown(key string) bool {
	if key == l.RootCategory {
		return true
	}
	_, ok := l.Categories[key]
	return ok
}

// Dir returns the directory records of the given category belong in.
func (l Layout) Dir(key string) string {
	if key == l.RootCategory {
		return cleanDir(l.RootDir)
	}
	return cleanDir(path.Join(l.CategoriesDir, l.Categories[key]))
}

func cleanDir(dir string) string {
	dir = path.Clean(strings.ReplaceAll(dir, "\\", "/"))
	dir = strings.TrimPrefix(dir, "/")
	if dir == "" {
		return "."
	}
	return dir
}
