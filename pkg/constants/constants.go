// Package constants provides shared constants used throughout roster.
// This includes file permissions, registry layout defaults and the limits
// the normalizer enforces.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for written files (rw-r--r--)
	FilePermissions = 0644
)

// Registry layout defaults
const (
	// CategoriesDir is the parent directory of every category directory
	CategoriesDir = "categories"

	// RootCategory is the category key whose records live under RootDir
	RootCategory = "root"

	// RootDir is the directory root-category records are placed in
	RootDir = "."

	// DefaultCategory receives records whose category cannot be resolved
	DefaultCategory = "specialized-domains"

	// Extension is used when a filename has to be synthesized
	Extension = "md"

	// Suffix restricts the rescue index to matching files
	Suffix = ".md"

	// UnnamedStem replaces a basename stem that normalizes to nothing
	UnnamedStem = "unnamed"
)

// Limit constants
const (
	// MaxDescriptionLength is the description length, in runes, past which
	// a warning is reported
	MaxDescriptionLength = 160
)

// Write-back constants
const (
	// BackupSuffix is appended to the registry path for the pre-write copy
	BackupSuffix = ".bak"

	// LockSuffix is appended to the registry path for the write lock file
	LockSuffix = ".lock"
)

// EnvPrefix prefixes every environment variable roster reads
const EnvPrefix = "ROSTER"
