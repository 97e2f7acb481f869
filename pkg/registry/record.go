package registry

// Record is a single agent entry as declared in the registry document.
type Record struct {
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	Path        string   `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Tools       []string `json:"tools,omitempty" yaml:"tools,omitempty" toml:"tools,omitempty"`
	Model       string   `json:"model,omitempty" yaml:"model,omitempty" toml:"model,omitempty"`
}

// CanonicalRecord is a Record after category resolution and path
// normalization.
type CanonicalRecord struct {
	Record

	// CategoryKey is the resolved category key
	CategoryKey string

	// CanonicalPath is the slash-separated location the file should occupy
	CanonicalPath string
}

// Canonical returns the record as it should be written back: resolved
// category and canonical path in place of the declared values.
func (c CanonicalRecord) Canonical() Record {
	r := c.Record
	r.Category = c.CategoryKey
	r.Path = c.CanonicalPath
	if len(c.Tools) > 0 {
		r.Tools = append([]string(nil), c.Tools...)
	}
	return r
}
