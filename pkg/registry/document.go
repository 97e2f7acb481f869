package registry

import "slices"

// Document is a decoded registry document.
type Document struct {
	Categories CategoryTable `json:"categories,omitempty" yaml:"categories,omitempty" toml:"categories,omitempty"`
	Aliases    AliasTable    `json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	Agents     []Record      `json:"agents" yaml:"agents" toml:"agents"`

	// Format is the name of the strategy that decoded the document
	Format string `json:"-" yaml:"-" toml:"-"`

	// Path is the file the document was loaded from, if any
	Path string `json:"-" yaml:"-" toml:"-"`

	// Bare is set when the document was a top-level list of records
	Bare bool `json:"-" yaml:"-" toml:"-"`
}

// WithAgents returns a copy of the document holding the given records.
func (d *Document) WithAgents(agents []Record) *Document {
	out := *d
	out.Agents = slices.Clone(agents)
	return &out
}
