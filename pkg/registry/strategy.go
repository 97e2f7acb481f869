package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Strategy decodes and encodes one document format.
type Strategy interface {
	// Name identifies the format ("json", "yaml", "toml")
	Name() string

	// Extensions lists file extensions, with the dot, that hint at the format
	Extensions() []string

	// Decode parses raw bytes into a document
	Decode(data []byte) (*Document, error)

	// Encode renders a document in this format
	Encode(doc *Document) ([]byte, error)
}

// DefaultStrategies returns the decode strategies in their fallback order.
func DefaultStrategies() []Strategy {
	return []Strategy{JSONStrategy{}, YAMLStrategy{}, TOMLStrategy{}}
}

// StrategyFor returns the strategy with the given name.
func StrategyFor(name string, strategies []Strategy) (Strategy, bool) {
	for _, s := range strategies {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// orderFor moves the strategy matching the file extension to the front.
// The relative order of the others is kept.
func orderFor(file string, strategies []Strategy) []Strategy {
	ext := strings.ToLower(filepath.Ext(file))
	if ext == "" {
		return strategies
	}
	ordered := make([]Strategy, 0, len(strategies))
	var rest []Strategy
	for _, s := range strategies {
		matched := false
		for _, e := range s.Extensions() {
			if e == ext {
				matched = true
				break
			}
		}
		if matched {
			ordered = append(ordered, s)
		} else {
			rest = append(rest, s)
		}
	}
	return append(ordered, rest...)
}

// JSONStrategy decodes JSON documents or bare JSON arrays of records.
type JSONStrategy struct{}

// Name implements Strategy.
func (JSONStrategy) Name() string { return "json" }

// Extensions implements Strategy.
func (JSONStrategy) Extensions() []string { return []string{".json"} }

// Decode implements Strategy.
func (JSONStrategy) Decode(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var agents []Record
		if err := json.Unmarshal(trimmed, &agents); err != nil {
			return nil, err
		}
		return &Document{Agents: agents, Bare: true}, nil
	}
	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode implements Strategy.
func (JSONStrategy) Encode(doc *Document) ([]byte, error) {
	var v any = doc
	if doc.Bare {
		v = doc.Agents
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// YAMLStrategy decodes YAML documents or bare YAML sequences of records.
type YAMLStrategy struct{}

// Name implements Strategy.
func (YAMLStrategy) Name() string { return "yaml" }

// Extensions implements Strategy.
func (YAMLStrategy) Extensions() []string { return []string{".yaml", ".yml"} }

// Decode implements Strategy.
func (YAMLStrategy) Decode(data []byte) (*Document, error) {
	var probe any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	switch probe.(type) {
	case nil:
		return &Document{}, nil
	case []any:
		var agents []Record
		if err := yaml.Unmarshal(data, &agents); err != nil {
			return nil, err
		}
		return &Document{Agents: agents, Bare: true}, nil
	case map[string]any, map[any]any:
		var doc Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	default:
		return nil, fmt.Errorf("document root must be a mapping or a sequence, got %T", probe)
	}
}

// Encode implements Strategy.
func (YAMLStrategy) Encode(doc *Document) ([]byte, error) {
	var v any = doc
	if doc.Bare {
		v = doc.Agents
	}
	return yaml.MarshalWithOptions(v,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
}

// TOMLStrategy decodes TOML documents with an [[agents]] array of tables.
type TOMLStrategy struct{}

// Name implements Strategy.
func (TOMLStrategy) Name() string { return "toml" }

// Extensions implements Strategy.
func (TOMLStrategy) Extensions() []string { return []string{".toml"} }

// Decode implements Strategy.
func (TOMLStrategy) Decode(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode implements Strategy. TOML has no top-level arrays, so bare
// documents are written with an agents table.
func (TOMLStrategy) Encode(doc *Document) ([]byte, error) {
	return toml.Marshal(doc)
}
