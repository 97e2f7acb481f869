package registry

import (
	"maps"
	"slices"
	"strings"
)

// CategoryTable maps a category key to its directory name.
type CategoryTable map[string]string

// AliasTable maps legacy or alternate category spellings to a category key.
type AliasTable map[string]string

// DefaultCategories returns the built-in category table.
func DefaultCategories() CategoryTable {
	return CategoryTable{
		"core-development":     "01-core-development",
		"language-specialists": "02-language-specialists",
		"infrastructure":       "03-infrastructure",
		"quality-security":     "04-quality-security",
		"data-ai":              "05-data-ai",
		"developer-experience": "06-developer-experience",
		"specialized-domains":  "07-specialized-domains",
		"business-product":     "08-business-product",
		"meta-orchestration":   "09-meta-orchestration",
		"research-analysis":    "10-research-analysis",
	}
}

// DefaultAliases returns the built-in alias table.
func DefaultAliases() AliasTable {
	return AliasTable{
		"engineering":   "core-development",
		"core":          "core-development",
		"development":   "core-development",
		"languages":     "language-specialists",
		"language":      "language-specialists",
		"infra":         "infrastructure",
		"devops":        "infrastructure",
		"ops":           "infrastructure",
		"qa":            "quality-security",
		"quality":       "quality-security",
		"security":      "quality-security",
		"data":          "data-ai",
		"ai":            "data-ai",
		"ml":            "data-ai",
		"dx":            "developer-experience",
		"tooling":       "developer-experience",
		"domain":        "specialized-domains",
		"domains":       "specialized-domains",
		"specialized":   "specialized-domains",
		"business":      "business-product",
		"product":       "business-product",
		"meta":          "meta-orchestration",
		"orchestration": "meta-orchestration",
		"research":      "research-analysis",
		"analysis":      "research-analysis",
	}
}

// Merge returns a new table holding t overlaid with other.
func (t CategoryTable) Merge(other CategoryTable) CategoryTable {
	out := make(CategoryTable, len(t)+len(other))
	maps.Copy(out, t)
	maps.Copy(out, other)
	return out
}

// Keys returns the category keys in sorted order.
func (t CategoryTable) Keys() []string {
	return slices.Sorted(maps.Keys(t))
}

// Merge returns a new table holding t overlaid with other. Alias keys are
// lower-cased so lookups are case-insensitive.
func (t AliasTable) Merge(other AliasTable) AliasTable {
	out := make(AliasTable, len(t)+len(other))
	for k, v := range t {
		out[strings.ToLower(k)] = v
	}
	for k, v := range other {
		out[strings.ToLower(k)] = v
	}
	return out
}

// Resolve returns the category key an alias stands for. Unknown spellings
// are returned unchanged.
func (t AliasTable) Resolve(category string) string {
	if key, ok := t[strings.ToLower(category)]; ok {
		return key
	}
	return category
}
