package normalize

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/roster/pkg/constants"
)

// fold case-folds s and strips combining marks, so "Ñandú" becomes "nandu".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// Kebab converts s to lower-case hyphen-separated form. Whitespace and
// underscores become hyphens, characters outside [a-z0-9.-] are dropped,
// repeated hyphens collapse and hyphens at either end are trimmed.
// Kebab(Kebab(s)) == Kebab(s).
func Kebab(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := false
	for _, r := range fold(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || r == '_' || unicode.IsSpace(r):
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// Basename normalizes a file name: the stem is kebab-cased and the
// extension lower-cased. A name whose extension normalizes to nothing is
// treated as all stem, so stray dots become hyphens. A stem that normalizes
// to nothing is replaced with "unnamed". Basename is idempotent.
func Basename(name string) string {
	ext := normalizeExt(path.Ext(name))
	stem := strings.TrimSuffix(name, path.Ext(name))
	if ext == "" {
		stem = strings.ReplaceAll(name, ".", "-")
	}

	stem = strings.Trim(Kebab(stem), ".-")
	if stem == "" {
		stem = constants.UnnamedStem
	}
	return stem + ext
}

func normalizeExt(ext string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(ext) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "." + b.String()
}
