package mapping

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName canonicalizes a free-text product or machine name so it can
// be used as a fuzzy join key: NFKC fold, lowercase, apostrophes and
// backticks stripped, every run of other non-alphanumeric characters
// replaced by a single space, whitespace collapsed and trimmed.
//
// The function is idempotent: NormalizeName(NormalizeName(x)) == NormalizeName(x).
func NormalizeName(s string) string {
	return normalizeName(s, false)
}

// NormalizeNameKeepAmpersand behaves like NormalizeName but preserves '&',
// which distinguishes product names like "rum & cola".
func NormalizeNameKeepAmpersand(s string) string {
	return normalizeName(s, true)
}

func normalizeName(s string, keepAmpersand bool) string {
	s = strings.ToLower(norm.NFKC.String(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		switch {
		case r == '\'' || r == '`':
			// Stripped entirely so "o'clock" joins as "oclock".
		case unicode.IsLetter(r) || unicode.IsDigit(r) || (keepAmpersand && r == '&'):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		default:
			pendingSpace = true
		}
	}
	return b.String()
}

// NormalizeCode canonicalizes a product lookup code: all whitespace removed
// and the rest uppercased, so "jb 3001" and "JB3001" key identically.
func NormalizeCode(code string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, code)
	return strings.ToUpper(stripped)
}

// CanonicalIngredient fixes ingredient identity at ingestion: trimmed and
// lowercased. Every accumulator, mapping row and stock row keys on this form.
func CanonicalIngredient(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
