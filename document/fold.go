package document

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var punctuation = strings.NewReplacer(
	"‘", "'", "’", "'", "‚", "'",
	"“", `"`, "”", `"`, "„", `"`,
	"–", "-", "—", "--", "…", "...",
	"\u00a0", " ", "•", "o", "×", "x",
)

// Fold strips diacritics and replaces common typographic punctuation with
// plain ASCII.
func Fold(s string) string {
	s = punctuation.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}
