package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// apostrophes maps typographic apostrophes onto the ASCII one so that
// "don’t" and "don't" count as the same word.
var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// Lower lowercases a token and folds typographic apostrophes.
func Lower(token string) string {
	return apostrophes.Replace(strings.ToLower(token))
}

// RemoveDiacritics decomposes and strips combining marks ("café" -> "cafe").
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lowercases every token and, when foldDiacritics is set, strips
// combining marks. Tokens that become empty are dropped.
func Normalize(tokens []string, foldDiacritics bool) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = Lower(t)
		if foldDiacritics {
			t = RemoveDiacritics(t)
		}
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
