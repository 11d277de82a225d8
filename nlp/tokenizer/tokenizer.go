package tokenizer

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Words splits text on Unicode word boundaries (UAX #29). Segments holding
// no letter or digit, such as spaces and punctuation, are dropped; case is
// preserved. Mixed runs like "2pm" or "mp3" stay single words, as do
// contractions ("don't") and numbers with separators ("1,234.50").
func Words(text string) []string {
	var out []string
	state := -1
	for len(text) > 0 {
		var word string
		word, text, state = uniseg.FirstWordInString(text, state)
		if hasAlnum(word) {
			out = append(out, word)
		}
	}
	return out
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
