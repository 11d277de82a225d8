// Package ngram counts runs of adjacent words.
package ngram

import (
	"strings"

	"github.com/oarkflow/transcripts/nlp/cleaner"
	"github.com/oarkflow/transcripts/nlp/corpus"
	"github.com/oarkflow/transcripts/nlp/frequency"
)

// Filter supplies the normalised words of a document and decides which of
// them survive cleaning. *cleaner.Cleaner implements it.
type Filter interface {
	Terms(doc corpus.Document) []string
	Keep(word string) bool
}

// Join builds the gram key for words.
func Join(words []string) string {
	return strings.Join(words, " ")
}

// Extract returns the n-gram counts of one word sequence.
func Extract(words []string, n int) map[string]int {
	counts := make(map[string]int)
	if n < 1 {
		return counts
	}
	for i := 0; i+n <= len(words); i++ {
		counts[Join(words[i:i+n])]++
	}
	return counts
}

// Count tallies n-grams of adjacent words as they appear in each document.
// Grams are cut before filtering, so a removed stop word breaks the run:
// "happy the good" yields no bigram. A gram is kept only when every word in
// it survives f, and never spans two documents. The table is ranked like
// word counts.
func Count(docs []corpus.Document, f Filter, n int) (frequency.Table, error) {
	total := make(map[string]int)
	kept := 0
	for _, doc := range docs {
		words := f.Terms(doc)
		for _, w := range words {
			if f.Keep(w) {
				kept++
			}
		}
		for i := 0; i+n <= len(words) && n > 0; i++ {
			if keepAll(f, words[i:i+n]) {
				total[Join(words[i:i+n])]++
			}
		}
	}
	if kept == 0 {
		return nil, cleaner.ErrEmptyInput
	}
	return frequency.FromMap(total), nil
}

func keepAll(f Filter, words []string) bool {
	for _, w := range words {
		if !f.Keep(w) {
			return false
		}
	}
	return true
}
