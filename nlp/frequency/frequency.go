package frequency

import (
	"sort"

	"github.com/oarkflow/transcripts/nlp/cleaner"
)

// WordCount is the number of occurrences of a word across all documents.
type WordCount struct {
	Word  string `json:"word" msgpack:"word"`
	Count int    `json:"count" msgpack:"count"`
}

// Table is a list of word counts ranked by descending count, ties broken
// alphabetically.
type Table []WordCount

// Count groups tokens by word.
func Count(tokens []cleaner.Token) (Table, error) {
	if len(tokens) == 0 {
		return nil, cleaner.ErrEmptyInput
	}
	counts := make(map[string]int)
	for _, t := range tokens {
		counts[t.Word]++
	}
	return FromMap(counts), nil
}

// FromMap builds a ranked table from raw counts. Non-positive counts are
// skipped.
func FromMap(counts map[string]int) Table {
	t := make(Table, 0, len(counts))
	for w, c := range counts {
		if c > 0 {
			t = append(t, WordCount{Word: w, Count: c})
		}
	}
	t.sort()
	return t
}

func (t Table) sort() {
	sort.Slice(t, func(i, j int) bool {
		if t[i].Count != t[j].Count {
			return t[i].Count > t[j].Count
		}
		return t[i].Word < t[j].Word
	})
}

// Top returns the n highest ranked words. n <= 0 returns the whole table.
func (t Table) Top(n int) Table {
	if n <= 0 || n >= len(t) {
		return t
	}
	return t[:n]
}

// AtLeast returns the words counted at least min times, keeping order.
func (t Table) AtLeast(min int) Table {
	out := make(Table, 0, len(t))
	for _, wc := range t {
		if wc.Count >= min {
			out = append(out, wc)
		}
	}
	return out
}

// Total is the sum of all counts.
func (t Table) Total() int {
	n := 0
	for _, wc := range t {
		n += wc.Count
	}
	return n
}

// Lookup returns the count of word, or 0.
func (t Table) Lookup(word string) int {
	for _, wc := range t {
		if wc.Word == word {
			return wc.Count
		}
	}
	return 0
}
