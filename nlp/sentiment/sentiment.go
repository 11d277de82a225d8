// Package sentiment scores documents against a word polarity lexicon.
//
// Tokens are joined against the lexicon; words missing from it are
// dropped. Matches are tallied per file and per polarity, and the net
// score of a file is its positive count minus its negative count.
package sentiment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oarkflow/transcripts/nlp/cleaner"
)

// Polarity is the sentiment label attached to a lexicon word.
type Polarity string

const (
	Positive Polarity = "positive"
	Negative Polarity = "negative"
)

// ParsePolarity accepts "positive" or "negative" in any case.
func ParsePolarity(s string) (Polarity, bool) {
	switch Polarity(strings.ToLower(strings.TrimSpace(s))) {
	case Positive:
		return Positive, true
	case Negative:
		return Negative, true
	}
	return "", false
}

// Tally is the per-file sentiment count.
type Tally struct {
	FileName string `json:"file_name" msgpack:"file_name"`
	Positive int    `json:"positive" msgpack:"positive"`
	Negative int    `json:"negative" msgpack:"negative"`
	Net      int    `json:"net" msgpack:"net"`
}

// String returns a debug representation of the tally.
func (t Tally) String() string {
	return fmt.Sprintf("%s(pos=%d, neg=%d, net=%d)", t.FileName, t.Positive, t.Negative, t.Net)
}

// Score tallies tokens per file. Every name in files appears in the result,
// with zero counts when it has no lexicon matches; files seen only in
// tokens are added. The result is sorted by file name.
func Score(files []string, tokens []cleaner.Token, lex Lexicon) ([]Tally, error) {
	if len(tokens) == 0 {
		return nil, cleaner.ErrEmptyInput
	}
	byFile := make(map[string]*Tally, len(files))
	get := func(name string) *Tally {
		t, ok := byFile[name]
		if !ok {
			t = &Tally{FileName: name}
			byFile[name] = t
		}
		return t
	}
	for _, f := range files {
		get(f)
	}
	for _, tok := range tokens {
		p, ok := lex.Lookup(tok.Word)
		if !ok {
			continue
		}
		t := get(tok.FileName)
		switch p {
		case Positive:
			t.Positive++
		case Negative:
			t.Negative++
		}
	}
	out := make([]Tally, 0, len(byFile))
	for _, t := range byFile {
		t.Net = t.Positive - t.Negative
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FileName < out[j].FileName })
	return out, nil
}

// Contribution is how often a lexicon word matched across all files.
type Contribution struct {
	Word     string   `json:"word" msgpack:"word"`
	Polarity Polarity `json:"polarity" msgpack:"polarity"`
	Count    int      `json:"count" msgpack:"count"`
}

// Contributions returns, for each polarity, the n words that matched most
// often (n <= 0 keeps all). Positive words come first; within a polarity
// words are ranked by count, then alphabetically.
func Contributions(tokens []cleaner.Token, lex Lexicon, n int) []Contribution {
	counts := make(map[string]int)
	for _, tok := range tokens {
		if _, ok := lex[tok.Word]; ok {
			counts[tok.Word]++
		}
	}
	var pos, neg []Contribution
	for w, c := range counts {
		switch lex[w] {
		case Positive:
			pos = append(pos, Contribution{Word: w, Polarity: Positive, Count: c})
		case Negative:
			neg = append(neg, Contribution{Word: w, Polarity: Negative, Count: c})
		}
	}
	return append(rank(pos, n), rank(neg, n)...)
}

func rank(cs []Contribution, n int) []Contribution {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Count != cs[j].Count {
			return cs[i].Count > cs[j].Count
		}
		return cs[i].Word < cs[j].Word
	})
	if n > 0 && n < len(cs) {
		return cs[:n]
	}
	return cs
}
