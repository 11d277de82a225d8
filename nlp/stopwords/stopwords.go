package stopwords

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oarkflow/transcripts/nlp/data"
)

// Set is a lookup table of words excluded from analysis.
type Set map[string]struct{}

// Default returns the embedded English stop-word list. A fresh copy is
// returned on every call so callers may extend it.
func Default() Set {
	s, _ := Parse(strings.NewReader(data.Stopwords))
	return s
}

// New builds a set from the given words, lowercased.
func New(words ...string) Set {
	s := make(Set, len(words))
	s.Add(words...)
	return s
}

// Parse reads one word per line. Blank lines and lines starting with '#'
// are skipped.
func Parse(r io.Reader) (Set, error) {
	s := New()
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		w := strings.TrimSpace(scan.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		s.Add(w)
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("stopwords: %w", err)
	}
	return s, nil
}

// Load reads a stop-word file from disk.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stopwords: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Add inserts words into the set.
func (s Set) Add(words ...string) {
	for _, w := range words {
		if w = strings.TrimSpace(strings.ToLower(w)); w != "" {
			s[w] = struct{}{}
		}
	}
}

// Contains reports whether word is a stop word.
func (s Set) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Filter removes any token present in the set.
func (s Set) Filter(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if !s.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}
