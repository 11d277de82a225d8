package sentiment

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oarkflow/transcripts/nlp/data"
)

// Lexicon maps lowercase words to their polarity.
type Lexicon map[string]Polarity

// DefaultLexicon returns the embedded lexicon, a 369-word subset of the
// Bing opinion lexicon. Use LoadLexicon for the full list.
func DefaultLexicon() Lexicon {
	lex, err := ParseLexicon(strings.NewReader(data.BingLexicon))
	if err != nil {
		panic(fmt.Sprintf("sentiment: embedded lexicon: %v", err))
	}
	return lex
}

// LoadLexicon reads a lexicon file from disk. See ParseLexicon for the format.
func LoadLexicon(path string) (Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sentiment: %w", err)
	}
	defer f.Close()
	return ParseLexicon(f)
}

// ParseLexicon reads "word,sentiment" records. Tab separated input is
// accepted as well. A header row, blank lines, '#' comments and rows with
// an unknown sentiment label are skipped.
func ParseLexicon(r io.Reader) (Lexicon, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("sentiment: %w", err)
	}
	cr := csv.NewReader(strings.NewReader(string(raw)))
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if !strings.Contains(string(raw), ",") && strings.Contains(string(raw), "\t") {
		cr.Comma = '\t'
	}
	lex := make(Lexicon)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sentiment: lexicon: %w", err)
		}
		if len(rec) < 2 {
			continue
		}
		p, ok := ParsePolarity(rec[1])
		if !ok {
			continue
		}
		if w := strings.ToLower(strings.TrimSpace(rec[0])); w != "" {
			lex[w] = p
		}
	}
	return lex, nil
}

// Lookup returns the polarity of word.
func (l Lexicon) Lookup(word string) (Polarity, bool) {
	p, ok := l[word]
	return p, ok
}
