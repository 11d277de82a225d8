// Package cleaner turns documents into filtered word tokens.
//
// Each document is split on word boundaries, lowercased, and stripped of
// stop words, filler words and tokens that are not purely alphabetic.
package cleaner

import (
	"errors"
	"regexp"

	"github.com/oarkflow/transcripts/nlp/corpus"
	"github.com/oarkflow/transcripts/nlp/normalizer"
	"github.com/oarkflow/transcripts/nlp/stopwords"
	"github.com/oarkflow/transcripts/nlp/tokenizer"
)

// ErrEmptyInput is returned by stages that received no tokens to work on.
var ErrEmptyInput = errors.New("empty input: no tokens left after cleaning")

// DefaultFiller lists the conversational fillers removed from transcripts.
var DefaultFiller = []string{"uh", "um", "yeah"}

var reAlpha = regexp.MustCompile(`^[a-zA-Z]+$`)

// Token is one surviving word occurrence.
type Token struct {
	FileName string `json:"file_name" msgpack:"file_name"`
	Word     string `json:"word" msgpack:"word"`
}

// Options controls which tokens are dropped.
type Options struct {
	Stopwords      stopwords.Set
	Filler         []string
	FoldDiacritics bool
}

// Cleaner applies Options to documents. The zero value keeps every
// alphabetic token.
type Cleaner struct {
	stop   stopwords.Set
	filler stopwords.Set
	fold   bool
}

// New builds a Cleaner from opts. Filler words are trimmed and lowercased.
func New(opts Options) *Cleaner {
	return &Cleaner{
		stop:   opts.Stopwords,
		filler: stopwords.New(opts.Filler...),
		fold:   opts.FoldDiacritics,
	}
}

// Keep reports whether an already-lowercased word survives cleaning.
func (c *Cleaner) Keep(word string) bool {
	if c.stop.Contains(word) {
		return false
	}
	if c.filler.Contains(word) {
		return false
	}
	return reAlpha.MatchString(word)
}

// Terms returns every normalised word of doc in reading order, before any
// filtering.
func (c *Cleaner) Terms(doc corpus.Document) []string {
	return normalizer.Normalize(tokenizer.Words(doc.Text), c.fold)
}

// Document returns the tokens of a single document.
func (c *Cleaner) Document(doc corpus.Document) []Token {
	var out []Token
	for _, w := range c.Terms(doc) {
		if c.Keep(w) {
			out = append(out, Token{FileName: doc.FileName, Word: w})
		}
	}
	return out
}

// Clean returns the tokens of all docs, in document order.
func (c *Cleaner) Clean(docs []corpus.Document) []Token {
	var out []Token
	for _, d := range docs {
		out = append(out, c.Document(d)...)
	}
	return out
}

// Clean is a shorthand for New(opts).Clean(docs).
func Clean(docs []corpus.Document, opts Options) []Token {
	return New(opts).Clean(docs)
}

// Words returns the words of tokens in order.
func Words(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Word
	}
	return out
}
