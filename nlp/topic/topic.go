// Package topic fits Latent Dirichlet Allocation topic models over a
// document-term matrix.
package topic

import (
	"fmt"
	"math"
	"sort"

	"github.com/james-bowman/nlp"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/oarkflow/transcripts/nlp/dtm"
)

const (
	DefaultTopics   = 3
	DefaultSeed     = 1234
	DefaultTopTerms = 5
)

// Options configures a model fit.
type Options struct {
	// Topics is the number of latent topics k.
	Topics int
	// Seed feeds the random source used to initialise the model.
	Seed uint64
	// Iterations overrides the library default when positive.
	Iterations int
}

// TopicTerm is the weight of a term within a topic. Betas of one topic sum
// to 1; they are not comparable across topics.
type TopicTerm struct {
	Topic int     `json:"topic" msgpack:"topic"`
	Term  string  `json:"term" msgpack:"term"`
	Beta  float64 `json:"beta" msgpack:"beta"`
}

// DocumentTopic is the share of a document attributed to a topic.
type DocumentTopic struct {
	FileName string  `json:"file_name" msgpack:"file_name"`
	Topic    int     `json:"topic" msgpack:"topic"`
	Gamma    float64 `json:"gamma" msgpack:"gamma"`
}

// ModelFitError reports a matrix the model cannot be fitted on.
type ModelFitError struct {
	Docs   int
	Terms  int
	Topics int
	Reason string
	Err    error
}

func (e *ModelFitError) Error() string {
	msg := fmt.Sprintf("topic model fit failed (docs=%d, terms=%d, topics=%d): %s", e.Docs, e.Terms, e.Topics, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ModelFitError) Unwrap() error { return e.Err }

// Model is a fitted topic model. Topic ids run from 1 to k.
type Model struct {
	k     int
	docs  []string
	terms []string
	beta  [][]float64 // k x terms
	gamma [][]float64 // docs x k
}

// Fit trains an LDA model on m. The fit is single threaded so that a given
// seed always produces the same model.
func Fit(m *dtm.Matrix, opts Options) (*Model, error) {
	if opts.Topics == 0 {
		opts.Topics = DefaultTopics
	}
	docs, terms := m.Dims()
	fail := func(reason string, err error) error {
		return &ModelFitError{Docs: docs, Terms: terms, Topics: opts.Topics, Reason: reason, Err: err}
	}
	switch {
	case opts.Topics < 1:
		return nil, fail("topic count must be positive", nil)
	case terms == 0:
		return nil, fail("empty vocabulary", nil)
	case docs < opts.Topics:
		return nil, fail("fewer documents than topics", nil)
	}

	lda := nlp.NewLatentDirichletAllocation(opts.Topics)
	lda.Rnd = rand.New(rand.NewSource(opts.Seed))
	lda.Processes = 1
	if opts.Iterations > 0 {
		lda.Iterations = opts.Iterations
	}

	docTopics, err := lda.FitTransform(m.TermDoc())
	if err != nil {
		return nil, fail("lda", err)
	}

	model := &Model{
		k:     opts.Topics,
		docs:  m.Docs(),
		terms: m.Terms(),
		beta:  normalizeRows(lda.Components(), opts.Topics, terms),
		gamma: normalizeRows(docTopics.T(), docs, opts.Topics),
	}
	if !finite(model.beta) || !finite(model.gamma) {
		return nil, fail("model produced non-finite weights", nil)
	}
	return model, nil
}

// normalizeRows copies an r x c matrix into row slices that each sum to 1.
// A row summing to zero is spread uniformly.
func normalizeRows(src mat.Matrix, r, c int) [][]float64 {
	out := make([][]float64, r)
	for i := range out {
		row := make([]float64, c)
		sum := 0.0
		for j := range row {
			row[j] = math.Max(src.At(i, j), 0)
			sum += row[j]
		}
		for j := range row {
			if sum > 0 {
				row[j] /= sum
			} else {
				row[j] = 1 / float64(c)
			}
		}
		out[i] = row
	}
	return out
}

func finite(rows [][]float64) bool {
	for _, row := range rows {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Topics returns k.
func (m *Model) Topics() int { return m.k }

// Beta returns every (topic, term) weight, ordered by topic then term.
func (m *Model) Beta() []TopicTerm {
	out := make([]TopicTerm, 0, m.k*len(m.terms))
	for t, row := range m.beta {
		for j, b := range row {
			out = append(out, TopicTerm{Topic: t + 1, Term: m.terms[j], Beta: b})
		}
	}
	return out
}

// TopTerms returns up to n terms per topic, ordered by topic and then by
// descending beta. Equal betas are ordered by term.
func (m *Model) TopTerms(n int) []TopicTerm {
	var out []TopicTerm
	for t, row := range m.beta {
		terms := make([]TopicTerm, len(row))
		for j, b := range row {
			terms[j] = TopicTerm{Topic: t + 1, Term: m.terms[j], Beta: b}
		}
		sort.Slice(terms, func(a, b int) bool {
			if terms[a].Beta != terms[b].Beta {
				return terms[a].Beta > terms[b].Beta
			}
			return terms[a].Term < terms[b].Term
		})
		if n > 0 && n < len(terms) {
			terms = terms[:n]
		}
		out = append(out, terms...)
	}
	return out
}

// Gamma returns the topic mixture of every document.
func (m *Model) Gamma() []DocumentTopic {
	out := make([]DocumentTopic, 0, len(m.docs)*m.k)
	for i, row := range m.gamma {
		for t, g := range row {
			out = append(out, DocumentTopic{FileName: m.docs[i], Topic: t + 1, Gamma: g})
		}
	}
	return out
}

// Dominant returns the highest-gamma topic of every document. Ties go to
// the lower topic id.
func (m *Model) Dominant() []DocumentTopic {
	out := make([]DocumentTopic, len(m.docs))
	for i, row := range m.gamma {
		best := 0
		for t, g := range row {
			if g > row[best] {
				best = t
			}
		}
		out[i] = DocumentTopic{FileName: m.docs[i], Topic: best + 1, Gamma: row[best]}
	}
	return out
}
