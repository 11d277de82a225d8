package topic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/transcripts/nlp/cleaner"
	"github.com/oarkflow/transcripts/nlp/dtm"
)

func tokens(file string, words ...string) []cleaner.Token {
	out := make([]cleaner.Token, len(words))
	for i, w := range words {
		out[i] = cleaner.Token{FileName: file, Word: w}
	}
	return out
}

func corpusMatrix(t *testing.T) *dtm.Matrix {
	t.Helper()
	var toks []cleaner.Token
	toks = append(toks, tokens("budget.txt", "budget", "cost", "revenue", "budget", "forecast", "cost", "budget")...)
	toks = append(toks, tokens("hiring.txt", "hiring", "candidate", "interview", "hiring", "salary", "candidate")...)
	toks = append(toks, tokens("launch.txt", "launch", "release", "customer", "launch", "feature", "release")...)
	toks = append(toks, tokens("mixed.txt", "budget", "hiring", "launch", "cost", "salary", "release")...)
	m, err := dtm.Build(toks)
	require.NoError(t, err)
	return m
}

func TestFit(t *testing.T) {
	m := corpusMatrix(t)
	model, err := Fit(m, Options{Topics: 3, Seed: DefaultSeed, Iterations: 50})
	require.NoError(t, err)
	assert.Equal(t, 3, model.Topics())

	t.Run("beta covers exactly k topics", func(t *testing.T) {
		beta := model.Beta()
		_, terms := m.Dims()
		require.Len(t, beta, 3*terms)

		ids := make(map[int]float64)
		for _, b := range beta {
			assert.GreaterOrEqual(t, b.Beta, 0.0)
			ids[b.Topic] += b.Beta
		}
		require.Len(t, ids, 3)
		for id, sum := range ids {
			assert.Contains(t, []int{1, 2, 3}, id)
			assert.InDelta(t, 1.0, sum, 1e-9)
		}
	})

	t.Run("top terms are at most n per topic and sorted", func(t *testing.T) {
		top := model.TopTerms(DefaultTopTerms)
		perTopic := make(map[int][]TopicTerm)
		for _, tt := range top {
			perTopic[tt.Topic] = append(perTopic[tt.Topic], tt)
		}
		require.Len(t, perTopic, 3)
		for _, terms := range perTopic {
			assert.LessOrEqual(t, len(terms), DefaultTopTerms)
			for i := 1; i < len(terms); i++ {
				assert.GreaterOrEqual(t, terms[i-1].Beta, terms[i].Beta)
			}
		}
	})

	t.Run("top terms with small vocabulary", func(t *testing.T) {
		_, terms := m.Dims()
		assert.Len(t, model.TopTerms(terms+10), 3*terms)
	})

	t.Run("gamma is a distribution per document", func(t *testing.T) {
		sums := make(map[string]float64)
		for _, g := range model.Gamma() {
			sums[g.FileName] += g.Gamma
		}
		require.Len(t, sums, 4)
		for _, s := range sums {
			assert.InDelta(t, 1.0, s, 1e-9)
		}

		dom := model.Dominant()
		require.Len(t, dom, 4)
		for _, d := range dom {
			assert.GreaterOrEqual(t, d.Topic, 1)
			assert.LessOrEqual(t, d.Topic, 3)
		}
	})
}

func TestFitIsReproducible(t *testing.T) {
	m := corpusMatrix(t)
	opts := Options{Topics: 2, Seed: 42, Iterations: 30}

	a, err := Fit(m, opts)
	require.NoError(t, err)
	b, err := Fit(m, opts)
	require.NoError(t, err)
	assert.Equal(t, a.Beta(), b.Beta())
}

func TestFitDegenerate(t *testing.T) {
	m := corpusMatrix(t)

	tests := []struct {
		name   string
		topics int
		reason string
	}{
		{"more topics than documents", 5, "fewer documents than topics"},
		{"negative topic count", -1, "topic count must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(m, Options{Topics: tt.topics, Seed: DefaultSeed})
			require.Error(t, err)

			var fitErr *ModelFitError
			require.True(t, errors.As(err, &fitErr))
			assert.Equal(t, tt.reason, fitErr.Reason)
			assert.Equal(t, 4, fitErr.Docs)
			assert.Equal(t, 12, fitErr.Terms)
			assert.Equal(t, tt.topics, fitErr.Topics)
			assert.Contains(t, err.Error(), "docs=4")
		})
	}

	t.Run("zero topics uses the default", func(t *testing.T) {
		one, err := dtm.Build(tokens("only.txt", "alpha", "beta"))
		require.NoError(t, err)
		_, err = Fit(one, Options{})
		var fitErr *ModelFitError
		require.ErrorAs(t, err, &fitErr)
		assert.Equal(t, DefaultTopics, fitErr.Topics)
	})
}
