package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/transcripts/nlp/dtm"
	"github.com/oarkflow/transcripts/nlp/export"
	"github.com/oarkflow/transcripts/nlp/frequency"
	"github.com/oarkflow/transcripts/nlp/sentiment"
	"github.com/oarkflow/transcripts/nlp/topic"
)

func TestFrequencies(t *testing.T) {
	out := Frequencies(frequency.Table{{Word: "happy", Count: 2}, {Word: "sad", Count: 1}})
	assert.Contains(t, out, "Most frequent words")
	assert.Contains(t, out, "WORD")
	assert.Contains(t, out, "happy")
	assert.Contains(t, out, "sad")
}

func TestSentiment(t *testing.T) {
	out := Sentiment([]sentiment.Tally{
		{FileName: "a.txt", Positive: 3, Net: 3},
		{FileName: "b.txt", Negative: 3, Net: -3},
		{FileName: "c.txt"},
	})
	assert.Contains(t, out, "a.txt")
	assert.Contains(t, out, "-3")
	assert.Contains(t, out, "NET")
}

func TestTopicTables(t *testing.T) {
	out := TopTerms([]topic.TopicTerm{{Topic: 1, Term: "budget", Beta: 0.25}})
	assert.Contains(t, out, "budget")
	assert.Contains(t, out, "0.2500")

	out = Dominant([]topic.DocumentTopic{{FileName: "a.txt", Topic: 2, Gamma: 0.9}})
	assert.Contains(t, out, "0.900")
}

func TestOtherTables(t *testing.T) {
	out := Contributions([]sentiment.Contribution{{Word: "good", Polarity: sentiment.Positive, Count: 4}})
	assert.Contains(t, out, "positive")
	assert.Contains(t, out, "good")

	out = Distinctive([]dtm.TermScore{{FileName: "a.txt", Term: "plan", Count: 1, TFIDF: 0.231}})
	assert.Contains(t, out, "0.2310")
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, "one\n", "", "two\n"))
	assert.Equal(t, "one\ntwo\n", buf.String())
}

func TestSections(t *testing.T) {
	rep := &export.Report{
		RunID:     "run-1",
		Documents: []string{"a.txt"},
		Tokens:    3,
		Topics:    1,
		Seed:      1234,
		TopWords:  frequency.Table{{Word: "happy", Count: 2}},
		Sentiment: []sentiment.Tally{{FileName: "a.txt", Positive: 3, Net: 3}},
		TopTerms:  []topic.TopicTerm{{Topic: 1, Term: "happy", Beta: 0.7}},
	}
	sections := Sections(rep)
	require.Len(t, sections, 4, "optional tables are left out when empty")
	assert.Contains(t, sections[0], "run-1")
	assert.Contains(t, sections[0], "seed 1234")
}
