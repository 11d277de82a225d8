package export

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/transcripts/nlp/frequency"
	"github.com/oarkflow/transcripts/nlp/sentiment"
	"github.com/oarkflow/transcripts/nlp/topic"
)

func sampleReport() *Report {
	return &Report{
		RunID:     "run-1",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		InputDir:  "transcripts",
		Documents: []string{"a.txt", "b.txt"},
		Tokens:    6,
		TopWords: frequency.Table{
			{Word: "bad", Count: 2},
			{Word: "happy", Count: 2},
			{Word: "good", Count: 1},
		},
		Sentiment: []sentiment.Tally{
			{FileName: "a.txt", Positive: 3, Negative: 0, Net: 3},
			{FileName: "b.txt", Positive: 0, Negative: 3, Net: -3},
		},
		Topics: 2,
		Seed:   1234,
		TopTerms: []topic.TopicTerm{
			{Topic: 1, Term: "happy", Beta: 0.5},
			{Topic: 2, Term: "bad", Beta: 0.6},
		},
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, f := range []Format{JSON, MsgPack} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, sampleReport(), f))
			got, err := Decode(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, "run-1", got.RunID)
			assert.Equal(t, []string{"a.txt", "b.txt"}, got.Documents)
			assert.Equal(t, -3, got.Sentiment[1].Net)
			assert.True(t, got.CreatedAt.Equal(sampleReport().CreatedAt))
		})
	}
}

func TestToJSONFieldNames(t *testing.T) {
	s, err := ToJSON(sampleReport())
	require.NoError(t, err)
	assert.Contains(t, s, `"run_id": "run-1"`)
	assert.Contains(t, s, `"top_terms"`)
	assert.NotContains(t, s, `"distinctive_terms"`)
}

func TestUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, sampleReport(), Format("xml")))
	_, err := Decode(&buf, Format("xml"))
	assert.Error(t, err)
	assert.Equal(t, ".msgpack", MsgPack.Ext())
}

func TestStoreSave(t *testing.T) {
	s, err := OpenStore(filepath.Join(t.TempDir(), "db", "runs.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(context.Background(), sampleReport()))

	var runs []struct {
		RunID  string `db:"run_id"`
		Tokens int    `db:"tokens"`
	}
	require.NoError(t, s.DB().Select(&runs, "SELECT run_id, tokens FROM runs"))
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].RunID)
	assert.Equal(t, 6, runs[0].Tokens)

	var nets []struct {
		FileName string `db:"file_name"`
		Net      int    `db:"net"`
	}
	require.NoError(t, s.DB().Select(&nets, "SELECT file_name, net FROM sentiment WHERE run_id = :id ORDER BY file_name",
		map[string]any{"id": "run-1"}))
	require.Len(t, nets, 2)
	assert.Equal(t, -3, nets[1].Net)

	// run ids are primary keys
	assert.Error(t, s.Save(context.Background(), sampleReport()))
}

func TestStoreSaveRollsBack(t *testing.T) {
	s, err := OpenStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer s.Close()

	rep := sampleReport()
	rep.Sentiment = append(rep.Sentiment, rep.Sentiment[0])
	require.Error(t, s.Save(context.Background(), rep))

	for _, table := range []string{"runs", "word_counts", "sentiment", "topic_terms"} {
		var n []int
		require.NoError(t, s.DB().Select(&n, "SELECT COUNT(*) FROM "+table))
		assert.Equal(t, []int{0}, n, table)
	}

	// the failed attempt leaves the run id free
	require.NoError(t, s.Save(context.Background(), sampleReport()))
}
