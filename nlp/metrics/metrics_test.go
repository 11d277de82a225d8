package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.Documents.Add(2)
	m.Tokens.WithLabelValues("kept").Add(6)
	m.Stage("load")()
	m.Finish(nil)
	m.Finish(errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Documents))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.Tokens.WithLabelValues("kept")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("failure")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.StageDuration))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Documents.Add(3)

	path := filepath.Join(t.TempDir(), "transcripts.prom")
	require.NoError(t, m.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "transcripts_documents_total 3")
}
