package stopwords

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	require.NotEmpty(t, s)

	for _, w := range []string{"the", "is", "and", "don't", "i'm"} {
		assert.Truef(t, s.Contains(w), "expected %q to be a stop word", w)
	}
	for _, w := range []string{"happy", "good", "bad", "sad", "meeting"} {
		assert.Falsef(t, s.Contains(w), "expected %q to survive", w)
	}
}

func TestDefaultReturnsCopy(t *testing.T) {
	a := Default()
	a.Add("transcript")
	assert.False(t, Default().Contains("transcript"))
}

func TestParse(t *testing.T) {
	s, err := Parse(strings.NewReader("# comment\nThe\n\n  And \nof\n"))
	require.NoError(t, err)
	assert.Len(t, s, 3)
	assert.True(t, s.Contains("the"))
	assert.True(t, s.Contains("and"))
	assert.False(t, s.Contains("# comment"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta\n"), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, New("alpha", "beta"), s)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	s := New("the", "a")
	assert.Equal(t, []string{"cat", "sat"}, s.Filter([]string{"the", "cat", "sat", "a"}))
	assert.Nil(t, s.Filter([]string{"the", "a"}))
}
