package frequency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/transcripts/nlp/cleaner"
)

func tokens(file string, words ...string) []cleaner.Token {
	out := make([]cleaner.Token, len(words))
	for i, w := range words {
		out[i] = cleaner.Token{FileName: file, Word: w}
	}
	return out
}

func TestCount(t *testing.T) {
	t.Run("two transcripts", func(t *testing.T) {
		toks := append(tokens("a.txt", "happy", "happy", "good"), tokens("b.txt", "bad", "sad", "bad")...)

		table, err := Count(toks)
		require.NoError(t, err)
		assert.Equal(t, Table{
			{"bad", 2}, {"happy", 2},
			{"good", 1}, {"sad", 1},
		}, table)
		assert.Equal(t, len(toks), table.Total())
	})

	t.Run("count equals surviving occurrences", func(t *testing.T) {
		toks := tokens("x.txt", "b", "a", "b", "c", "b", "a")
		table, err := Count(toks)
		require.NoError(t, err)

		for _, wc := range table {
			n := 0
			for _, tok := range toks {
				if tok.Word == wc.Word {
					n++
				}
			}
			assert.Equal(t, n, wc.Count, wc.Word)
		}
		assert.Equal(t, 6, table.Total())
		assert.Equal(t, "b", table[0].Word)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Count(nil)
		assert.ErrorIs(t, err, cleaner.ErrEmptyInput)
	})
}

func TestTable(t *testing.T) {
	table := FromMap(map[string]int{"a": 5, "b": 1, "c": 3, "d": 2, "zero": 0})
	require.Len(t, table, 4)

	assert.Equal(t, Table{{"a", 5}, {"c", 3}}, table.Top(2))
	assert.Equal(t, table, table.Top(0))
	assert.Equal(t, table, table.Top(10))
	assert.Equal(t, Table{{"a", 5}, {"c", 3}, {"d", 2}}, table.AtLeast(2))
	assert.Empty(t, table.AtLeast(6))
	assert.Equal(t, 3, table.Lookup("c"))
	assert.Equal(t, 0, table.Lookup("missing"))
}
