package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLower(t *testing.T) {
	assert.Equal(t, "hello", Lower("HeLLo"))
	assert.Equal(t, "don't", Lower("Don’t"))
}

func TestRemoveDiacritics(t *testing.T) {
	assert.Equal(t, "cafe", RemoveDiacritics("café"))
	assert.Equal(t, "naive", RemoveDiacritics("naïve"))
	assert.Equal(t, "plain", RemoveDiacritics("plain"))
}

func TestNormalize(t *testing.T) {
	t.Run("keeps diacritics by default", func(t *testing.T) {
		got := Normalize([]string{"Café", "GOOD"}, false)
		assert.Equal(t, []string{"café", "good"}, got)
	})

	t.Run("folds diacritics when asked", func(t *testing.T) {
		got := Normalize([]string{"Café", "Naïve"}, true)
		assert.Equal(t, []string{"cafe", "naive"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Normalize(nil, true))
	})
}
