package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ".txt", cfg.Extension)
	assert.Equal(t, []string{"uh", "um", "yeah"}, cfg.FillerWords)
	assert.Equal(t, 2, cfg.MinCloudFreq)
	assert.Equal(t, 3, cfg.Topics)
	assert.Equal(t, uint64(1234), cfg.Seed)
	assert.Equal(t, 5, cfg.TopTerms)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("yaml keeps defaults for absent keys", func(t *testing.T) {
		path := write(t, "transcripts.yaml", `
input_dir: interviews
topics: 4
filler_words: [uh, um, like]
export:
  format: msgpack
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "interviews", cfg.InputDir)
		assert.Equal(t, 4, cfg.Topics)
		assert.Equal(t, []string{"uh", "um", "like"}, cfg.FillerWords)
		assert.Equal(t, "msgpack", cfg.Export.Format)
		assert.Equal(t, uint64(1234), cfg.Seed)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("json", func(t *testing.T) {
		path := write(t, "transcripts.json", `{"seed": 7, "log": {"level": "debug"}}`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), cfg.Seed)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := write(t, "transcripts.ini", "topics=3")
		_, err := Load(path)
		assert.ErrorContains(t, err, "unsupported config format")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := write(t, "bad.yaml", "topics: [")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestResolve(t *testing.T) {
	t.Run("env overrides file", func(t *testing.T) {
		path := write(t, "transcripts.yaml", "topics: 4\ninput_dir: from-file\n")
		t.Setenv("TRANSCRIPTS_TOPICS", "6")
		t.Setenv("TRANSCRIPTS_FILLER_WORDS", "uh, hmm ,")
		t.Setenv("TRANSCRIPTS_SEED", "99")
		t.Setenv("TRANSCRIPTS_FOLD_DIACRITICS", "true")

		cfg, err := Resolve(path, "")
		require.NoError(t, err)
		assert.Equal(t, 6, cfg.Topics)
		assert.Equal(t, "from-file", cfg.InputDir)
		assert.Equal(t, []string{"uh", "hmm"}, cfg.FillerWords)
		assert.Equal(t, uint64(99), cfg.Seed)
		assert.True(t, cfg.FoldDiacritics)
	})

	t.Run("file keeps defaults for absent keys", func(t *testing.T) {
		path := write(t, "transcripts.json", `{"top_n": 5}`)
		cfg, err := Resolve(path, "")
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.TopN)
		assert.Equal(t, Default().Topics, cfg.Topics)
		assert.Equal(t, Default().FillerWords, cfg.FillerWords)

		_, err = Resolve(write(t, "transcripts.toml", "top_n = 5"), "")
		assert.ErrorContains(t, err, "unsupported config format")
	})

	t.Run("env file is loaded", func(t *testing.T) {
		envFile := write(t, ".env", "TRANSCRIPTS_OUTPUT_DIR=artifacts\n")
		t.Cleanup(func() { os.Unsetenv("TRANSCRIPTS_OUTPUT_DIR") })

		cfg, err := Resolve("", envFile)
		require.NoError(t, err)
		assert.Equal(t, "artifacts", cfg.OutputDir)
	})

	t.Run("missing env file is ignored", func(t *testing.T) {
		_, err := Resolve("", filepath.Join(t.TempDir(), ".env"))
		require.NoError(t, err)
	})

	t.Run("bad numbers are reported", func(t *testing.T) {
		t.Setenv("TRANSCRIPTS_TOPICS", "three")
		t.Setenv("TRANSCRIPTS_SEED", "-1")
		_, err := Resolve("", "")
		require.Error(t, err)
		assert.ErrorContains(t, err, "TRANSCRIPTS_TOPICS")
		assert.ErrorContains(t, err, "TRANSCRIPTS_SEED")
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Topics = 0
	cfg.MinCloudFreq = 0
	cfg.Export.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "topics must be at least 1")
	assert.ErrorContains(t, err, "min_cloud_freq")
	assert.ErrorContains(t, err, "export.format")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a,,b , "))
	assert.Nil(t, SplitList(""))
}

func TestLoadJSON(t *testing.T) {
	type payload struct {
		Words []string `json:"words"`
	}
	path := write(t, "p.json", `{"words": ["a", "b"]}`)
	p, err := LoadJSON[payload](path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, p.Words)
}
