package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TRANSCRIPTS_"

type Export struct {
	// Format of the report written to the output directory: json or msgpack.
	Format string `yaml:"format" json:"format" bcl:"format"`
	// SQLite, when set, archives every run into this database file.
	SQLite string `yaml:"sqlite" json:"sqlite" bcl:"sqlite"`
}

type Log struct {
	Level string `yaml:"level" json:"level" bcl:"level"`
	// File enables a rotating log file next to stderr output.
	File string `yaml:"file" json:"file" bcl:"file"`
}

type Server struct {
	Addr string `yaml:"addr" json:"addr" bcl:"addr"`
}

type Watch struct {
	DebounceMS int `yaml:"debounce_ms" json:"debounce_ms" bcl:"debounce_ms"`
}

type Config struct {
	InputDir       string   `yaml:"input_dir" json:"input_dir" bcl:"input_dir"`
	Extension      string   `yaml:"extension" json:"extension" bcl:"extension"`
	FillerWords    []string `yaml:"filler_words" json:"filler_words" bcl:"filler_words"`
	StopwordsFile  string   `yaml:"stopwords_file" json:"stopwords_file" bcl:"stopwords_file"`
	LexiconFile    string   `yaml:"lexicon_file" json:"lexicon_file" bcl:"lexicon_file"`
	FoldDiacritics bool     `yaml:"fold_diacritics" json:"fold_diacritics" bcl:"fold_diacritics"`
	TopN           int      `yaml:"top_n" json:"top_n" bcl:"top_n"`
	MinCloudFreq   int      `yaml:"min_cloud_freq" json:"min_cloud_freq" bcl:"min_cloud_freq"`
	Topics         int      `yaml:"topics" json:"topics" bcl:"topics"`
	Seed           uint64   `yaml:"seed" json:"seed" bcl:"seed"`
	TopTerms       int      `yaml:"top_terms" json:"top_terms" bcl:"top_terms"`
	LDAIterations  int      `yaml:"lda_iterations" json:"lda_iterations" bcl:"lda_iterations"`
	OutputDir      string   `yaml:"output_dir" json:"output_dir" bcl:"output_dir"`
	MetricsFile    string   `yaml:"metrics_file" json:"metrics_file" bcl:"metrics_file"`
	Export         Export   `yaml:"export" json:"export" bcl:"export"`
	Log            Log      `yaml:"log" json:"log" bcl:"log"`
	Server         Server   `yaml:"server" json:"server" bcl:"server"`
	Watch          Watch    `yaml:"watch" json:"watch" bcl:"watch"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		InputDir:     ".",
		Extension:    ".txt",
		FillerWords:  []string{"uh", "um", "yeah"},
		TopN:         20,
		MinCloudFreq: 2,
		Topics:       3,
		Seed:         1234,
		TopTerms:     5,
		OutputDir:    "out",
		Export:       Export{Format: "json"},
		Log:          Log{Level: "info"},
		Server:       Server{Addr: ":8080"},
		Watch:        Watch{DebounceMS: 500},
	}
}

// Resolve builds the effective configuration: defaults, then the optional
// config file, then the optional .env file and TRANSCRIPTS_* variables.
func Resolve(path, envFile string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load env file %s: %w", envFile, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from TRANSCRIPTS_* environment variables.
func (c *Config) ApplyEnv() error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	str("INPUT_DIR", &c.InputDir)
	str("EXTENSION", &c.Extension)
	str("STOPWORDS_FILE", &c.StopwordsFile)
	str("LEXICON_FILE", &c.LexiconFile)
	str("OUTPUT_DIR", &c.OutputDir)
	str("METRICS_FILE", &c.MetricsFile)
	str("EXPORT_FORMAT", &c.Export.Format)
	str("EXPORT_SQLITE", &c.Export.SQLite)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FILE", &c.Log.File)
	str("SERVER_ADDR", &c.Server.Addr)
	num("TOP_N", &c.TopN)
	num("MIN_CLOUD_FREQ", &c.MinCloudFreq)
	num("TOPICS", &c.Topics)
	num("TOP_TERMS", &c.TopTerms)
	num("LDA_ITERATIONS", &c.LDAIterations)
	num("WATCH_DEBOUNCE_MS", &c.Watch.DebounceMS)
	if v, ok := os.LookupEnv(EnvPrefix + "SEED"); ok {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sSEED: %w", EnvPrefix, err))
		} else {
			c.Seed = seed
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "FOLD_DIACRITICS"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sFOLD_DIACRITICS: %w", EnvPrefix, err))
		} else {
			c.FoldDiacritics = b
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "FILLER_WORDS"); ok {
		c.FillerWords = SplitList(v)
	}
	return errors.Join(errs...)
}

// SplitList splits a comma separated list, dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate rejects settings no run could use.
func (c *Config) Validate() error {
	var errs []error
	if c.InputDir == "" {
		errs = append(errs, errors.New("input_dir is required"))
	}
	if c.Topics < 1 {
		errs = append(errs, fmt.Errorf("topics must be at least 1, got %d", c.Topics))
	}
	if c.TopTerms < 1 {
		errs = append(errs, fmt.Errorf("top_terms must be at least 1, got %d", c.TopTerms))
	}
	if c.MinCloudFreq < 1 {
		errs = append(errs, fmt.Errorf("min_cloud_freq must be at least 1, got %d", c.MinCloudFreq))
	}
	if c.TopN < 0 {
		errs = append(errs, fmt.Errorf("top_n must not be negative, got %d", c.TopN))
	}
	if c.LDAIterations < 0 {
		errs = append(errs, fmt.Errorf("lda_iterations must not be negative, got %d", c.LDAIterations))
	}
	switch c.Export.Format {
	case "json", "msgpack":
	default:
		errs = append(errs, fmt.Errorf("export.format must be json or msgpack, got %q", c.Export.Format))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
