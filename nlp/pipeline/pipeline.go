// Package pipeline composes the analysis stages into a single run: load,
// clean, count, score, model, then render and export.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oarkflow/xid"
	"golang.org/x/sync/errgroup"

	"github.com/oarkflow/transcripts/nlp/cleaner"
	"github.com/oarkflow/transcripts/nlp/config"
	"github.com/oarkflow/transcripts/nlp/corpus"
	"github.com/oarkflow/transcripts/nlp/dtm"
	"github.com/oarkflow/transcripts/nlp/export"
	"github.com/oarkflow/transcripts/nlp/frequency"
	"github.com/oarkflow/transcripts/nlp/logger"
	"github.com/oarkflow/transcripts/nlp/metrics"
	"github.com/oarkflow/transcripts/nlp/ngram"
	"github.com/oarkflow/transcripts/nlp/render"
	"github.com/oarkflow/transcripts/nlp/sentiment"
	"github.com/oarkflow/transcripts/nlp/stopwords"
	"github.com/oarkflow/transcripts/nlp/tokenizer"
	"github.com/oarkflow/transcripts/nlp/topic"
)

// Artifact file names written by Render.
const (
	WordCloudFile = "wordcloud.pdf"
	SentimentFile = "sentiment.png"
	TopicsFile    = "topics.png"
	ReportName    = "report"
)

// contributionsPerPolarity bounds the sentiment word list kept in results.
const contributionsPerPolarity = 10

// Result holds every intermediate table of one run.
type Result struct {
	RunID     string
	CreatedAt time.Time

	Documents     []corpus.Document
	Tokens        []cleaner.Token
	Words         frequency.Table
	Bigrams       frequency.Table
	Sentiment     []sentiment.Tally
	Contributions []sentiment.Contribution
	Matrix        *dtm.Matrix
	Model         *topic.Model
	TopTerms      []topic.TopicTerm
	Dominant      []topic.DocumentTopic
	Distinctive   []dtm.TermScore
	Artifacts     []string
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used when the context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithMetrics records run metrics on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// Pipeline runs the analysis for one configuration. It is safe for
// concurrent use; every run works on its own tables.
type Pipeline struct {
	cfg     *config.Config
	cleaner *cleaner.Cleaner
	lexicon sentiment.Lexicon
	log     *slog.Logger
	metrics *metrics.Metrics

	archiveMu sync.Mutex
}

// New validates cfg and loads the stop word list and lexicon it names.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	stop := stopwords.Default()
	if cfg.StopwordsFile != "" {
		s, err := stopwords.Load(cfg.StopwordsFile)
		if err != nil {
			return nil, err
		}
		stop = s
	}
	lex := sentiment.DefaultLexicon()
	if cfg.LexiconFile != "" {
		l, err := sentiment.LoadLexicon(cfg.LexiconFile)
		if err != nil {
			return nil, err
		}
		lex = l
	}
	p := &Pipeline{
		cfg: cfg,
		cleaner: cleaner.New(cleaner.Options{
			Stopwords:      stop,
			Filler:         cfg.FillerWords,
			FoldDiacritics: cfg.FoldDiacritics,
		}),
		lexicon: lex,
		log:     slog.Default(),
		metrics: metrics.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() *config.Config { return p.cfg }

// Metrics returns the collectors the pipeline records into.
func (p *Pipeline) Metrics() *metrics.Metrics { return p.metrics }

func (p *Pipeline) logger(ctx context.Context) *slog.Logger {
	if l := logger.FromContext(ctx); l != slog.Default() {
		return l
	}
	return p.log
}

// Run loads the configured input directory, analyses it, renders the
// artifacts and exports the report. Any stage error aborts the run.
func (p *Pipeline) Run(ctx context.Context) (res *Result, err error) {
	log := p.logger(ctx)
	defer func() {
		p.metrics.Finish(err)
		if p.cfg.MetricsFile != "" {
			if werr := p.metrics.WriteTextfile(p.cfg.MetricsFile); werr != nil {
				log.Warn("writing metrics textfile failed", "path", p.cfg.MetricsFile, "error", werr)
			}
		}
	}()

	done := p.metrics.Stage("load")
	docs, err := corpus.Load(p.cfg.InputDir, p.cfg.Extension)
	done()
	if err != nil {
		return nil, err
	}
	log.Info("corpus loaded", "dir", p.cfg.InputDir, "documents", len(docs))

	res, err = p.Analyze(ctx, docs)
	if err != nil {
		return nil, err
	}
	if err := p.Render(ctx, res, p.cfg.OutputDir); err != nil {
		return nil, err
	}
	path, err := p.Export(ctx, res, p.cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	res.Artifacts = append(res.Artifacts, path)
	log.Info("run finished", "run_id", res.RunID, "artifacts", len(res.Artifacts))
	return res, nil
}

// Analyze runs the text stages over docs without touching the file system.
func (p *Pipeline) Analyze(ctx context.Context, docs []corpus.Document) (*Result, error) {
	log := p.logger(ctx)
	res := &Result{
		RunID:     xid.New().String(),
		CreatedAt: time.Now().UTC(),
		Documents: docs,
	}
	p.metrics.Documents.Add(float64(len(docs)))

	stage := func(name string, fn func() error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		done := p.metrics.Stage(name)
		defer done()
		if err := fn(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}

	err := stage("clean", func() error {
		res.Tokens = p.cleaner.Clean(docs)
		raw := 0
		for _, d := range docs {
			raw += len(tokenizer.Words(d.Text))
		}
		p.metrics.Tokens.WithLabelValues("kept").Add(float64(len(res.Tokens)))
		p.metrics.Tokens.WithLabelValues("dropped").Add(float64(raw - len(res.Tokens)))
		log.Debug("tokens cleaned", "raw", raw, "kept", len(res.Tokens))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := stage("frequency", func() (err error) {
		res.Words, err = frequency.Count(res.Tokens)
		if err != nil {
			return err
		}
		res.Bigrams, err = ngram.Count(docs, p.cleaner, 2)
		return err
	}); err != nil {
		return nil, err
	}

	if err := stage("sentiment", func() (err error) {
		res.Sentiment, err = sentiment.Score(corpus.Names(docs), res.Tokens, p.lexicon)
		if err != nil {
			return err
		}
		res.Contributions = sentiment.Contributions(res.Tokens, p.lexicon, contributionsPerPolarity)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := stage("dtm", func() (err error) {
		res.Matrix, err = dtm.Build(res.Tokens)
		if err != nil {
			return err
		}
		res.Distinctive = res.Matrix.TopTFIDF(p.cfg.TopTerms)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := stage("topic", func() (err error) {
		res.Model, err = topic.Fit(res.Matrix, topic.Options{
			Topics:     p.cfg.Topics,
			Seed:       p.cfg.Seed,
			Iterations: p.cfg.LDAIterations,
		})
		if err != nil {
			return err
		}
		res.TopTerms = res.Model.TopTerms(p.cfg.TopTerms)
		res.Dominant = res.Model.Dominant()
		return nil
	}); err != nil {
		return nil, err
	}

	docCount, terms := res.Matrix.Dims()
	log.Info("analysis complete",
		"run_id", res.RunID,
		"documents", docCount,
		"terms", terms,
		"tokens", len(res.Tokens),
		"topics", res.Model.Topics(),
	)
	return res, nil
}

// Render writes the word cloud, sentiment chart and topic chart into dir.
// The three artifacts are drawn concurrently. An artifact with nothing to
// draw, such as a cloud where no word reaches the minimum count, is skipped.
func (p *Pipeline) Render(ctx context.Context, res *Result, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer p.metrics.Stage("render")()

	cloud := render.DefaultCloudOptions()
	cloud.MinFreq = p.cfg.MinCloudFreq

	jobs := []struct {
		name string
		draw func(f *os.File) error
	}{
		{WordCloudFile, func(f *os.File) error { return render.WordCloud(f, res.Words, cloud) }},
		{SentimentFile, func(f *os.File) error { return render.SentimentChart(f, res.Sentiment) }},
		{TopicsFile, func(f *os.File) error { return render.TopicChart(f, res.TopTerms) }},
	}
	paths := make([]string, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, job.name)
			err := writeFile(path, job.draw)
			switch {
			case errors.Is(err, render.ErrNothingToDraw):
				p.logger(ctx).Warn("artifact skipped", "file", job.name, "reason", err)
				return nil
			case err != nil:
				return fmt.Errorf("render %s: %w", job.name, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, path := range paths {
		if path != "" {
			res.Artifacts = append(res.Artifacts, path)
		}
	}
	p.logger(ctx).Debug("artifacts rendered", "dir", dir)
	return nil
}

func writeFile(path string, fn func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// Export writes the run report into dir and, when configured, archives it
// in the SQLite store. It returns the report path.
func (p *Pipeline) Export(ctx context.Context, res *Result, dir string) (string, error) {
	defer p.metrics.Stage("export")()
	format := export.Format(p.cfg.Export.Format)
	rep := res.Report(p.cfg)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	path := filepath.Join(dir, ReportName+format.Ext())
	err := writeFile(path, func(f *os.File) error { return export.Encode(f, rep, format) })
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := p.archive(ctx, rep); err != nil {
		return "", err
	}
	return path, nil
}

// Archive saves the report of res in the configured SQLite store. It is a
// no-op when no store is configured.
func (p *Pipeline) Archive(ctx context.Context, res *Result) error {
	return p.archive(ctx, res.Report(p.cfg))
}

func (p *Pipeline) archive(ctx context.Context, rep *export.Report) error {
	if p.cfg.Export.SQLite == "" {
		return nil
	}
	p.archiveMu.Lock()
	defer p.archiveMu.Unlock()
	store, err := export.OpenStore(p.cfg.Export.SQLite)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Save(ctx, rep); err != nil {
		return err
	}
	p.logger(ctx).Debug("run archived", "db", p.cfg.Export.SQLite, "run_id", rep.RunID)
	return nil
}

// Report flattens res into its serialisable form.
// TopWords is cut to cfg.TopN.
func (res *Result) Report(cfg *config.Config) *export.Report {
	rep := &export.Report{
		RunID:         res.RunID,
		CreatedAt:     res.CreatedAt,
		InputDir:      cfg.InputDir,
		Documents:     corpus.Names(res.Documents),
		Tokens:        len(res.Tokens),
		TopWords:      res.Words.Top(cfg.TopN),
		Bigrams:       res.Bigrams.Top(cfg.TopN),
		Sentiment:     res.Sentiment,
		Contributions: res.Contributions,
		Seed:          cfg.Seed,
		TopTerms:      res.TopTerms,
		Dominant:      res.Dominant,
		Distinctive:   res.Distinctive,
		Artifacts:     res.Artifacts,
	}
	if res.Model != nil {
		rep.Topics = res.Model.Topics()
	}
	return rep
}
