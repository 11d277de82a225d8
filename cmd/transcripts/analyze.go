package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oarkflow/transcripts/nlp/config"
	"github.com/oarkflow/transcripts/nlp/logger"
	"github.com/oarkflow/transcripts/nlp/pipeline"
	"github.com/oarkflow/transcripts/nlp/report"
)

// analysisFlags are shared by analyze and watch.
type analysisFlags struct {
	out         string
	ext         string
	topics      int
	seed        uint64
	topN        int
	topTerms    int
	minFreq     int
	iterations  int
	format      string
	sqlite      string
	metricsFile string
	stopwords   string
	lexicon     string
	filler      string
	fold        bool
}

func (f *analysisFlags) register(fs *pflag.FlagSet) {
	d := config.Default()
	fs.StringVarP(&f.out, "out", "o", d.OutputDir, "output directory for artifacts and the report")
	fs.StringVar(&f.ext, "ext", d.Extension, "transcript file extension")
	fs.IntVarP(&f.topics, "topics", "k", d.Topics, "number of LDA topics")
	fs.Uint64Var(&f.seed, "seed", d.Seed, "random seed for the topic model")
	fs.IntVar(&f.topN, "top", d.TopN, "words shown in the frequency table")
	fs.IntVar(&f.topTerms, "top-terms", d.TopTerms, "terms shown per topic")
	fs.IntVar(&f.minFreq, "min-freq", d.MinCloudFreq, "minimum count for the word cloud")
	fs.IntVar(&f.iterations, "iterations", d.LDAIterations, "LDA iterations (0 keeps the library default)")
	fs.StringVar(&f.format, "format", d.Export.Format, "report format: json or msgpack")
	fs.StringVar(&f.sqlite, "sqlite", "", "archive runs into this SQLite database")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write prometheus metrics to this textfile")
	fs.StringVar(&f.stopwords, "stopwords", "", "stop word list replacing the built-in one")
	fs.StringVar(&f.lexicon, "lexicon", "", "word,sentiment lexicon replacing the built-in one")
	fs.StringVar(&f.filler, "filler", strings.Join(d.FillerWords, ","), "comma separated filler words")
	fs.BoolVar(&f.fold, "fold-diacritics", d.FoldDiacritics, "strip diacritics before filtering")
}

// apply copies the flags the user set over cfg.
func (f *analysisFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("out", func() { cfg.OutputDir = f.out })
	set("ext", func() { cfg.Extension = f.ext })
	set("topics", func() { cfg.Topics = f.topics })
	set("seed", func() { cfg.Seed = f.seed })
	set("top", func() { cfg.TopN = f.topN })
	set("top-terms", func() { cfg.TopTerms = f.topTerms })
	set("min-freq", func() { cfg.MinCloudFreq = f.minFreq })
	set("iterations", func() { cfg.LDAIterations = f.iterations })
	set("format", func() { cfg.Export.Format = f.format })
	set("sqlite", func() { cfg.Export.SQLite = f.sqlite })
	set("metrics-file", func() { cfg.MetricsFile = f.metricsFile })
	set("stopwords", func() { cfg.StopwordsFile = f.stopwords })
	set("lexicon", func() { cfg.LexiconFile = f.lexicon })
	set("filler", func() { cfg.FillerWords = config.SplitList(f.filler) })
	set("fold-diacritics", func() { cfg.FoldDiacritics = f.fold })
}

// pipeline applies flags and the optional directory argument, then builds
// the pipeline.
func (a *app) pipeline(cmd *cobra.Command, f *analysisFlags, args []string) (*pipeline.Pipeline, error) {
	f.apply(cmd.Flags(), a.cfg)
	if len(args) > 0 {
		a.cfg.InputDir = args[0]
	}
	return pipeline.New(a.cfg, pipeline.WithLogger(a.log))
}

func analyzeCmd(a *app) *cobra.Command {
	f := &analysisFlags{}
	var quiet bool
	cmd := &cobra.Command{
		Use:   "analyze [dir]",
		Short: "Analyse a transcript folder once and write the artifacts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pipeline(cmd, f, args)
			if err != nil {
				return err
			}
			ctx := logger.ContextWithLogger(cmd.Context(), a.log)
			res, err := p.Run(ctx)
			if err != nil {
				return err
			}
			if quiet {
				return nil
			}
			return report.Print(cmd.OutOrStdout(), report.Sections(res.Report(a.cfg))...)
		},
	}
	f.register(cmd.Flags())
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print tables")
	return cmd
}
