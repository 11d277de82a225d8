package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/oarkflow/transcripts/nlp/config"
	"github.com/oarkflow/transcripts/nlp/logger"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configFile string
	envFile    string
	logLevel   string
	logFile    string

	cfg    *config.Config
	log    *slog.Logger
	closer io.Closer
}

func rootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "transcripts",
		Short:         "Exploratory text analysis of transcript folders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (.yaml, .json or .bcl)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file with TRANSCRIPTS_* overrides")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	flags.StringVar(&a.logFile, "log-file", "", "also log to this rotated file")

	root.AddCommand(
		analyzeCmd(a),
		serveCmd(a),
		watchCmd(a),
		showCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Resolve(a.configFile, a.envFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = a.logFile
	}
	log, closer, err := logger.New(logger.Options{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		Out:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	slog.SetDefault(log)
	a.cfg, a.log, a.closer = cfg, log, closer
	return nil
}
