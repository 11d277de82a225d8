package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/oarkflow/transcripts/nlp/config"
	"github.com/oarkflow/transcripts/nlp/logger"
	"github.com/oarkflow/transcripts/nlp/report"
	"github.com/oarkflow/transcripts/nlp/watch"
)

func watchCmd(a *app) *cobra.Command {
	f := &analysisFlags{}
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-run the analysis whenever a transcript changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("debounce") {
				a.cfg.Watch.DebounceMS = int(debounce / time.Millisecond)
			}
			p, err := a.pipeline(cmd, f, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			run := func(ctx context.Context) error {
				res, err := p.Run(ctx)
				if err != nil {
					return err
				}
				return report.Print(out, report.Sections(res.Report(a.cfg))...)
			}
			w := watch.New(a.cfg.InputDir, a.cfg.Extension,
				time.Duration(a.cfg.Watch.DebounceMS)*time.Millisecond, run, a.log)
			return w.Run(logger.ContextWithLogger(cmd.Context(), a.log))
		},
	}
	f.register(cmd.Flags())
	cmd.Flags().DurationVar(&debounce, "debounce",
		time.Duration(config.Default().Watch.DebounceMS)*time.Millisecond, "quiet period before re-running")
	return cmd
}
