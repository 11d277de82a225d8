package main

import (
	"github.com/spf13/cobra"

	"github.com/oarkflow/transcripts/nlp/config"
	"github.com/oarkflow/transcripts/nlp/pipeline"
	"github.com/oarkflow/transcripts/nlp/server"
)

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			p, err := pipeline.New(a.cfg, pipeline.WithLogger(a.log))
			if err != nil {
				return err
			}
			return server.New(p, a.log).Run(cmd.Context(), a.cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", config.Default().Server.Addr, "listen address")
	return cmd
}
