package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oarkflow/transcripts/nlp/config"
	"github.com/oarkflow/transcripts/nlp/export"
	"github.com/oarkflow/transcripts/nlp/report"
)

func showCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <report>",
		Short: "Print the tables of a saved report.json or report.msgpack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := readReport(args[0])
			if err != nil {
				return err
			}
			return report.Print(cmd.OutOrStdout(), report.Sections(rep)...)
		},
	}
}

func readReport(path string) (*export.Report, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case export.JSON.Ext():
		return config.LoadJSON[export.Report](path)
	case export.MsgPack.Ext():
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return export.Decode(f, export.MsgPack)
	}
	return nil, fmt.Errorf("unknown report format %q", filepath.Ext(path))
}
