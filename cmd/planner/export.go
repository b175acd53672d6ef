package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"studyplan/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the whole plan as JSON or YAML",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			fatal("invalid --format", err)
		}

		a, cleanup := openApp(false)
		defer cleanup()

		var w io.Writer = os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				cleanup()
				fatal("failed to create output file", err)
			}
			defer f.Close()
			w = f
		}

		if err := export.Encode(w, format, a.Plan.Tasks()); err != nil {
			cleanup()
			fatal("failed to export plan", err)
		}
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format (json, yaml)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default is stdout)")
	rootCmd.AddCommand(exportCmd)
}
