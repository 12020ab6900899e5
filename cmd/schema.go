package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/csvpeek-cli/internal/output"
	"github.com/KaramelBytes/csvpeek-cli/internal/pipeline"
)

var (
	schFormat  string
	schSamples int
)

var schemaCmd = &cobra.Command{
	Use:   "schema <file>",
	Short: "Infer the type of every column",
	Long: `Infer integer, float, boolean or string for each column, with the null rate
and a few distinct sample values.

Examples:
  csvp schema data.csv
  csvp schema data.tsv -f csv --samples 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		format, err := resolveFormat(cmd, schFormat)
		if err != nil {
			return err
		}
		r, err := newRenderer(format)
		if err != nil {
			return err
		}
		req := pipeline.SchemaRequest{MaxRows: cfg.MaxRows, SampleValues: cfg.SampleValues}
		if cmd.Flags().Changed("samples") {
			if schSamples <= 0 {
				return fmt.Errorf("--samples must be positive, got %d", schSamples)
			}
			req.SampleValues = schSamples
		}

		src, finish, err := openSource(cmd, path)
		if err != nil {
			return err
		}
		res, err := pipeline.Schema(cmd.Context(), src, req)
		finish()
		if err != nil {
			return err
		}
		warn(cmd, res.Warnings)
		rep := output.SchemaReport{File: path, Columns: res.Columns, Warnings: res.Warnings}
		return emit(cmd, "schema", func(w io.Writer) error { return r.Schema(w, rep) })
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schFormat, "format", "f", "", "output format: table|json|ndjson|csv|yaml|markdown")
	schemaCmd.Flags().IntVar(&schSamples, "samples", 0, "distinct sample values per column (default from config, 5)")
}
