package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/csvpeek-cli/internal/output"
	"github.com/KaramelBytes/csvpeek-cli/internal/pipeline"
)

var (
	sumCols     string
	sumWhere    string
	sumFormat   string
	sumTopK     int
	sumParallel bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Per-column statistics, optionally over the rows matching a filter",
	Long: `Compute count, nulls, distinct values, min/max, mean, percentiles and
standard deviation for every selected column in a single pass.

Examples:
  csvp summary data.csv
  csvp summary data.csv -c 'price,qty' -w 'region == "EU" && qty > 0'
  csvp summary report.xlsx --sheet-name Data -f json -o stats.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummary(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	addSummaryFlags(summaryCmd)
}

// addSummaryFlags registers the summary flags on c; the root command carries
// them too so `csvp <file>` accepts the same options.
func addSummaryFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVarP(&sumCols, "cols", "c", "", "columns to analyze: names, indices, ranges (a..b, a..=b)")
	f.StringVarP(&sumWhere, "where", "w", "", "filter expression, e.g. 'age > 30 && is_not_null(email)'")
	f.StringVarP(&sumFormat, "format", "f", "", "output format: table|json|ndjson|csv|yaml|markdown")
	f.IntVar(&sumTopK, "top-k", 0, "number of most frequent values per string column (default from config, 5)")
	f.BoolVar(&sumParallel, "parallel", false, "finalize column statistics concurrently")
}

func summaryRequest(cmd *cobra.Command) (pipeline.SummaryRequest, error) {
	req := pipeline.SummaryRequest{
		Columns:  sumCols,
		Where:    sumWhere,
		MaxRows:  cfg.MaxRows,
		TopK:     cfg.TopK,
		Parallel: cfg.ParallelFinalize,
	}
	if cmd.Flags().Changed("top-k") {
		if sumTopK <= 0 {
			return req, fmt.Errorf("--top-k must be positive, got %d", sumTopK)
		}
		req.TopK = sumTopK
	}
	if cmd.Flags().Changed("parallel") {
		req.Parallel = sumParallel
	}
	return req, nil
}

// summarize runs the summary pipeline over one file.
func summarize(cmd *cobra.Command, path string, req pipeline.SummaryRequest) (*pipeline.SummaryResult, error) {
	src, finish, err := openSource(cmd, path)
	if err != nil {
		return nil, err
	}
	defer finish()
	return pipeline.Summary(cmd.Context(), src, req)
}

func summaryReport(path string, res *pipeline.SummaryResult) output.SummaryReport {
	return output.SummaryReport{
		File:      path,
		TotalRows: res.TotalRows,
		Matched:   res.Matched,
		Filter:    res.Filter,
		Stats:     res.Stats,
		Warnings:  res.Warnings,
	}
}

func runSummary(cmd *cobra.Command, path string) error {
	format, err := resolveFormat(cmd, sumFormat)
	if err != nil {
		return err
	}
	r, err := newRenderer(format)
	if err != nil {
		return err
	}
	req, err := summaryRequest(cmd)
	if err != nil {
		return err
	}
	res, err := summarize(cmd, path, req)
	if err != nil {
		return err
	}
	warn(cmd, res.Warnings)
	rep := summaryReport(path, res)
	return emit(cmd, "summary", func(w io.Writer) error { return r.Summary(w, rep) })
}
