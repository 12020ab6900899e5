package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/csvpeek-cli/internal/config"
)

var (
	// Global flags; file-reading ones override config when set.
	cfgFile      string
	debug        bool
	flagDelim    string
	flagNoHeader bool
	flagOutput   string
	flagQuiet    bool
	flagColor    string
	flagEncoding string
	flagSheet    string
	flagSheetIdx int
	flagMaxRows  int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "csvp [file]",
	Short: "csvpeek: fast column statistics and schema inference for CSV, TSV and XLSX",
	Long: `csvpeek reads a delimited file (or an XLSX sheet) in one pass and reports
per-column statistics or inferred types, optionally over the rows matching a
filter expression.

Running csvp with a file and no subcommand is the same as csvp summary.
See "csvp guide" for filter syntax, column selection and formats.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runSummary(cmd, args[0])
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(setupLogging, loadConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.csvpeek/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	pf.StringVarP(&flagDelim, "delimiter", "d", "", "field delimiter: tab|comma|semicolon|pipe|space or one character (default ',' or tab for .tsv)")
	pf.BoolVar(&flagNoHeader, "no-header", false, "treat the first record as data and name columns col0, col1, ...")
	pf.StringVarP(&flagOutput, "output", "o", "", "write output to a file instead of stdout")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "suppress progress and non-essential output")
	pf.StringVar(&flagColor, "color", "", "color output: auto|always|never")
	pf.StringVarP(&flagEncoding, "encoding", "e", "", "input encoding (auto-detected if omitted; see csvp guide encoding)")
	pf.StringVar(&flagSheet, "sheet-name", "", "XLSX: sheet name to read")
	pf.IntVar(&flagSheetIdx, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	pf.IntVar(&flagMaxRows, "max-rows", 0, "maximum rows to accumulate (0 = unlimited; rows are still counted)")

	addSummaryFlags(rootCmd)
}

func setupLogging() {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With("run", uuid.NewString()))
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so commands still run
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("delimiter") {
		cfg.Delimiter = flagDelim
	}
	if f.Changed("encoding") {
		cfg.Encoding = flagEncoding
	}
	if f.Changed("color") {
		cfg.Color = flagColor
	}
	if f.Changed("quiet") {
		cfg.Quiet = flagQuiet
	}
	if f.Changed("max-rows") {
		cfg.MaxRows = flagMaxRows
	}
	slog.Debug("config loaded", "file", cfgFile, "format", cfg.DefaultFormat, "color", cfg.Color, "max_rows", cfg.MaxRows)
}
