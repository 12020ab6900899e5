package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/csvpeek-cli/internal/output"
	"github.com/KaramelBytes/csvpeek-cli/internal/progress"
	"github.com/KaramelBytes/csvpeek-cli/internal/reader"
	"github.com/KaramelBytes/csvpeek-cli/internal/utils"
)

// openSource opens path with the effective reader settings and, unless quiet,
// a progress bar for large files. The returned finish func must be called
// once reading is done.
func openSource(cmd *cobra.Command, path string) (reader.Source, func(), error) {
	bar := progress.ForFile(path, cmd.ErrOrStderr(), cfg.Quiet)
	opt := reader.Options{
		Delimiter:  cfg.Delimiter,
		NoHeader:   flagNoHeader,
		Encoding:   cfg.Encoding,
		SheetName:  flagSheet,
		SheetIndex: flagSheetIdx,
		Progress:   bar.Writer(),
	}
	src, err := reader.Open(path, opt)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("opened input", "path", path, "encoding", src.Encoding(), "columns", len(src.Header()))
	finish := func() {
		bar.Finish()
		if err := src.Close(); err != nil {
			slog.Debug("close input", "path", path, "error", err)
		}
	}
	return src, finish, nil
}

// resolveFormat applies a --format flag over the configured default.
func resolveFormat(cmd *cobra.Command, flag string) (output.Format, error) {
	name := cfg.DefaultFormat
	if cmd.Flags().Changed("format") {
		name = flag
	}
	if name == "" {
		name = string(output.Table)
	}
	return output.ParseFormat(name)
}

// useColor decides the color mode: auto means stdout is a terminal and no
// output file.
func useColor() (bool, error) {
	switch cfg.Color {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return !color.NoColor && flagOutput == "", nil
	}
	return false, fmt.Errorf("invalid --color: %s (use auto, always or never)", cfg.Color)
}

func newRenderer(format output.Format) (*output.Renderer, error) {
	c, err := useColor()
	if err != nil {
		return nil, err
	}
	return output.New(format, c), nil
}

// emit writes through render to --output or the command's stdout.
func emit(cmd *cobra.Command, what string, render func(io.Writer) error) error {
	if flagOutput == "" {
		return render(cmd.OutOrStdout())
	}
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(flagOutput, buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s to %s\n", what, flagOutput)
	}
	return nil
}

func warn(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s\n", w)
	}
}
