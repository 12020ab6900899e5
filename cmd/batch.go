package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/csvpeek-cli/internal/output"
	"github.com/KaramelBytes/csvpeek-cli/internal/reader"
	"github.com/KaramelBytes/csvpeek-cli/internal/utils"
)

var batchOutDir string

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Summarize multiple CSV/TSV/XLSX files with progress and optional per-file reports",
	Long: `Summarize every file matched by the given paths or glob patterns, in sorted
order. With --out-dir each summary is written to <name>.summary.<ext>;
existing reports are never overwritten (name__2, name__3, ...).

Examples:
  csvp batch 'data/*.csv'
  csvp batch 'exports/*.xlsx' --sheet-name Data -f markdown --out-dir reports`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
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
		if batchOutDir != "" {
			if err := utils.EnsureDir(batchOutDir); err != nil {
				return fmt.Errorf("create out dir: %w", err)
			}
		}

		stderr := cmd.ErrOrStderr()
		var combined bytes.Buffer
		total := len(files)
		for i, path := range files {
			if !cfg.Quiet {
				fmt.Fprintf(stderr, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			res, err := summarize(cmd, path, req)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			warn(cmd, res.Warnings)
			rep := summaryReport(path, res)

			if batchOutDir == "" {
				if i > 0 {
					combined.WriteString(separator(format))
				}
				if err := r.Summary(&combined, rep); err != nil {
					return err
				}
				continue
			}

			base := reportBase(path)
			outFile := utils.UniquePath(batchOutDir, base, ".summary."+format.Ext())
			if filepath.Base(outFile) != base+".summary."+format.Ext() && !cfg.Quiet {
				fmt.Fprintf(stderr, "⚠ Detected existing summary, writing to %s to avoid overwrite.\n", filepath.Base(outFile))
			}
			var buf bytes.Buffer
			if err := r.Summary(&buf, rep); err != nil {
				return err
			}
			if err := utils.SafeWriteFile(outFile, buf.Bytes()); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			if !cfg.Quiet {
				fmt.Fprintf(stderr, "✓ Wrote %s\n", outFile)
			}
		}
		if batchOutDir != "" {
			return nil
		}
		return emit(cmd, "summaries", func(w io.Writer) error {
			_, err := w.Write(combined.Bytes())
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addSummaryFlags(batchCmd)
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "write one <name>.summary.<ext> report per input into this directory")
}

// separator goes between reports of consecutive files on one stream.
func separator(f output.Format) string {
	switch f {
	case output.Table, output.Markdown:
		return "\n"
	case output.YAML:
		return "---\n"
	}
	return ""
}

// expandInputs resolves globs and literal paths, dropping duplicates, sorted.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

// reportBase names the report for path; XLSX inputs read by sheet name get a
// __sheet-<slug> suffix.
func reportBase(path string) string {
	base := utils.StemOf(path)
	if flagSheet == "" || !reader.IsXLSX(path) {
		return base
	}
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(flagSheet)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' {
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "sheet"
	}
	return base + "__sheet-" + slug
}
