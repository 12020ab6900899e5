package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/csvpeek-cli/internal/analysis"
	"github.com/KaramelBytes/csvpeek-cli/internal/utils"
)

// Renderer writes reports in one format.
type Renderer struct {
	format Format
	colors palette
}

// New builds a renderer. Color only affects the table format.
func New(format Format, useColor bool) *Renderer {
	return &Renderer{format: format, colors: newPalette(useColor)}
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format { return r.format }

// Summary writes rep to w.
func (r *Renderer) Summary(w io.Writer, rep SummaryReport) error {
	switch r.format {
	case JSON:
		return writeJSON(w, rep.Stats)
	case NDJSON:
		return writeNDJSON(w, rep.Stats)
	case CSV:
		return summaryCSV(w, rep.Stats)
	case YAML:
		return writeYAML(w, rep.Stats)
	case Markdown:
		_, err := io.WriteString(w, SummaryMarkdown(rep))
		return err
	default:
		return r.summaryTable(w, rep)
	}
}

// Schema writes rep to w.
func (r *Renderer) Schema(w io.Writer, rep SchemaReport) error {
	switch r.format {
	case JSON:
		return writeJSON(w, rep.Columns)
	case NDJSON:
		return writeNDJSON(w, rep.Columns)
	case CSV:
		return schemaCSV(w, rep.Columns)
	case YAML:
		return writeYAML(w, rep.Columns)
	case Markdown:
		_, err := io.WriteString(w, SchemaMarkdown(rep))
		return err
	default:
		return r.schemaTable(w, rep)
	}
}

func (r *Renderer) summaryTable(w io.Writer, rep SummaryReport) error {
	l := r.colors.label
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s %s\n", l("file:"), rep.File)
	fmt.Fprintf(&b, "%s %d (%s %d)\n", l("rows:"), rep.TotalRows, l("matched:"), rep.Matched)
	if rep.Filter != "" {
		fmt.Fprintf(&b, "%s %s\n", l("filter:"), rep.Filter)
	}
	b.WriteString("\n")

	t := newTable(&b, []string{"column", "type", "count", "null%", "unique", "min", "max", "mean", "median", "std"})
	for _, s := range rep.Stats {
		t.Append([]string{
			s.Name,
			r.colors.dataType(s.DataType),
			strconv.Itoa(s.Count),
			fmt.Sprintf("%.1f%%", s.NullRate),
			orDash(s.UniqueCount, strconv.Itoa),
			orDash(s.Min, identity),
			orDash(s.Max, identity),
			orDash(s.Mean, fixed2),
			orDash(s.Median, fixed2),
			orDash(s.Std, fixed2),
		})
	}
	t.Render()

	first := true
	for _, s := range rep.Stats {
		if s.TopValues == nil {
			continue
		}
		if first {
			b.WriteString("\nTop values:\n")
			first = false
		}
		fmt.Fprintf(&b, "  %s: %s\n", s.Name, joinTop(s.TopValues))
	}
	_, err := w.Write(b.Bytes())
	return err
}

func (r *Renderer) schemaTable(w io.Writer, rep SchemaReport) error {
	l := r.colors.label
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s %s\n", l("file:"), rep.File)
	fmt.Fprintf(&b, "%s %d\n\n", l("columns:"), len(rep.Columns))

	t := newTable(&b, []string{"column", "type", "null%", "samples"})
	for _, c := range rep.Columns {
		samples := "-"
		if len(c.SampleValues) > 0 {
			samples = strings.Join(c.SampleValues, ", ")
		}
		t.Append([]string{c.Name, r.colors.dataType(c.InferredType), fmt.Sprintf("%.1f%%", c.NullRate), samples})
	}
	t.Render()
	_, err := w.Write(b.Bytes())
	return err
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return t
}

func joinTop(tops []analysis.CategoryCount) string {
	parts := make([]string, len(tops))
	for i, kv := range tops {
		parts[i] = fmt.Sprintf("%s(%d)", kv.Value, kv.Count)
	}
	return strings.Join(parts, ", ")
}

func writeJSON(w io.Writer, v any) error {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

func writeNDJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return fmt.Errorf("encode ndjson: %w", err)
		}
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func summaryCSV(w io.Writer, stats []analysis.ColumnStats) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"column", "type", "count", "null_count", "null_rate", "unique_count", "min", "max",
		"mean", "median", "p25", "p75", "sum", "std", "min_len", "max_len"})
	for _, s := range stats {
		_ = cw.Write([]string{
			s.Name,
			s.DataType.String(),
			strconv.Itoa(s.Count),
			strconv.Itoa(s.NullCount),
			fmt.Sprintf("%.2f", s.NullRate),
			orEmpty(s.UniqueCount, strconv.Itoa),
			orEmpty(s.Min, identity),
			orEmpty(s.Max, identity),
			orEmpty(s.Mean, fixed6),
			orEmpty(s.Median, fixed6),
			orEmpty(s.P25, fixed6),
			orEmpty(s.P75, fixed6),
			orEmpty(s.Sum, fixed6),
			orEmpty(s.Std, fixed6),
			orEmpty(s.MinLen, strconv.Itoa),
			orEmpty(s.MaxLen, strconv.Itoa),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

func schemaCSV(w io.Writer, cols []analysis.ColumnSchema) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"column", "type", "null_count", "total_count", "null_rate", "sample_values"})
	for _, c := range cols {
		_ = cw.Write([]string{
			c.Name,
			c.InferredType.String(),
			strconv.Itoa(c.NullCount),
			strconv.Itoa(c.TotalCount),
			fmt.Sprintf("%.2f", c.NullRate),
			strings.Join(c.SampleValues, "; "),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

func identity(s string) string { return s }
func fixed2(f float64) string  { return strconv.FormatFloat(f, 'f', 2, 64) }
func fixed6(f float64) string  { return strconv.FormatFloat(f, 'f', 6, 64) }

func orDash[T any](v *T, f func(T) string) string {
	if v == nil {
		return "-"
	}
	return f(*v)
}

func orEmpty[T any](v *T, f func(T) string) string {
	if v == nil {
		return ""
	}
	return f(*v)
}
