package output

import (
	"fmt"
	"strings"
)

// SummaryMarkdown renders a compact sectioned report.
func SummaryMarkdown(rep SummaryReport) string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if rep.File != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", rep.File))
	}
	if rep.Matched < rep.TotalRows {
		b.WriteString(fmt.Sprintf("Rows: %d (matched %d)\n", rep.TotalRows, rep.Matched))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", rep.TotalRows))
	}
	if rep.Filter != "" {
		b.WriteString(fmt.Sprintf("Filter: %s\n", rep.Filter))
	}
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(rep.Stats)))

	b.WriteString("[SCHEMA]\n")
	for _, s := range rep.Stats {
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeName(s.Name), s.DataType, s.Count, s.NullRate))
		if s.Mean != nil {
			b.WriteString(fmt.Sprintf("; min %s, max %s, mean %.4g", *s.Min, *s.Max, *s.Mean))
			if s.Median != nil {
				b.WriteString(fmt.Sprintf(", median %.4g", *s.Median))
			}
			if s.Std != nil {
				b.WriteString(fmt.Sprintf(", std %.4g", *s.Std))
			}
		}
		if len(s.TopValues) > 0 {
			b.WriteString("; top: ")
			for i, kv := range s.TopValues {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
			}
			if s.UniqueCount != nil && *s.UniqueCount > len(s.TopValues) {
				b.WriteString(fmt.Sprintf("; unique=%d", *s.UniqueCount))
			}
		}
		b.WriteString("\n")
	}
	writeNotes(&b, rep.Warnings)
	return b.String()
}

// SchemaMarkdown renders inferred column types as a sectioned report.
func SchemaMarkdown(rep SchemaReport) string {
	var b strings.Builder
	b.WriteString("[DATASET SCHEMA]\n")
	if rep.File != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", rep.File))
	}
	if len(rep.Columns) > 0 {
		b.WriteString(fmt.Sprintf("Rows: %d\n", rep.Columns[0].TotalCount))
	}
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(rep.Columns)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range rep.Columns {
		b.WriteString(fmt.Sprintf("- %s: %s (null %d/%d, %.1f%%)", safeName(c.Name), c.InferredType, c.NullCount, c.TotalCount, c.NullRate))
		if len(c.SampleValues) > 0 {
			b.WriteString("; e.g., ")
			for i, ex := range c.SampleValues {
				if i > 0 {
					b.WriteString(" | ")
				}
				b.WriteString(safeVal(ex))
			}
		}
		b.WriteString("\n")
	}
	writeNotes(&b, rep.Warnings)
	return b.String()
}

func writeNotes(b *strings.Builder, notes []string) {
	if len(notes) == 0 {
		return
	}
	b.WriteString("\n[NOTES]\n")
	for _, n := range notes {
		b.WriteString("- ")
		b.WriteString(n)
		b.WriteString("\n")
	}
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
