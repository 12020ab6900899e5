// Package output renders summary and schema results.
//
// Supported formats:
//   - table: aligned text table (default)
//   - json: indented JSON array
//   - ndjson: one JSON object per line
//   - csv: header row plus one row per column
//   - yaml: YAML sequence
//   - markdown: sectioned report
package output

import (
	"strings"

	"github.com/fatih/color"

	"github.com/KaramelBytes/csvpeek-cli/internal/analysis"
	"github.com/KaramelBytes/csvpeek-cli/internal/csverr"
	"github.com/KaramelBytes/csvpeek-cli/internal/types"
)

// Format names an output encoding.
type Format string

const (
	Table    Format = "table"
	JSON     Format = "json"
	NDJSON   Format = "ndjson"
	CSV      Format = "csv"
	YAML     Format = "yaml"
	Markdown Format = "markdown"
)

// Formats lists every supported format.
var Formats = []Format{Table, JSON, NDJSON, CSV, YAML, Markdown}

// ParseFormat resolves a format name case-insensitively; "md" is markdown.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "md" {
		return Markdown, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	supported := make([]string, len(Formats))
	for i, f := range Formats {
		supported[i] = string(f)
	}
	return "", &csverr.UnknownFormatError{Name: s, Supported: supported}
}

// Ext is the file extension batch output uses for f.
func (f Format) Ext() string {
	switch f {
	case Table:
		return "txt"
	case Markdown:
		return "md"
	}
	return string(f)
}

// SummaryReport is everything a summary rendering needs.
type SummaryReport struct {
	File      string
	TotalRows int
	Matched   int
	Filter    string
	Stats     []analysis.ColumnStats
	Warnings  []string
}

// SchemaReport is everything a schema rendering needs.
type SchemaReport struct {
	File     string
	Columns  []analysis.ColumnSchema
	Warnings []string
}

// palette holds the color functions for one renderer.
type palette struct {
	label func(a ...any) string
	types map[types.DataType]func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attr color.Attribute) func(a ...any) string {
		c := color.New(attr)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		label: mk(color.FgCyan),
		types: map[types.DataType]func(a ...any) string{
			types.Integer: mk(color.FgBlue),
			types.Float:   mk(color.FgGreen),
			types.Boolean: mk(color.FgYellow),
			types.String:  mk(color.FgMagenta),
		},
	}
}

func (p palette) dataType(t types.DataType) string {
	if fn, ok := p.types[t]; ok {
		return fn(t.String())
	}
	return t.String()
}
