package analysis

import (
	"strings"

	"github.com/KaramelBytes/csvpeek-cli/internal/columns"
	"github.com/KaramelBytes/csvpeek-cli/internal/types"
)

// DefaultSampleValues is how many distinct samples a schema column keeps.
const DefaultSampleValues = 5

// ColumnSchema is the inferred type of one column.
type ColumnSchema struct {
	Name         string         `json:"name" yaml:"name"`
	InferredType types.DataType `json:"inferred_type" yaml:"inferred_type"`
	NullCount    int            `json:"null_count" yaml:"null_count"`
	TotalCount   int            `json:"total_count" yaml:"total_count"`
	NullRate     float64        `json:"null_rate" yaml:"null_rate"`
	SampleValues []string       `json:"sample_values" yaml:"sample_values"`
}

// SchemaInferrer folds every column of each row into a type.
type SchemaInferrer struct {
	cols    []*schemaAcc
	samples int
}

type schemaAcc struct {
	name    string
	total   int
	nulls   int
	typ     types.DataType
	samples []string
}

// NewSchemaInferrer tracks every header column. samples <= 0 uses
// DefaultSampleValues.
func NewSchemaInferrer(header columns.Header, samples int) *SchemaInferrer {
	if samples <= 0 {
		samples = DefaultSampleValues
	}
	s := &SchemaInferrer{samples: samples, cols: make([]*schemaAcc, len(header))}
	for i, name := range header {
		s.cols[i] = &schemaAcc{name: name}
	}
	return s
}

// Add folds one row; missing trailing cells count as null and extra cells
// are ignored.
func (s *SchemaInferrer) Add(row []string) {
	for i, a := range s.cols {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		a.total++
		if types.IsNull(cell) {
			a.nulls++
			continue
		}
		typ, _ := types.Classify(cell)
		a.typ = types.Promote(a.typ, typ)
		if len(a.samples) < s.samples {
			a.addSample(strings.TrimSpace(cell))
		}
	}
}

func (a *schemaAcc) addSample(v string) {
	for _, have := range a.samples {
		if have == v {
			return
		}
	}
	a.samples = append(a.samples, v)
}

// Finalize returns one ColumnSchema per header column. A column with no
// non-null values is a string column.
func (s *SchemaInferrer) Finalize() []ColumnSchema {
	out := make([]ColumnSchema, len(s.cols))
	for i, a := range s.cols {
		typ := a.typ
		if typ == types.Unknown {
			typ = types.String
		}
		samples := a.samples
		if samples == nil {
			samples = []string{}
		}
		out[i] = ColumnSchema{
			Name:         a.name,
			InferredType: typ,
			NullCount:    a.nulls,
			TotalCount:   a.total,
			NullRate:     rate(a.nulls, a.total),
			SampleValues: samples,
		}
	}
	return out
}
