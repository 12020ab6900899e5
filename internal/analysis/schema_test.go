package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/csvpeek-cli/internal/columns"
	"github.com/KaramelBytes/csvpeek-cli/internal/types"
)

func inferOne(cells []string, samples int) ColumnSchema {
	s := NewSchemaInferrer(columns.Header{"c"}, samples)
	for _, c := range cells {
		s.Add([]string{c})
	}
	return s.Finalize()[0]
}

// countRule is the per-type counting formulation of inference.
func countRule(cells []string) types.DataType {
	var total, nulls, ints, floats, bools int
	for _, c := range cells {
		total++
		if types.IsNull(c) {
			nulls++
			continue
		}
		switch t, _ := types.Classify(c); t {
		case types.Integer:
			ints++
		case types.Float:
			floats++
		case types.Boolean:
			bools++
		}
	}
	nonNull := total - nulls
	switch {
	case nonNull == 0:
		return types.String
	case ints == nonNull:
		return types.Integer
	case ints+floats == nonNull:
		return types.Float
	case bools == nonNull:
		return types.Boolean
	}
	return types.String
}

func TestInferLattice(t *testing.T) {
	tests := []struct {
		cells []string
		want  types.DataType
	}{
		{[]string{"1", "2", "3"}, types.Integer},
		{[]string{"1", "2", "3", "2.5"}, types.Float},
		{[]string{"true", "false", "TRUE"}, types.Boolean},
		{[]string{"1", "2", "x"}, types.String},
		{[]string{"true", "0"}, types.String},
		{[]string{"", "NA", "null"}, types.String},
		{[]string{"", "7", "n/a"}, types.Integer},
		{[]string{"1e3", "2"}, types.Float},
		{[]string{}, types.String},
	}
	for _, tt := range tests {
		got := inferOne(tt.cells, 0)
		assert.Equal(t, tt.want, got.InferredType, "%v", tt.cells)
		assert.Equal(t, countRule(tt.cells), got.InferredType, "%v", tt.cells)
	}
}

func TestSchemaCountsAndSamples(t *testing.T) {
	s := NewSchemaInferrer(columns.Header{"id", "name", "score"}, 3)
	rows := [][]string{
		{"1", " Ann ", "1.5"},
		{"2", "Bo", ""},
		{"3", "Ann"},
		{"4", "Cy", "2", "extra"},
		{"5", "Di", "NA"},
	}
	for _, r := range rows {
		s.Add(r)
	}
	out := s.Finalize()
	require.Len(t, out, 3)

	assert.Equal(t, types.Integer, out[0].InferredType)
	assert.Equal(t, []string{"1", "2", "3"}, out[0].SampleValues)

	assert.Equal(t, types.String, out[1].InferredType)
	assert.Equal(t, []string{"Ann", "Bo", "Cy"}, out[1].SampleValues)

	assert.Equal(t, types.Float, out[2].InferredType)
	assert.Equal(t, 5, out[2].TotalCount)
	assert.Equal(t, 3, out[2].NullCount)
	assert.InDelta(t, 60.0, out[2].NullRate, 1e-9)
	assert.Equal(t, []string{"1.5", "2"}, out[2].SampleValues)
}

func TestSchemaNoRows(t *testing.T) {
	out := NewSchemaInferrer(columns.Header{"a"}, 0).Finalize()
	assert.Equal(t, types.String, out[0].InferredType)
	assert.Equal(t, 0.0, out[0].NullRate)
	assert.NotNil(t, out[0].SampleValues)
}
