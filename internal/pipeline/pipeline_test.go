package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/csvpeek-cli/internal/columns"
	"github.com/KaramelBytes/csvpeek-cli/internal/csverr"
	"github.com/KaramelBytes/csvpeek-cli/internal/types"
)

type sliceSource struct {
	header columns.Header
	rows   [][]string
	pos    int
	err    error
}

func (s *sliceSource) Header() columns.Header { return s.header }
func (s *sliceSource) Encoding() string       { return "utf-8" }
func (s *sliceSource) Close() error           { return nil }

func (s *sliceSource) Next() ([]string, error) {
	if s.pos >= len(s.rows) {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	s.pos++
	return s.rows[s.pos-1], nil
}

func people() *sliceSource {
	return &sliceSource{
		header: columns.Header{"name", "age", "status"},
		rows: [][]string{
			{"Alice", "25", "active"},
			{"Bob", "35", "VIP"},
			{"Carol", "28", "active"},
			{"Dan", "", "inactive"},
			{"Eve", "41", "VIP"},
		},
	}
}

func TestSummaryWithFilter(t *testing.T) {
	res, err := Summary(context.Background(), people(), SummaryRequest{Columns: "age,status", Where: `age > 20 && age < 30 || status == "VIP"`})
	require.NoError(t, err)
	assert.Equal(t, 5, res.TotalRows)
	assert.Equal(t, 4, res.Matched)
	assert.Equal(t, 4, res.Processed)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Stats, 2)

	age := res.Stats[0]
	assert.Equal(t, "age", age.Name)
	assert.Equal(t, types.Integer, age.DataType)
	assert.Equal(t, "25", *age.Min)
	assert.Equal(t, "41", *age.Max)
	assert.InDelta(t, 32.25, *age.Mean, 1e-9)

	status := res.Stats[1]
	assert.Equal(t, types.String, status.DataType)
	require.Len(t, status.TopValues, 2)
	assert.Equal(t, "active", status.TopValues[0].Value)
	assert.Equal(t, "VIP", status.TopValues[1].Value)
	assert.Equal(t, 2, status.TopValues[1].Count)
}

func TestSummaryMaxRowsKeepsCounting(t *testing.T) {
	res, err := Summary(context.Background(), people(), SummaryRequest{MaxRows: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, res.TotalRows)
	assert.Equal(t, 5, res.Matched)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, []string{"processed only 2/5 matched rows due to max-rows"}, res.Warnings)
	assert.Equal(t, 2, res.Stats[0].Count)
}

func TestSummaryErrors(t *testing.T) {
	_, err := Summary(context.Background(), people(), SummaryRequest{Where: `nmae == "x"`})
	var cnf *csverr.ColumnNotFoundError
	require.True(t, errors.As(err, &cnf))
	assert.Equal(t, "name", cnf.Suggestion)

	_, err = Summary(context.Background(), people(), SummaryRequest{Columns: "5"})
	var oor *csverr.ColumnIndexOutOfRangeError
	require.True(t, errors.As(err, &oor))

	src := people()
	src.err = errors.New("disk on fire")
	_, err = Summary(context.Background(), src, SummaryRequest{})
	assert.EqualError(t, err, "disk on fire")
}

func TestSummaryHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Summary(ctx, people(), SummaryRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummaryOnRow(t *testing.T) {
	n := 0
	_, err := Summary(context.Background(), people(), SummaryRequest{Where: "age > 100", OnRow: func() { n++ }})
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestSchema(t *testing.T) {
	res, err := Schema(context.Background(), people(), SchemaRequest{SampleValues: 2})
	require.NoError(t, err)
	require.Len(t, res.Columns, 3)
	assert.Equal(t, types.Integer, res.Columns[1].InferredType)
	assert.Equal(t, 1, res.Columns[1].NullCount)
	assert.InDelta(t, 20.0, res.Columns[1].NullRate, 1e-9)
	assert.Equal(t, []string{"Alice", "Bob"}, res.Columns[0].SampleValues)

	res, err = Schema(context.Background(), people(), SchemaRequest{MaxRows: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 3, res.Columns[0].TotalCount)
	assert.Len(t, res.Warnings, 1)
}
