// Package pipeline streams a row source through an optional filter into the
// statistics or schema accumulators.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/KaramelBytes/csvpeek-cli/internal/analysis"
	"github.com/KaramelBytes/csvpeek-cli/internal/columns"
	"github.com/KaramelBytes/csvpeek-cli/internal/filter"
	"github.com/KaramelBytes/csvpeek-cli/internal/reader"
)

// SummaryRequest configures Summary.
type SummaryRequest struct {
	// Columns is a -c selection; empty means every column.
	Columns string
	// Where is a filter expression; empty keeps every row.
	Where string
	// MaxRows caps rows folded into the statistics; 0 means unlimited.
	// Rows past the cap are still counted.
	MaxRows  int
	TopK     int
	Parallel bool
	// OnRow, when set, is called after each row is read.
	OnRow func()
}

// SummaryResult is the finalized output of Summary.
type SummaryResult struct {
	Header    columns.Header
	Stats     []analysis.ColumnStats
	TotalRows int
	Matched   int
	Processed int
	// Filter is the expression as given, empty without --where.
	Filter   string
	Encoding string
	Warnings []string
}

// Summary computes column statistics over the rows of src that match req.Where.
func Summary(ctx context.Context, src reader.Source, req SummaryRequest) (*SummaryResult, error) {
	header := src.Header()
	idx, err := columns.Select(req.Columns, header)
	if err != nil {
		return nil, err
	}
	var f *filter.Filter
	if req.Where != "" {
		if f, err = filter.Compile(req.Where, header); err != nil {
			return nil, err
		}
		slog.Debug("compiled filter", "expr", f.String())
	}
	collector := analysis.NewStatsCollector(header, idx, analysis.StatsOptions{TopK: req.TopK, Parallel: req.Parallel})

	res := &SummaryResult{Header: header, Encoding: src.Encoding()}
	if f != nil {
		res.Filter = f.Text()
	}
	err = stream(ctx, src, req.OnRow, func(row []string) {
		res.TotalRows++
		if f != nil && !f.Match(row) {
			return
		}
		res.Matched++
		if req.MaxRows > 0 && res.Processed >= req.MaxRows {
			return
		}
		res.Processed++
		collector.Add(row)
	})
	if err != nil {
		return nil, err
	}
	res.Stats = collector.Finalize()
	if res.Processed < res.Matched {
		res.Warnings = append(res.Warnings, fmt.Sprintf("processed only %d/%d matched rows due to max-rows", res.Processed, res.Matched))
	}
	slog.Debug("summary done", "total", res.TotalRows, "matched", res.Matched, "processed", res.Processed, "columns", len(idx))
	return res, nil
}

// SchemaRequest configures Schema.
type SchemaRequest struct {
	MaxRows      int
	SampleValues int
	OnRow        func()
}

// SchemaResult is the finalized output of Schema.
type SchemaResult struct {
	Columns   []analysis.ColumnSchema
	TotalRows int
	Processed int
	Encoding  string
	Warnings  []string
}

// Schema infers a type for every column of src.
func Schema(ctx context.Context, src reader.Source, req SchemaRequest) (*SchemaResult, error) {
	inf := analysis.NewSchemaInferrer(src.Header(), req.SampleValues)
	res := &SchemaResult{Encoding: src.Encoding()}
	err := stream(ctx, src, req.OnRow, func(row []string) {
		res.TotalRows++
		if req.MaxRows > 0 && res.Processed >= req.MaxRows {
			return
		}
		res.Processed++
		inf.Add(row)
	})
	if err != nil {
		return nil, err
	}
	res.Columns = inf.Finalize()
	if res.Processed < res.TotalRows {
		res.Warnings = append(res.Warnings, fmt.Sprintf("processed only %d/%d rows due to max-rows", res.Processed, res.TotalRows))
	}
	return res, nil
}

// stream feeds rows to fn until EOF, checking ctx between rows.
func stream(ctx context.Context, src reader.Source, onRow func(), fn func([]string)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if onRow != nil {
			onRow()
		}
		fn(row)
	}
}
