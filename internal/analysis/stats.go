// Package analysis folds streamed rows into per-column statistics and
// inferred schemas.
package analysis

import (
	"runtime"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sourcegraph/conc/iter"

	"github.com/KaramelBytes/csvpeek-cli/internal/columns"
	"github.com/KaramelBytes/csvpeek-cli/internal/types"
)

// DefaultTopK is the number of most frequent values reported per column.
const DefaultTopK = 5

// CategoryCount is one entry of a top values list.
type CategoryCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// ColumnStats is the finalized summary of one column. Nil fields did not
// apply to the column's type or had too few values.
type ColumnStats struct {
	Name        string          `json:"name" yaml:"name"`
	DataType    types.DataType  `json:"data_type" yaml:"data_type"`
	Count       int             `json:"count" yaml:"count"`
	NullCount   int             `json:"null_count" yaml:"null_count"`
	NullRate    float64         `json:"null_rate" yaml:"null_rate"`
	Min         *string         `json:"min" yaml:"min"`
	Max         *string         `json:"max" yaml:"max"`
	Mean        *float64        `json:"mean" yaml:"mean"`
	Sum         *float64        `json:"sum" yaml:"sum"`
	Std         *float64        `json:"std" yaml:"std"`
	MinLen      *int            `json:"min_len" yaml:"min_len"`
	MaxLen      *int            `json:"max_len" yaml:"max_len"`
	UniqueCount *int            `json:"unique_count" yaml:"unique_count"`
	Median      *float64        `json:"median" yaml:"median"`
	P25         *float64        `json:"p25" yaml:"p25"`
	P75         *float64        `json:"p75" yaml:"p75"`
	TopValues   []CategoryCount `json:"top_values" yaml:"top_values"`
}

// StatsOptions tunes finalize.
type StatsOptions struct {
	// TopK caps top_values; 0 means DefaultTopK.
	TopK int
	// Parallel finalizes columns on a bounded goroutine pool.
	Parallel bool
}

// StatsCollector accumulates statistics for a fixed set of header positions.
// It is not safe for concurrent Add calls.
type StatsCollector struct {
	accs []*columnAcc
	opt  StatsOptions
}

type columnAcc struct {
	name  string
	index int

	total int
	nulls int
	typ   types.DataType

	// numeric cells only
	sum, sumSq float64
	minF, maxF float64
	minI, maxI int64
	nInt       int
	values     []float64

	// every non-null cell, trimmed
	minS, maxS     string
	minLen, maxLen int
	freq           map[string]int
	order          []string
}

// NewStatsCollector prepares one accumulator per entry of indices, in order.
// Repeated indices get independent accumulators.
func NewStatsCollector(header columns.Header, indices []int, opt StatsOptions) *StatsCollector {
	if opt.TopK <= 0 {
		opt.TopK = DefaultTopK
	}
	c := &StatsCollector{opt: opt, accs: make([]*columnAcc, len(indices))}
	for i, idx := range indices {
		c.accs[i] = &columnAcc{name: header[idx], index: idx, freq: map[string]int{}}
	}
	return c
}

// Add folds one row. Cells past the end of a short row count as null.
func (c *StatsCollector) Add(row []string) {
	for _, a := range c.accs {
		cell := ""
		if a.index < len(row) {
			cell = row[a.index]
		}
		a.add(cell)
	}
}

func (a *columnAcc) add(cell string) {
	a.total++
	if types.IsNull(cell) {
		a.nulls++
		return
	}
	typ, v := types.Classify(cell)
	a.typ = types.Promote(a.typ, typ)

	if typ.IsNumeric() {
		f := v.Float()
		if len(a.values) == 0 {
			a.minF, a.maxF = f, f
		} else {
			a.minF = min(a.minF, f)
			a.maxF = max(a.maxF, f)
		}
		a.sum += f
		a.sumSq += f * f
		a.values = append(a.values, f)
	}
	if typ == types.Integer {
		if a.nInt == 0 {
			a.minI, a.maxI = v.Int, v.Int
		} else {
			a.minI = min(a.minI, v.Int)
			a.maxI = max(a.maxI, v.Int)
		}
		a.nInt++
	}

	s := strings.TrimSpace(cell)
	n := utf8.RuneCountInString(s)
	if len(a.order) == 0 {
		a.minS, a.maxS = s, s
		a.minLen, a.maxLen = n, n
	} else {
		a.minS = min(a.minS, s)
		a.maxS = max(a.maxS, s)
		a.minLen = min(a.minLen, n)
		a.maxLen = max(a.maxLen, n)
	}
	if _, seen := a.freq[s]; !seen {
		a.order = append(a.order, s)
	}
	a.freq[s]++
}

// Finalize produces one ColumnStats per accumulator, in construction order.
// The collector must not be used afterwards.
func (c *StatsCollector) Finalize() []ColumnStats {
	if !c.opt.Parallel || len(c.accs) < 2 {
		out := make([]ColumnStats, len(c.accs))
		for i, a := range c.accs {
			out[i] = a.finalize(c.opt.TopK)
		}
		return out
	}
	mapper := iter.Mapper[*columnAcc, ColumnStats]{MaxGoroutines: runtime.GOMAXPROCS(0)}
	return mapper.Map(c.accs, func(a **columnAcc) ColumnStats { return (*a).finalize(c.opt.TopK) })
}

func (a *columnAcc) finalize(topK int) ColumnStats {
	cs := ColumnStats{
		Name:      a.name,
		DataType:  a.typ,
		Count:     a.total - a.nulls,
		NullCount: a.nulls,
		NullRate:  rate(a.nulls, a.total),
	}
	if a.typ == types.Unknown {
		cs.DataType = types.String
		return cs
	}
	unique := len(a.order)
	cs.UniqueCount = &unique

	if a.typ.IsNumeric() {
		if a.typ == types.Integer {
			cs.Min = ptr(strconv.FormatInt(a.minI, 10))
			cs.Max = ptr(strconv.FormatInt(a.maxI, 10))
		} else {
			cs.Min = ptr(FormatFloat(a.minF))
			cs.Max = ptr(FormatFloat(a.maxF))
		}
		n := len(a.values)
		cs.Sum = ptr(a.sum)
		cs.Mean = ptr(a.sum / float64(n))
		if sd, ok := sampleStd(n, a.sum, a.sumSq); ok {
			cs.Std = &sd
		}
		sort.Float64s(a.values)
		cs.P25 = ptr(quantile(a.values, 0.25))
		cs.Median = ptr(quantile(a.values, 0.5))
		cs.P75 = ptr(quantile(a.values, 0.75))
		return cs
	}

	cs.Min = ptr(a.minS)
	cs.Max = ptr(a.maxS)
	cs.MinLen = ptr(a.minLen)
	cs.MaxLen = ptr(a.maxLen)
	cs.TopValues = topValues(a.order, a.freq, topK)
	return cs
}

// topValues orders distinct values by descending count; ties keep first-seen order.
func topValues(order []string, freq map[string]int, k int) []CategoryCount {
	tops := make([]CategoryCount, len(order))
	for i, v := range order {
		tops[i] = CategoryCount{Value: v, Count: freq[v]}
	}
	sort.SliceStable(tops, func(i, j int) bool { return tops[i].Count > tops[j].Count })
	if len(tops) > k {
		tops = tops[:k]
	}
	return tops
}

// rate is a percentage in [0, 100]; zero when total is zero.
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func ptr[T any](v T) *T { return &v }
