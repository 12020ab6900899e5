// Package columns resolves header names and -c column selections.
package columns

import (
	"strconv"
	"strings"

	"github.com/KaramelBytes/csvpeek-cli/internal/csverr"
)

// Header is the ordered list of column names. Duplicates are allowed.
type Header []string

// Index returns the position of the first column called name, or -1.
func (h Header) Index(name string) int {
	for i, n := range h {
		if n == name {
			return i
		}
	}
	return -1
}

// Resolve is Index with a ColumnNotFoundError (and suggestion) on a miss.
func (h Header) Resolve(name string) (int, error) {
	if i := h.Index(name); i >= 0 {
		return i, nil
	}
	return -1, csverr.NotFound(name, h)
}

// Names maps positions back to column names.
func (h Header) Names(idx []int) []string {
	out := make([]string, len(idx))
	for i, p := range idx {
		out[i] = h[p]
	}
	return out
}

// All returns every position in header order.
func (h Header) All() []int {
	out := make([]int, len(h))
	for i := range h {
		out[i] = i
	}
	return out
}

// Select resolves a comma separated selection of column names, 0-based
// indices, exclusive ranges (a..b) and inclusive ranges (a..=b) to header
// positions in the order given. An empty selection selects every column.
// Repeated entries are kept.
func Select(sel string, h Header) ([]int, error) {
	if strings.TrimSpace(sel) == "" {
		return h.All(), nil
	}
	var out []int
	for _, part := range strings.Split(sel, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if rng, ok, err := parseRange(part, len(h)); err != nil {
			return nil, err
		} else if ok {
			out = append(out, rng...)
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil && idx >= 0 {
			if idx >= len(h) {
				return nil, &csverr.ColumnIndexOutOfRangeError{Index: idx, Max: len(h) - 1}
			}
			out = append(out, idx)
			continue
		}
		i, err := h.Resolve(part)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}

func parseRange(s string, n int) ([]int, bool, error) {
	inclusive := true
	lo, hi, found := strings.Cut(s, "..=")
	if !found {
		inclusive = false
		lo, hi, found = strings.Cut(s, "..")
	}
	if !found {
		return nil, false, nil
	}
	start, err := parseBound(lo)
	if err != nil {
		return nil, true, csverr.Filterf("invalid range start: %s", lo)
	}
	end, err := parseBound(hi)
	if err != nil {
		return nil, true, csverr.Filterf("invalid range end: %s", hi)
	}
	if !inclusive {
		if end > n {
			return nil, true, &csverr.ColumnIndexOutOfRangeError{Index: end - 1, Max: n - 1}
		}
		end--
	} else if end >= n {
		return nil, true, &csverr.ColumnIndexOutOfRangeError{Index: end, Max: n - 1}
	}
	if start > end+1 {
		return nil, true, csverr.Filterf("invalid range %s: start is after end", s)
	}
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out, true, nil
}

func parseBound(s string) (int, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 31)
	return int(v), err
}
