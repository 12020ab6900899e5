package csverr

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a typo may be from a header name.
const maxSuggestDistance = 2

// SimilarColumn picks the header name most likely meant by name: a
// case-insensitive exact match first, else the closest name within edit
// distance 2. Ties go to the earliest header. Returns "" when nothing fits.
func SimilarColumn(name string, header []string) string {
	for _, h := range header {
		if strings.EqualFold(h, name) {
			return h
		}
	}
	lower := strings.ToLower(name)
	best, bestDist := "", maxSuggestDistance+1
	for _, h := range header {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(h))
		if d < bestDist {
			best, bestDist = h, d
		}
	}
	return best
}

// NotFound builds a ColumnNotFoundError with a suggestion from header.
func NotFound(name string, header []string) error {
	return &ColumnNotFoundError{Name: name, Suggestion: SimilarColumn(name, header)}
}
