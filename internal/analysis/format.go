package analysis

import (
	"strconv"
	"strings"
)

// FormatFloat renders v with six decimals, then drops trailing zeros and a
// dangling point: 2.500000 -> 2.5, 3.000000 -> 3.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
