package analysis

import "math"

// quantile interpolates linearly between the ranks around q*(n-1).
// sorted must be ascending and non-empty.
func quantile(sorted []float64, q float64) float64 {
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// sampleStd is the Bessel-corrected standard deviation from running sums.
// ok is false for n <= 1.
func sampleStd(n int, sum, sumSq float64) (float64, bool) {
	if n <= 1 {
		return 0, false
	}
	fn := float64(n)
	v := (sumSq - sum*sum/fn) / (fn - 1)
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v), true
}
