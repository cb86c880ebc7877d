package eda

import (
	"math"
	"sort"
)

// nonMissing returns a sorted copy of xs without NaN values, and the number
// of NaN values dropped.
func nonMissing(xs []float64) (sorted []float64, nan int) {
	sorted = make([]float64, 0, len(xs))
	for _, x := range xs {
		if math.IsNaN(x) {
			nan++
			continue
		}
		sorted = append(sorted, x)
	}
	sort.Float64s(sorted)
	return sorted, nan
}

// quantile interpolates linearly between the closest ranks of sorted data,
// at position q*(n-1). It returns NaN for empty input.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
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

// Percentiles returns the given percentiles (0..100) of xs ignoring NaN.
func Percentiles(xs []float64, ps ...float64) []float64 {
	sorted, _ := nonMissing(xs)
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = quantile(sorted, p/100)
	}
	return out
}
