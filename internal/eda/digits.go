package eda

import (
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/edakit/internal/frame"
)

// AutoDigits asks DifferentDigits to derive the starting precision from the
// magnitude of the smallest value.
const AutoDigits = -1

// DifferentDigits formats x with the fewest decimal digits, starting at
// digits, that keeps every rendered value distinct. The search stops below
// max(12, digits); past that each value gets its shortest default form.
func DifferentDigits(x []float64, digits int) []string {
	if len(x) == 0 {
		return []string{}
	}
	if digits < 0 {
		digits = defaultDigits(x)
	}
	out := make([]string, len(x))
	for d := digits; d < max(12, digits); d++ {
		seen := make(map[string]struct{}, len(x))
		for i, v := range x {
			out[i] = strconv.FormatFloat(v, 'f', d, 64)
			seen[out[i]] = struct{}{}
		}
		if len(seen) == len(x) {
			return out
		}
	}
	for i, v := range x {
		out[i] = frame.FormatFloat(v)
	}
	return out
}

// defaultDigits is -floor(log10(min)) + 1, floored at 0. A non-positive
// minimum falls back to the smallest non-zero magnitude.
func defaultDigits(x []float64) int {
	m := math.Inf(1)
	for _, v := range x {
		if !math.IsNaN(v) && v < m {
			m = v
		}
	}
	if !(m > 0) {
		m = math.Inf(1)
		for _, v := range x {
			if a := math.Abs(v); a != 0 && a < m {
				m = a
			}
		}
	}
	if math.IsInf(m, 0) {
		return 0
	}
	d := -math.Floor(math.Log10(m)) + 1
	if d < 0 {
		return 0
	}
	return int(d)
}

// trimZeros drops trailing fractional zeros: "3.0" -> "3", "0.10" -> "0.1".
// Applied to equally precise renderings it keeps distinct strings distinct.
func trimZeros(s string) string {
	if !strings.Contains(s, ".") || strings.ContainsAny(s, "eE") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
