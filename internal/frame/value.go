package frame

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a single cell usable as a grouping key. Numeric values order
// before strings; numbers compare numerically, strings lexicographically.
type Value struct {
	num     float64
	str     string
	numeric bool
}

// Num wraps a float64.
func Num(f float64) Value { return Value{num: f, numeric: true} }

// Str wraps a string.
func Str(s string) Value { return Value{str: s} }

func (v Value) IsNumeric() bool { return v.numeric }

// Float returns the numeric payload; it is 0 for string values.
func (v Value) Float() float64 { return v.num }

// IsMissing reports whether v is a numeric NaN.
func (v Value) IsMissing() bool { return v.numeric && math.IsNaN(v.num) }

// String formats numbers with the shortest representation that round-trips.
func (v Value) String() string {
	if v.numeric {
		return FormatFloat(v.num)
	}
	return v.str
}

// Compare returns -1, 0 or +1.
func (v Value) Compare(o Value) int {
	switch {
	case v.numeric && !o.numeric:
		return -1
	case !v.numeric && o.numeric:
		return 1
	case v.numeric:
		switch {
		case v.num < o.num:
			return -1
		case v.num > o.num:
			return 1
		}
		return 0
	default:
		return strings.Compare(v.str, o.str)
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.numeric {
		return json.Marshal(v.str)
	}
	if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return json.Marshal(FormatFloat(v.num))
	}
	return json.Marshal(v.num)
}

// CompareKeys orders two key tuples element by element.
func CompareKeys(a, b []Value) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// FormatFloat renders f in its shortest round-trip form: fixed notation for
// magnitudes in [1e-4, 1e16), exponent notation otherwise ("2.5", "1e-15").
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if a := math.Abs(f); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
