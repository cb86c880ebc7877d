package frame

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Kind tags the element type of a Column.
type Kind int

const (
	// Numeric columns hold float64 values; NaN marks a missing value.
	Numeric Kind = iota
	// Categorical columns hold arbitrary string levels.
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Column is a named sequence of values of a single kind.
// Exactly one of the backing slices is used, selected by Kind.
type Column struct {
	Name string
	kind Kind
	nums []float64
	strs []string
}

// NewNumeric builds a numeric column. The slice is not copied.
func NewNumeric(name string, values []float64) *Column {
	return &Column{Name: name, kind: Numeric, nums: values}
}

// Numbers converts any integer or float slice into a numeric column.
func Numbers[T constraints.Integer | constraints.Float](name string, values []T) *Column {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return NewNumeric(name, out)
}

// NewCategorical builds a categorical column. The slice is not copied.
func NewCategorical(name string, values []string) *Column {
	return &Column{Name: name, kind: Categorical, strs: values}
}

func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of rows.
func (c *Column) Len() int {
	if c.kind == Numeric {
		return len(c.nums)
	}
	return len(c.strs)
}

// Floats returns the numeric backing slice, or nil for categorical columns.
func (c *Column) Floats() []float64 { return c.nums }

// Strings returns the categorical backing slice, or nil for numeric columns.
func (c *Column) Strings() []string { return c.strs }

// Value returns row i as a Value.
func (c *Column) Value(i int) Value {
	if c.kind == Numeric {
		return Num(c.nums[i])
	}
	return Str(c.strs[i])
}

// IsMissing reports whether row i holds the missing sentinel.
// Categorical columns have no missing sentinel.
func (c *Column) IsMissing(i int) bool {
	return c.kind == Numeric && math.IsNaN(c.nums[i])
}

// Renamed returns a shallow copy of the column under a new name.
func (c *Column) Renamed(name string) *Column {
	cp := *c
	cp.Name = name
	return &cp
}

// Take returns a new column holding the rows at idx, in order.
func (c *Column) Take(idx []int) *Column {
	if c.kind == Numeric {
		out := make([]float64, len(idx))
		for i, j := range idx {
			out[i] = c.nums[j]
		}
		return NewNumeric(c.Name, out)
	}
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = c.strs[j]
	}
	return NewCategorical(c.Name, out)
}
