package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")
	// ErrLengthMismatch is returned when columns differ in length.
	ErrLengthMismatch = errors.New("columns must have the same length")
)

// Table is an ordered set of equally long, uniquely named columns.
type Table struct {
	// Name is informational, typically the source file name.
	Name string
	// Truncated holds the number of data rows seen in the source when a
	// loader stopped early because of MaxRows; 0 otherwise.
	Truncated int

	cols  []*Column
	index map[string]int
}

// NewTable builds a table from columns, validating names and lengths.
func NewTable(cols ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if err := t.Append(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustTable is NewTable that panics on error; intended for tests and literals.
func MustTable(cols ...*Column) *Table {
	t, err := NewTable(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// Append adds a column at the end.
func (t *Table) Append(c *Column) error {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if _, ok := t.index[c.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
	}
	if len(t.cols) > 0 && c.Len() != t.Len() {
		return fmt.Errorf("%w: %q has %d rows, want %d", ErrLengthMismatch, c.Name, c.Len(), t.Len())
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// Col looks up a column by name.
func (t *Table) Col(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Columns returns the columns in order. The slice must not be modified.
func (t *Table) Columns() []*Column { return t.cols }

// Names returns the column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// Select returns a table with only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	out := &Table{Name: t.Name, Truncated: t.Truncated, index: make(map[string]int, len(names))}
	for _, n := range names {
		c, ok := t.Col(n)
		if !ok {
			return nil, fmt.Errorf("unknown column %q (available: %v)", n, t.Names())
		}
		if err := out.Append(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Row returns row i formatted as strings, with NaN rendered as "".
func (t *Table) Row(i int) []string {
	out := make([]string, len(t.cols))
	for j, c := range t.cols {
		if c.IsMissing(i) {
			continue
		}
		out[j] = c.Value(i).String()
	}
	return out
}
