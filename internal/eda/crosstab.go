package eda

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/edakit/internal/frame"
)

// Format selects the shape of a cross-tabulation.
type Format string

const (
	// FormatPivot unstacks the pivot levels into columns, zero-filled.
	FormatPivot Format = ""
	// FormatSeries keeps one count per key tuple.
	FormatSeries Format = "Series"
	// FormatDataFrame is a flat table: one row per key tuple plus a count column.
	FormatDataFrame Format = "DataFrame"
)

// DefaultValue names the count column of FormatDataFrame results.
const DefaultValue = "n"

// Arg is one crosstab input: a column reference resolved against
// Options.Data, or a literal column. Use As to give it a keyword name.
type Arg struct {
	ref     string
	lit     *frame.Column
	keyword string
}

// Col refers to a column of Options.Data by name.
func Col(name string) Arg { return Arg{ref: name} }

// Values passes a literal column. Positional literal columns get a
// synthetic name; their own Name is ignored.
func Values(c *frame.Column) Arg { return Arg{lit: c} }

// As turns the argument into a keyword argument named name.
func (a Arg) As(name string) Arg {
	a.keyword = name
	return a
}

// Options controls Crosstab.
type Options struct {
	// Data resolves Col references.
	Data *frame.Table
	// Format selects the result shape.
	Format Format
	// Value names the count column of FormatDataFrame; "" means DefaultValue.
	Value string
	// NoCounts makes FormatDataFrame return only the distinct key tuples,
	// with the column order reversed.
	NoCounts bool
	// Columns lists the 0-based key levels FormatPivot moves into columns.
	// Nil selects every other level: 1, 3, 5, ...
	Columns []int
}

// CountSeries holds one count per observed key tuple, sorted by key.
type CountSeries struct {
	Names  []string
	Keys   [][]frame.Value
	Counts []int
}

// Len returns the number of groups.
func (s *CountSeries) Len() int { return len(s.Counts) }

// Total returns the sum of all counts.
func (s *CountSeries) Total() int {
	n := 0
	for _, c := range s.Counts {
		n += c
	}
	return n
}

// Lookup returns the count for a key tuple, 0 when unobserved.
func (s *CountSeries) Lookup(key ...frame.Value) int {
	i := sort.Search(len(s.Keys), func(i int) bool { return frame.CompareKeys(s.Keys[i], key) >= 0 })
	if i < len(s.Keys) && frame.CompareKeys(s.Keys[i], key) == 0 {
		return s.Counts[i]
	}
	return 0
}

// PivotTable is a count series reshaped into row keys by column keys.
type PivotTable struct {
	RowNames []string
	ColNames []string
	RowKeys  [][]frame.Value
	ColKeys  [][]frame.Value
	Counts   [][]int // [row][col]
	// Value labels the single count column when no level is pivoted.
	Value string
}

// Crosstab counts occurrences of every key tuple across the given columns
// and shapes the result according to opt.Format. The concrete result is a
// *PivotTable, *CountSeries or *Frame.
func Crosstab(opt Options, args ...Arg) (Display, error) {
	switch opt.Format {
	case FormatPivot:
		return CrosstabPivot(opt, args...)
	case FormatSeries:
		return CrosstabSeries(opt, args...)
	case FormatDataFrame:
		t, err := CrosstabFrame(opt, args...)
		if err != nil {
			return nil, err
		}
		return &Frame{Table: t}, nil
	default:
		return nil, invalid("crosstab", ErrUnknownFormat, "%q (want %q, %q or %q)", string(opt.Format), FormatPivot, FormatSeries, FormatDataFrame)
	}
}

// CrosstabSeries returns the raw grouped counts.
func CrosstabSeries(opt Options, args ...Arg) (*CountSeries, error) {
	cols, err := resolveArgs(opt.Data, args)
	if err != nil {
		return nil, err
	}
	return countGroups(cols), nil
}

// CrosstabFrame returns one row per key tuple with its count in a column
// named opt.Value, or just the distinct tuples (columns reversed) when
// opt.NoCounts is set.
func CrosstabFrame(opt Options, args ...Arg) (*frame.Table, error) {
	cols, err := resolveArgs(opt.Data, args)
	if err != nil {
		return nil, err
	}
	s := countGroups(cols)
	out := make([]*frame.Column, 0, len(cols)+1)
	for d, c := range cols {
		out = append(out, keyColumn(c, s.Keys, d))
	}
	if opt.NoCounts {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	} else {
		value := opt.Value
		if value == "" {
			value = DefaultValue
		}
		out = append(out, frame.Numbers(value, s.Counts))
	}
	t, err := frame.NewTable(out...)
	if err != nil {
		return nil, fmt.Errorf("crosstab: %w", err)
	}
	return t, nil
}

// CrosstabPivot moves the opt.Columns levels into columns and fills absent
// combinations with zero.
func CrosstabPivot(opt Options, args ...Arg) (*PivotTable, error) {
	cols, err := resolveArgs(opt.Data, args)
	if err != nil {
		return nil, err
	}
	ndim := len(cols)
	levels := opt.Columns
	if levels == nil {
		for i := 1; i < ndim; i += 2 {
			levels = append(levels, i)
		}
	}
	isCol := make([]bool, ndim)
	for _, l := range levels {
		if l < 0 || l >= ndim {
			return nil, invalid("crosstab", ErrPivotLevel, "level %d with %d columns", l, ndim)
		}
		if isCol[l] {
			return nil, invalid("crosstab", ErrPivotLevel, "level %d given twice", l)
		}
		isCol[l] = true
	}
	var rowDims []int
	for d := 0; d < ndim; d++ {
		if !isCol[d] {
			rowDims = append(rowDims, d)
		}
	}

	s := countGroups(cols)
	rowIdx := newKeyIndex()
	colIdx := newKeyIndex()
	for _, k := range s.Keys {
		rowIdx.add(project(k, rowDims))
		colIdx.add(project(k, levels))
	}
	rowIdx.sort()
	colIdx.sort()

	p := &PivotTable{
		RowKeys: rowIdx.keys,
		ColKeys: colIdx.keys,
		Counts:  make([][]int, len(rowIdx.keys)),
		Value:   opt.Value,
	}
	if p.Value == "" {
		p.Value = DefaultValue
	}
	for _, d := range rowDims {
		p.RowNames = append(p.RowNames, cols[d].name)
	}
	for _, d := range levels {
		p.ColNames = append(p.ColNames, cols[d].name)
	}
	for i := range p.Counts {
		p.Counts[i] = make([]int, len(colIdx.keys))
	}
	for g, k := range s.Keys {
		r := rowIdx.find(project(k, rowDims))
		c := colIdx.find(project(k, levels))
		p.Counts[r][c] += s.Counts[g]
	}
	return p, nil
}

// At returns the count at row key r and column key c (0 when absent).
func (p *PivotTable) At(r, c []frame.Value) int {
	i := searchKeys(p.RowKeys, r)
	j := searchKeys(p.ColKeys, c)
	if i < 0 || j < 0 {
		return 0
	}
	return p.Counts[i][j]
}

type namedCol struct {
	name string
	col  *frame.Column
}

// resolveArgs turns args into ordered named columns. Positional arguments
// come first, then keyword arguments; reusing a name replaces the earlier
// column in place.
func resolveArgs(data *frame.Table, args []Arg) ([]namedCol, error) {
	if len(args) == 0 {
		return nil, invalid("crosstab", ErrNoColumns, "pass at least one column")
	}
	keywords := make(map[string]bool)
	for _, a := range args {
		if a.keyword != "" {
			keywords[a.keyword] = true
		}
	}
	var cols []namedCol
	pos := make(map[string]int)
	set := func(name string, c *frame.Column) {
		if i, ok := pos[name]; ok {
			cols[i].col = c
			return
		}
		pos[name] = len(cols)
		cols = append(cols, namedCol{name: name, col: c})
	}
	lookup := func(name string) (*frame.Column, error) {
		if data == nil {
			return nil, invalid("crosstab", ErrNoData, "column %q", name)
		}
		c, ok := data.Col(name)
		if !ok {
			return nil, invalid("crosstab", ErrUnknownColumn, "%q (available: %s)", name, strings.Join(data.Names(), ", "))
		}
		return c, nil
	}

	i := 0
	for _, a := range args {
		if a.keyword != "" {
			continue
		}
		if a.ref != "" {
			c, err := lookup(a.ref)
			if err != nil {
				return nil, err
			}
			set(a.ref, c)
		} else {
			for r := 1; ; r++ {
				k := strings.Repeat("X", r) + strconv.Itoa(i)
				if _, used := pos[k]; !used && !keywords[k] {
					set(k, a.lit)
					break
				}
			}
		}
		i++
	}
	for _, a := range args {
		if a.keyword == "" {
			continue
		}
		c := a.lit
		if a.ref != "" {
			var err error
			if c, err = lookup(a.ref); err != nil {
				return nil, err
			}
		}
		set(a.keyword, c)
	}

	for _, nc := range cols {
		if nc.col == nil {
			return nil, invalid("crosstab", ErrNoColumns, "argument %q has no values", nc.name)
		}
		if nc.col.Len() != cols[0].col.Len() {
			return nil, invalid("crosstab", ErrLengthMismatch, "%q has %d rows, %q has %d", nc.name, nc.col.Len(), cols[0].name, cols[0].col.Len())
		}
	}
	return cols, nil
}

// countGroups counts rows per key tuple. Rows with a missing numeric key
// are dropped.
func countGroups(cols []namedCol) *CountSeries {
	s := &CountSeries{Names: make([]string, len(cols))}
	for d, c := range cols {
		s.Names[d] = c.name
	}
	n := cols[0].col.Len()
	idx := newKeyIndex()
	var counts []int
rows:
	for r := 0; r < n; r++ {
		key := make([]frame.Value, len(cols))
		for d, c := range cols {
			if c.col.IsMissing(r) {
				continue rows
			}
			key[d] = c.col.Value(r)
		}
		g := idx.add(key)
		if g == len(counts) {
			counts = append(counts, 0)
		}
		counts[g]++
	}
	order := idx.sort()
	s.Keys = idx.keys
	s.Counts = make([]int, len(counts))
	for newPos, old := range order {
		s.Counts[newPos] = counts[old]
	}
	return s
}

// keyIndex assigns dense ids to distinct key tuples.
type keyIndex struct {
	keys [][]frame.Value
	ids  map[string]int
}

func newKeyIndex() *keyIndex { return &keyIndex{ids: make(map[string]int)} }

func (ki *keyIndex) add(key []frame.Value) int {
	h := keyHash(key)
	if id, ok := ki.ids[h]; ok {
		return id
	}
	id := len(ki.keys)
	ki.ids[h] = id
	ki.keys = append(ki.keys, key)
	return id
}

func (ki *keyIndex) find(key []frame.Value) int { return ki.ids[keyHash(key)] }

// sort orders keys ascending and returns, for each new position, the old id.
func (ki *keyIndex) sort() []int {
	order := make([]int, len(ki.keys))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return frame.CompareKeys(ki.keys[order[a]], ki.keys[order[b]]) < 0 })
	sorted := make([][]frame.Value, len(order))
	for newPos, old := range order {
		sorted[newPos] = ki.keys[old]
		ki.ids[keyHash(sorted[newPos])] = newPos
	}
	ki.keys = sorted
	return order
}

func keyHash(key []frame.Value) string {
	var b strings.Builder
	for _, v := range key {
		if v.IsNumeric() {
			f := v.Float()
			if f == 0 {
				f = 0 // fold -0
			}
			b.WriteByte('n')
			b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		} else {
			b.WriteByte('s')
			b.WriteString(strconv.Quote(v.String()))
		}
		b.WriteByte(0)
	}
	return b.String()
}

func project(key []frame.Value, dims []int) []frame.Value {
	out := make([]frame.Value, len(dims))
	for i, d := range dims {
		out[i] = key[d]
	}
	return out
}

func searchKeys(keys [][]frame.Value, key []frame.Value) int {
	i := sort.Search(len(keys), func(i int) bool { return frame.CompareKeys(keys[i], key) >= 0 })
	if i < len(keys) && frame.CompareKeys(keys[i], key) == 0 {
		return i
	}
	return -1
}

// keyColumn materializes dimension d of keys as a column of c's kind.
func keyColumn(c namedCol, keys [][]frame.Value, d int) *frame.Column {
	if c.col.Kind() == frame.Numeric {
		vals := make([]float64, len(keys))
		for i, k := range keys {
			vals[i] = k[d].Float()
		}
		return frame.NewNumeric(c.name, vals)
	}
	vals := make([]string, len(keys))
	for i, k := range keys {
		vals[i] = k[d].String()
	}
	return frame.NewCategorical(c.name, vals)
}
