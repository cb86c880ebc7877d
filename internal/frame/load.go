package frame

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// LoadOptions controls how files are read into a Table.
type LoadOptions struct {
	// Delimiter for CSV. If 0, '\t' for .tsv files and ',' otherwise.
	Delimiter rune
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, strip common separators (',' '.' space) other than the decimal one
	// Columns keeps only the named columns, in this order. Empty keeps all.
	Columns []string
	// XLSX sheet selection: by name, else by 1-based index (default 1).
	SheetName  string
	SheetIndex int
}

// DefaultLoadOptions returns reasonable defaults for reading datasets.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{SheetIndex: 1}
}

// Load reads a CSV/TSV or XLSX file, choosing the reader by extension.
func Load(path string, opt LoadOptions) (*Table, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return ReadXLSX(path, opt)
	}
	return ReadCSV(path, opt)
}

// rowSource yields raw records; the first record is the header.
type rowSource interface {
	Next() ([]string, bool, error)
}

// buildTable drains src and infers a kind per column.
func buildTable(name string, src rowSource, opt LoadOptions) (*Table, error) {
	header, ok, err := src.Next()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !ok || len(header) == 0 {
		return &Table{Name: name, index: map[string]int{}}, nil
	}
	ncol := len(header)
	names := make([]string, ncol)
	for i, h := range header {
		names[i] = uniqueName(strings.TrimSpace(h), i, names[:i])
	}
	raw := make([][]string, ncol)

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	rows, kept := 0, 0
	for {
		rec, ok, err := src.Next()
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", rows+1, err)
		}
		if !ok {
			break
		}
		rows++
		if kept >= maxRows {
			continue
		}
		kept++
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			raw[j] = append(raw[j], v)
		}
	}

	t := &Table{Name: name, index: make(map[string]int, ncol)}
	if kept < rows {
		t.Truncated = rows
	}
	for j := 0; j < ncol; j++ {
		if err := t.Append(inferColumn(names[j], raw[j], kept, opt)); err != nil {
			return nil, err
		}
	}
	if len(opt.Columns) > 0 {
		sel, err := t.Select(opt.Columns...)
		if err != nil {
			return nil, err
		}
		return sel, nil
	}
	return t, nil
}

// inferColumn returns a numeric column when every non-empty cell parses as a
// number, and a categorical column otherwise.
func inferColumn(name string, cells []string, n int, opt LoadOptions) *Column {
	nums := make([]float64, n)
	seen := 0
	for i, v := range cells {
		if v == "" {
			nums[i] = math.NaN()
			continue
		}
		x, ok := parseNumeric(v, opt)
		if !ok {
			strs := make([]string, n)
			copy(strs, cells)
			return NewCategorical(name, strs)
		}
		nums[i] = x
		seen++
	}
	if seen == 0 && n > 0 {
		// all blank: nothing says it is numeric
		strs := make([]string, n)
		copy(strs, cells)
		return NewCategorical(name, strs)
	}
	return NewNumeric(name, nums)
}

func uniqueName(h string, idx int, prev []string) string {
	if h == "" {
		h = fmt.Sprintf("column%d", idx+1)
	}
	name := h
	for k := 2; contains(prev, name); k++ {
		name = fmt.Sprintf("%s_%d", h, k)
	}
	return name
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func baseName(path string) string { return filepath.Base(path) }
