package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadCSV reads a delimited text file with a header row into a Table.
func ReadCSV(path string, opt LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	return readDelimited(baseName(path), f, delim, opt)
}

// ParseCSV reads delimited text from r; name labels the resulting Table.
func ParseCSV(name string, r io.Reader, opt LoadOptions) (*Table, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = ','
	}
	return readDelimited(name, r, delim, opt)
}

func readDelimited(name string, r io.Reader, delim rune, opt LoadOptions) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = delim
	return buildTable(name, csvSource{cr}, opt)
}

type csvSource struct{ r *csv.Reader }

func (s csvSource) Next() ([]string, bool, error) {
	rec, err := s.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return rec, true, nil
}
