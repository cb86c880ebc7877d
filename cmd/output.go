package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KaramelBytes/edakit/internal/eda"
	"github.com/KaramelBytes/edakit/internal/frame"
	"github.com/KaramelBytes/edakit/internal/render"
	"github.com/KaramelBytes/edakit/internal/utils"
	"github.com/spf13/cobra"
)

// loadFlags are the dataset-reading flags shared by every command that
// takes an input file.
type loadFlags struct {
	delimiter  string
	decimal    string
	thousands  string
	maxRows    int
	sheetName  string
	sheetIndex int
	columns    []string
}

func addLoadFlags(c *cobra.Command, lf *loadFlags) {
	c.Flags().StringVar(&lf.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|'")
	c.Flags().StringVar(&lf.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	c.Flags().StringVar(&lf.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	c.Flags().IntVar(&lf.maxRows, "max-rows", 0, "maximum rows to read (0 = config default, unlimited if unset)")
	c.Flags().StringVar(&lf.sheetName, "sheet-name", "", "XLSX: sheet name to read")
	c.Flags().IntVar(&lf.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	c.Flags().StringSliceVar(&lf.columns, "columns", nil, "comma-separated subset of columns to keep, in order")
}

// options merges config defaults with the flags; flags win.
func (lf *loadFlags) options() (frame.LoadOptions, error) {
	c := settings()
	opt := frame.DefaultLoadOptions()
	opt.MaxRows = c.MaxRows
	if lf.maxRows > 0 {
		opt.MaxRows = lf.maxRows
	}

	delim := firstNonEmpty(lf.delimiter, c.Delimiter)
	switch delim {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	case "|", "pipe":
		opt.Delimiter = '|'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", delim)
	}

	dec := firstNonEmpty(lf.decimal, c.DecimalSeparator)
	switch strings.ToLower(strings.TrimSpace(dec)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", dec)
	}

	th := firstNonEmpty(lf.thousands, c.ThousandsSeparator)
	switch strings.ToLower(th) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", th)
	}

	opt.SheetName = strings.TrimSpace(lf.sheetName)
	if lf.sheetIndex > 0 {
		opt.SheetIndex = lf.sheetIndex
	}
	opt.Columns = lf.columns
	return opt, nil
}

// load reads path and warns when the row cap cut it short.
func (lf *loadFlags) load(cmd *cobra.Command, path string) (*frame.Table, error) {
	opt, err := lf.options()
	if err != nil {
		return nil, err
	}
	debugf("load %s with %+v", path, opt)
	t, err := frame.Load(path, opt)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	if t.Truncated > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s: read only the first %d rows (--max-rows)\n", filepath.Base(path), t.Len())
	}
	return t, nil
}

// emit renders d in the selected format and writes it to --output or stdout.
func emit(cmd *cobra.Command, d eda.Display) error {
	f, err := render.ParseFormat(firstNonEmpty(outFormat, formatFromPath(outputPath), settings().OutputFormat))
	if err != nil {
		return err
	}
	b, err := render.Render(d, f)
	if err != nil {
		return err
	}
	if outputPath == "" {
		_, err := cmd.OutOrStdout().Write(b)
		return err
	}
	if err := utils.SafeWriteFile(outputPath, b); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s output to %s\n", f, outputPath)
	return nil
}

// formatFromPath guesses a format from the --output extension.
func formatFromPath(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".html", ".htm":
		return "html"
	case ".md", ".markdown":
		return "markdown"
	case ".json":
		return "json"
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseFloats parses a comma-separated list of numbers.
func parseFloats(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return []float64{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		out = append(out, f)
	}
	return out, nil
}

// parseBreaks accepts "3,7" for explicit edges or "q4" for four quantile breaks.
func parseBreaks(s string) (eda.Breaks, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "q"); ok {
		k, err := strconv.Atoi(rest)
		if err != nil {
			return eda.Breaks{}, fmt.Errorf("invalid quantile count %q", s)
		}
		return eda.Quantiles(k), nil
	}
	edges, err := parseFloats(s)
	if err != nil {
		return eda.Breaks{}, err
	}
	return eda.Edges(edges...), nil
}
