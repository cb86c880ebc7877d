package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/edakit/internal/eda"
	"github.com/KaramelBytes/edakit/internal/frame"
	"github.com/spf13/cobra"
)

var (
	ctLoad     loadFlags
	ctAs       []string
	ctLayout   string
	ctValue    string
	ctNoCounts bool
	ctPivot    []int
	ctBins     []string
)

var crosstabCmd = &cobra.Command{
	Use:   "crosstab <file> <columns...>",
	Short: "Count rows per combination of column values",
	Long: `Crosstab counts how often each combination of values occurs across the given
columns. Rows with a missing numeric key are dropped. The pivot layout moves
every other column (or those chosen with --pivot) into the header and fills
absent combinations with zero.`,
	Example: `  edakit crosstab data.csv region product
  edakit crosstab data.csv region --as tier=segment --layout frame
  edakit crosstab data.csv region age --bin age=18,65 --pivot 1`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseLayout(ctLayout)
		if err != nil {
			return err
		}
		t, err := ctLoad.load(cmd, args[0])
		if err != nil {
			return err
		}
		if t, err = applyBins(t, ctBins); err != nil {
			return err
		}

		var xargs []eda.Arg
		for _, name := range args[1:] {
			xargs = append(xargs, eda.Col(name))
		}
		for _, kv := range ctAs {
			name, col, ok := strings.Cut(kv, "=")
			if !ok || name == "" || col == "" {
				return fmt.Errorf("invalid --as %q (want name=column)", kv)
			}
			xargs = append(xargs, eda.Col(col).As(name))
		}

		opt := eda.Options{Data: t, Format: format, Value: ctValue, NoCounts: ctNoCounts}
		if opt.Value == "" {
			opt.Value = settings().CountColumn
		}
		if cmd.Flags().Changed("pivot") {
			opt.Columns = ctPivot
		}
		res, err := eda.Crosstab(opt, xargs...)
		if err != nil {
			return err
		}
		return emit(cmd, res)
	},
}

func parseLayout(s string) (eda.Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pivot":
		return eda.FormatPivot, nil
	case "series":
		return eda.FormatSeries, nil
	case "frame", "dataframe":
		return eda.FormatDataFrame, nil
	default:
		return "", fmt.Errorf("unsupported --layout: %s (use pivot|series|frame)", s)
	}
}

// applyBins replaces each "column=breaks" column of t with its binned labels.
func applyBins(t *frame.Table, specs []string) (*frame.Table, error) {
	if len(specs) == 0 {
		return t, nil
	}
	binned := make(map[string]*frame.Column, len(specs))
	for _, spec := range specs {
		name, raw, ok := strings.Cut(spec, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --bin %q (want column=3,7 or column=q4)", spec)
		}
		col, found := t.Col(name)
		if !found {
			return nil, fmt.Errorf("--bin: unknown column %q (available: %v)", name, t.Names())
		}
		breaks, err := parseBreaks(raw)
		if err != nil {
			return nil, fmt.Errorf("--bin %s: %w", name, err)
		}
		c, err := eda.CutColumn(col, breaks, eda.CutOptions{Missing: settings().MissingLabel})
		if err != nil {
			return nil, err
		}
		debugf("binned %s with %s", name, breaks)
		binned[name] = c
	}
	cols := make([]*frame.Column, 0, t.NumCols())
	for _, c := range t.Columns() {
		if b, ok := binned[c.Name]; ok {
			c = b
		}
		cols = append(cols, c)
	}
	out, err := frame.NewTable(cols...)
	if err != nil {
		return nil, err
	}
	out.Name = t.Name
	return out, nil
}

func init() {
	rootCmd.AddCommand(crosstabCmd)
	addLoadFlags(crosstabCmd, &ctLoad)
	crosstabCmd.Flags().StringArrayVar(&ctAs, "as", nil, "add a column under another name: name=column (repeatable)")
	crosstabCmd.Flags().StringVar(&ctLayout, "layout", "pivot", "result shape: pivot|series|frame")
	crosstabCmd.Flags().StringVar(&ctValue, "value", "", "name of the count column (default from config, else 'n')")
	crosstabCmd.Flags().BoolVar(&ctNoCounts, "no-counts", false, "frame layout: list distinct combinations only, columns reversed")
	crosstabCmd.Flags().IntSliceVar(&ctPivot, "pivot", nil, "0-based positions of the columns moved into the header (default 1,3,5,...)")
	crosstabCmd.Flags().StringArrayVar(&ctBins, "bin", nil, "bin a numeric column before counting: column=3,7 or column=q4 (repeatable)")
}
