package cmd

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/edakit/internal/eda"
	"github.com/KaramelBytes/edakit/internal/frame"
	"github.com/spf13/cobra"
)

var (
	cutLoad      loadFlags
	cutColumn    string
	cutBreaks    string
	cutQuantiles int
	cutLabels    []string
	cutMissing   string
)

var cutCmd = &cobra.Command{
	Use:   "cut <file>",
	Short: "Bin a numeric column into labeled intervals",
	Long: `Cut assigns each value of a numeric column to a right-open interval. Give
explicit boundaries with --breaks, or --quantiles k to place k boundaries at
evenly spaced percentiles. Values equal to a boundary fall into the upper bin.`,
	Example: `  edakit cut data.csv --column age --breaks 18,65
  edakit cut data.csv --column score --quantiles 3 --labels low,mid,high,top`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cutColumn == "" {
			return errors.New("--column is required")
		}
		breaks, err := cutBreaksFromFlags(cmd)
		if err != nil {
			return err
		}
		t, err := cutLoad.load(cmd, args[0])
		if err != nil {
			return err
		}
		col, ok := t.Col(cutColumn)
		if !ok {
			return fmt.Errorf("unknown column %q (available: %v)", cutColumn, t.Names())
		}
		missing := cutMissing
		if missing == "" {
			missing = settings().MissingLabel
		}
		binned, err := eda.CutColumn(col, breaks, eda.CutOptions{Labels: cutLabels, Missing: missing})
		if err != nil {
			return err
		}
		out, err := frame.NewTable(col, binned.Renamed(col.Name+"_bin"))
		if err != nil {
			return err
		}
		return emit(cmd, &eda.Frame{Table: out})
	},
}

func cutBreaksFromFlags(cmd *cobra.Command) (eda.Breaks, error) {
	hasBreaks := cmd.Flags().Changed("breaks")
	hasQuantiles := cmd.Flags().Changed("quantiles")
	switch {
	case hasBreaks && hasQuantiles:
		return eda.Breaks{}, errors.New("use either --breaks or --quantiles, not both")
	case hasQuantiles:
		return eda.Quantiles(cutQuantiles), nil
	case hasBreaks:
		edges, err := parseFloats(cutBreaks)
		if err != nil {
			return eda.Breaks{}, fmt.Errorf("--breaks: %w", err)
		}
		return eda.Edges(edges...), nil
	default:
		return eda.Breaks{}, errors.New("one of --breaks or --quantiles is required")
	}
}

func init() {
	rootCmd.AddCommand(cutCmd)
	addLoadFlags(cutCmd, &cutLoad)
	cutCmd.Flags().StringVarP(&cutColumn, "column", "c", "", "numeric column to bin")
	cutCmd.Flags().StringVar(&cutBreaks, "breaks", "", "comma-separated bin boundaries, e.g. 3,7")
	cutCmd.Flags().IntVar(&cutQuantiles, "quantiles", 0, "number of percentile boundaries (k boundaries give k+1 bins)")
	cutCmd.Flags().StringSliceVar(&cutLabels, "labels", nil, "bin labels, one more than the number of boundaries")
	cutCmd.Flags().StringVar(&cutMissing, "missing-label", "", "label for missing values (default from config, else 'missing')")
}
