package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/edakit/internal/eda"
	"github.com/KaramelBytes/edakit/internal/report"
	"github.com/spf13/cobra"
)

var (
	repLoad     loadFlags
	repTitle    string
	repTop      int
	repCrosstab []string
	repBins     []string
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Build one document with column summaries and crosstabs",
	Long: `Report combines the summary of every column with any number of crosstabs
into a single document. Write it as HTML with --output report.html.`,
	Example: `  edakit report sales.csv --crosstab region,product -o sales.html`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		t, err := repLoad.load(cmd, path)
		if err != nil {
			return err
		}
		if t, err = applyBins(t, repBins); err != nil {
			return err
		}
		title := repTitle
		if title == "" {
			title = filepath.Base(path)
		}
		rep := report.New(title)

		opt := eda.SummaryOptions{TopLevels: settings().TopLevels}
		if repTop > 0 {
			opt.TopLevels = repTop
		}
		if _, err := rep.Add("Columns", eda.SummarizeTableWith(t, opt)); err != nil {
			return err
		}

		for _, spec := range repCrosstab {
			var xargs []eda.Arg
			var names []string
			for _, name := range strings.Split(spec, ",") {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				names = append(names, name)
				xargs = append(xargs, eda.Col(name))
			}
			res, err := eda.Crosstab(eda.Options{Data: t, Value: settings().CountColumn}, xargs...)
			if err != nil {
				return fmt.Errorf("crosstab %q: %w", spec, err)
			}
			if _, err := rep.Add("Counts by "+strings.Join(names, ", "), res); err != nil {
				return err
			}
		}
		debugf("report %s with %d sections", rep.ID, len(rep.Sections))
		return emit(cmd, rep)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addLoadFlags(reportCmd, &repLoad)
	reportCmd.Flags().StringVar(&repTitle, "title", "", "report title (default: file name)")
	reportCmd.Flags().IntVar(&repTop, "top", 0, "levels kept per categorical column (0 = config top_levels)")
	reportCmd.Flags().StringArrayVar(&repCrosstab, "crosstab", nil, "comma-separated columns to cross-tabulate (repeatable)")
	reportCmd.Flags().StringArrayVar(&repBins, "bin", nil, "bin a numeric column first: column=3,7 or column=q4 (repeatable)")
}
