package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/edakit/internal/eda"
	"github.com/KaramelBytes/edakit/internal/report"
	"github.com/KaramelBytes/edakit/internal/utils"
	"github.com/spf13/cobra"
)

var (
	sumLoad  loadFlags
	sumTop   int
	sumQuiet bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary <files...>",
	Short: "Summarize every column of one or more CSV/TSV/XLSX files",
	Long: `Summarize describes numeric columns by min, quartiles, mean and max (plus the
number of missing values) and categorical columns by their most frequent levels.
Several files, or glob patterns, produce one combined report.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := utils.ExpandInputs(args)
		if err != nil {
			return err
		}
		opt := eda.SummaryOptions{TopLevels: settings().TopLevels}
		if sumTop > 0 {
			opt.TopLevels = sumTop
		}

		total := len(files)
		var rep *report.Report
		if total > 1 {
			rep = report.New(fmt.Sprintf("Summary of %d files", total))
		}
		var single eda.Display
		for i, path := range files {
			if !sumQuiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			t, err := sumLoad.load(cmd, path)
			if err != nil {
				return err
			}
			st := eda.SummarizeTableWith(t, opt)
			if rep == nil {
				single = st
				continue
			}
			if _, err := rep.Add(filepath.Base(path), st); err != nil {
				return err
			}
		}
		if rep != nil {
			return emit(cmd, rep)
		}
		return emit(cmd, single)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	addLoadFlags(summaryCmd, &sumLoad)
	summaryCmd.Flags().IntVar(&sumTop, "top", 0, "levels kept per categorical column (0 = config top_levels)")
	summaryCmd.Flags().BoolVarP(&sumQuiet, "quiet", "q", false, "suppress progress output")
}
