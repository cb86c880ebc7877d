package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/edakit/internal/config"
	"github.com/KaramelBytes/edakit/internal/render"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set edakit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		c := settings()
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "top_levels: %d\n", c.TopLevels)
		fmt.Fprintf(w, "missing_label: %s\n", c.MissingLabel)
		fmt.Fprintf(w, "count_column: %s\n", c.CountColumn)
		fmt.Fprintf(w, "output_format: %s\n", c.OutputFormat)
		if c.Delimiter != "" {
			fmt.Fprintf(w, "delimiter: %q\n", c.Delimiter)
		}
		if c.DecimalSeparator != "" {
			fmt.Fprintf(w, "decimal_separator: %q\n", c.DecimalSeparator)
		}
		if c.ThousandsSeparator != "" {
			fmt.Fprintf(w, "thousands_separator: %q\n", c.ThousandsSeparator)
		}
		fmt.Fprintf(w, "max_rows: %d\n", c.MaxRows)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "top_levels":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for top_levels: %v", val)
			}
			cfg.TopLevels = i
		case "missing_label":
			if val == "" {
				return fmt.Errorf("missing_label cannot be empty")
			}
			cfg.MissingLabel = val
		case "count_column":
			if val == "" {
				return fmt.Errorf("count_column cannot be empty")
			}
			cfg.CountColumn = val
		case "output_format":
			f, err := render.ParseFormat(val)
			if err != nil {
				return err
			}
			cfg.OutputFormat = string(f)
		case "delimiter":
			switch val {
			case ",", ";", "tab", "\t", "|", "pipe", "":
				cfg.Delimiter = val
			default:
				return fmt.Errorf("invalid delimiter: %s (use ',' | ';' | 'tab' | '|')", val)
			}
		case "decimal_separator":
			cfg.DecimalSeparator = val
		case "thousands_separator":
			cfg.ThousandsSeparator = val
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
