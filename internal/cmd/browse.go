package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-sshlens/internal/config"
	"go-sshlens/internal/pipeline"
	"go-sshlens/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [log files...]",
	Short: "Browse the analysis of sshd auth logs interactively",
	Long: `Analyze the given log files and open a terminal browser over the result.

Keys: j/k move, enter toggles the domain detail, r re-analyzes, s writes the
text report to --output, q quits. Skipped files and bad timestamps are shown
in the header.

Examples:
  sshlens browse /var/log/secure
  sshlens browse ./logs/*.log --skip-unreadable --threshold 20`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Report file written by 's' (default "+config.DefaultOutput+")")
	browseCmd.Flags().IntVar(&year, "year", 0, "Year bound to syslog timestamps (default current year)")
	browseCmd.Flags().IntVar(&threshold, "threshold", 0, "Attempts an IP must exceed to be reported (default 13)")
	browseCmd.Flags().BoolVar(&skipUnreadable, "skip-unreadable", false, "Skip and list files that cannot be read")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// The console logger would draw over the alternate screen.
	return tui.Run(args, pipeline.Options{
		Year:           cfg.Analysis.Year,
		Threshold:      cfg.Analysis.Threshold,
		SkipUnreadable: cfg.Analysis.SkipUnreadable,
	}, cfg.Analysis.Output)
}
