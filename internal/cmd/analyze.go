package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-sshlens/internal/config"
	"go-sshlens/internal/output"
	"go-sshlens/internal/pipeline"
	"go-sshlens/internal/report"
)

var (
	outputPath     string
	year           int
	threshold      int
	outputJSON     bool
	skipUnreadable bool
	quiet          bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [log files...]",
	Short: "Analyze sshd auth logs and write the attacker report",
	Long: `Analyze one or more sshd authentication log files.

Files are read in the order given. Every "Failed password" line is counted
per host (domain) and source IP; IPs with more than --threshold attempts
against a host are reported with their attack window.

Examples:
  sshlens analyze secure1.log secure2.log
  sshlens analyze /var/log/secure --year 2024 --threshold 20
  sshlens analyze ./logs/*.log --skip-unreadable --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Report file (default "+config.DefaultOutput+")")
	analyzeCmd.Flags().IntVar(&year, "year", 0, "Year bound to syslog timestamps (default current year)")
	analyzeCmd.Flags().IntVar(&threshold, "threshold", 0, "Attempts an IP must exceed to be reported (default 13)")
	analyzeCmd.Flags().BoolVar(&outputJSON, "json", false, "Print the result as JSON instead of the summary")
	analyzeCmd.Flags().BoolVar(&skipUnreadable, "skip-unreadable", false, "Skip and report files that cannot be read")
	analyzeCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the console summary")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := newLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	res, err := pipeline.Run(args, pipeline.Options{
		Year:           cfg.Analysis.Year,
		Threshold:      cfg.Analysis.Threshold,
		SkipUnreadable: cfg.Analysis.SkipUnreadable,
	}, log)
	if err != nil {
		return err
	}

	if err := report.WriteFile(cfg.Analysis.Output, res); err != nil {
		return err
	}
	log.Info("report written", zap.String("path", cfg.Analysis.Output))

	switch {
	case outputJSON:
		s, err := output.ToJSON(res)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
	case !quiet:
		fmt.Fprint(cmd.OutOrStdout(), output.Summary(res, cfg.Analysis.Output))
	}
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Analysis.Output = outputPath
	}
	if flags.Changed("year") {
		cfg.Analysis.Year = year
	}
	if flags.Changed("threshold") {
		cfg.Analysis.Threshold = threshold
	}
	if flags.Changed("skip-unreadable") {
		cfg.Analysis.SkipUnreadable = skipUnreadable
	}
}
