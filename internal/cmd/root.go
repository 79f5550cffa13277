package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-sshlens/internal/logging"
)

var (
	logLevel   string
	logFile    string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "sshlens",
	Short: "Failed SSH login analyzer",
	Long: `sshlens reads sshd authentication logs (secure, auth.log), counts failed
password attempts per host and source IP, and writes a ranked report of
likely attackers, their attack windows and the most targeted accounts.

Example:
  sshlens analyze secure1.log secure2.log secure.log
  sshlens analyze /var/log/secure -o report.log --year 2024
  sshlens analyze ./logs/*.log --json
  sshlens browse /var/log/secure`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write JSON logs to this rotating file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newLogger(level, file string) (*zap.Logger, error) {
	if logLevel != "" {
		level = logLevel
	}
	if logFile != "" {
		file = logFile
	}
	return logging.New(level, file)
}
