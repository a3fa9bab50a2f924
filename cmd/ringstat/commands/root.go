// Package commands implements the ringstat command tree.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vramlabs/ringstage/cmd/ringstat/logger"
)

var debugMode bool

var rootCmd = &cobra.Command{
	Use:   "ringstat",
	Short: "Staging ring-buffer workload simulator",
	Long: `ringstat drives synthetic allocate/complete workloads through the
ringstage staging uploader and reports how the rings behave: allocation
counts, staging growth, and flush pressure.

Use 'simulate' for an end-of-run summary or 'trace' for per-frame output.
Sizes accept human-readable forms like 4MiB or 64kb.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Options{
			Enabled: debugMode,
			Level:   slog.LevelDebug,
		})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false,
		"write debug logs to ~/.ringstat/logs")
}
