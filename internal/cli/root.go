package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stability",
	Short: "Time-decayed wellbeing score daemon",
	Long:  "Stability maintains a decaying wellbeing score fed by activity completions and screen-time telemetry. Single Go binary, local SQLite state.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(syncCmd)
}
