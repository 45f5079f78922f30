// Package cli implements the Lingua command-line interface using Cobra.
// Each subcommand maps to one of the progress engine's operations
// (record, progress, achievements, stats, reset, serve).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lingua",
	Short: "Lingua — language practice progress engine",
	Long: `Lingua tracks your language practice and turns it into durable
motivation: experience points, levels, daily streaks, achievements,
and weekly challenges.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
