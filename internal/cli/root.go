// Package cli implements the Wellspring command-line interface using Cobra.
// Each subcommand maps to a tracker capability (log, stats, missions, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wellspring",
	Short: "Wellspring — Track your wellness locally",
	Long: `Wellspring is the local-first wellness tracker.
Log moods, habits, notes, and reminders on your machine with zero network,
zero accounts. Milestones, achievements, and levels come along for free.`,
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
