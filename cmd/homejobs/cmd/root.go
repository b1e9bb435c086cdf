package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "homejobs",
	Short: "Home Jobs for Women web application",
	Long: `homejobs runs the Home Jobs for Women job board and ships the developer
tooling that goes with it.

Running homejobs without a subcommand starts the web server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
