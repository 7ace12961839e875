package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pulse-inc/pulse/internal/interfaces/cli/migrate"
	"github.com/pulse-inc/pulse/internal/interfaces/cli/server"
	"github.com/pulse-inc/pulse/internal/interfaces/cli/slack"
	"github.com/pulse-inc/pulse/internal/shared/version"
)

// @title Pulse API
// @version 1.0
// @description Slack OAuth connect and feedback dashboard API.
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:     "pulse",
		Short:   "Pulse - product feedback dashboard backend",
		Long:    `Pulse serves the feedback dashboard API and brokers the Slack OAuth connection it reads messages through.`,
		Version: version.Current(),
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		slack.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
