package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pitchside/cricpix/internal/cli"
	"github.com/pitchside/cricpix/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "cricpix",
		Short: "Cricpix CLI - Chat-driven cricket image search",
		Long: `Cricpix CLI queries the cricket image chatbot backend, with an
interactive chat UI and one-shot commands.

Environment variables:
  CRICPIX_API_URL               API base URL (default: http://localhost:5000)
  CRICPIX_SIMILARITY_THRESHOLD  Starting similarity cutoff (default: 0.4)
  CRICPIX_LOG_FILE              JSON log file for chat UI background logs`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env and config)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.ChatCmd())
	rootCmd.AddCommand(client.AskCmd())
	rootCmd.AddCommand(client.HistoryCmd())
	rootCmd.AddCommand(client.FeedbackCmd())
	rootCmd.AddCommand(client.AuthCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
