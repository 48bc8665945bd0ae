package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "capcast",
	Short: "Capcast - NHL contract value prediction",
	Long: `Capcast Unified CLI

Predicts NHL contract cap hits from advanced season statistics.
Covers the full pipeline: roster and contract ingestion, season
stat loading, model training, and prediction serving.

Usage:
  go run ./cmd/capcast [command]

Examples:
  go run ./cmd/capcast api
  go run ./cmd/capcast ingest all
  go run ./cmd/capcast train
  go run ./cmd/capcast predict --input statline.json`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
