// Package main provides the entry point for the redflag analyzer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	verbose     bool
	apiKey      string
	databaseURL string
	useBrowser  bool
)

var rootCmd = &cobra.Command{
	Use:   "redflag",
	Short: "Instagram profile red/green flag analyzer",
	Long: `redflag scrapes a public Instagram profile, asks Gemini for a red or green flag verdict
and a conversation opener, and serves the result over a JSON API.

Configuration is read from an optional JSON file (--config), then environment variables,
then command-line flags, each overriding the previous.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API Key (defaults to GEMINI_API_KEY env var)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	rootCmd.PersistentFlags().BoolVar(&useBrowser, "use-browser", false, "Fall back to a headless browser when the profile page has no metadata (requires Chrome)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
