package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/redflag/internal/observability"
	"github.com/jonathan/redflag/internal/types"
	"github.com/spf13/cobra"
)

var (
	analyzeJSON bool
	analyzeSave bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <username>",
	Short: "Analyze one Instagram profile and print the verdict",
	Long: `Scrape a public Instagram profile and print its red/green flag verdict and a message opener.

The username may be a bare handle, @handle or a profile URL.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the API response JSON instead of a summary")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Store the analysis in the database (requires DATABASE_URL)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if !analyzeSave {
		cfg.DatabaseURL = ""
	} else if cfg.DatabaseURL == "" {
		return fmt.Errorf("--save requires a database URL (set --db-url or DATABASE_URL)")
	}

	logger := newLogger(os.Stderr, cfg.Verbose, false)
	ctx := context.Background()

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.close(logger)

	svc, client, err := newService(ctx, cfg, logger, store.recorder())
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	result, err := svc.AnalyzeUsername(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", args[0], err)
	}

	return writeResult(cmd.OutOrStdout(), result, analyzeJSON)
}

// writeResult prints result as indented JSON or as boxed summaries.
func writeResult(out io.Writer, result *types.AnalysisResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Response())
	}
	observability.NewPrinter(out).PrintAnalysis(result)
	return nil
}
