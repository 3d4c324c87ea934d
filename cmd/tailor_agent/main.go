// Package main provides the entry point for the application tailor CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tailor_agent",
	Short: "Tailored CVs and cover letters for German job applications",
	Long: `tailor_agent tailors a stored profile to a job posting and produces a CV or cover letter
on an A4 page layout, as PDF, PNG page preview, or terminal preview.

Configuration can be loaded from a JSON or TOML file using --config. Command-line arguments
override config file values; GEMINI_API_KEY, DATABASE_URL and CHROME_PATH fill what is left empty.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
