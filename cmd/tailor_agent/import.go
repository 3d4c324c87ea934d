package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-tailor/internal/ingestion"
	"github.com/jonathan/application-tailor/internal/types"
)

var (
	importFile    string
	importURL     string
	importProfile string
	importBrowser bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Store a profile or job posting from a JSON file",
}

var importProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Store a candidate profile",
	Long:  `Reads a profile JSON file and stores it. A profile without "id" gets a new one. Prints the profile ID.`,
	RunE:  runImportProfile,
}

var importJobCmd = &cobra.Command{
	Use:   "job",
	Short: "Store a job posting of a profile",
	Long: `Reads a job JSON file with a "profile_id" and stores it, or fetches a job posting page
with --url and stores it as a draft job of --profile. Prints the job ID.

Pages that render their content with JavaScript can be loaded in headless Chrome with --browser.`,
	RunE:  runImportJob,
}

func init() {
	importProfileCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to the profile JSON, or - for stdin (required)")
	_ = importProfileCmd.MarkFlagRequired("file")

	importJobCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to the job JSON, or - for stdin")
	importJobCmd.Flags().StringVarP(&importURL, "url", "u", "", "URL of a job posting page")
	importJobCmd.Flags().StringVarP(&importProfile, "profile", "p", "", "Profile ID the fetched job belongs to (required with --url)")
	importJobCmd.Flags().BoolVar(&importBrowser, "browser", false, "Render the page in headless Chrome when it yields too little text")
	importJobCmd.MarkFlagsOneRequired("file", "url")
	importJobCmd.MarkFlagsMutuallyExclusive("file", "url")
	importJobCmd.MarkFlagsRequiredTogether("url", "profile")

	importCmd.AddCommand(importProfileCmd, importJobCmd)
	rootCmd.AddCommand(importCmd)
}

func runImportProfile(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var profile types.Profile
	if err := readJSONFile(cmd, importFile, &profile); err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveProfile(ctx, &profile); err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), profile.ID)
	return nil
}

func runImportJob(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var job types.Job
	if importURL != "" {
		fetched, err := jobFromURL(ctx)
		if err != nil {
			return err
		}
		job = *fetched
	} else if err := readJSONFile(cmd, importFile, &job); err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveJob(ctx, &job); err != nil {
		return fmt.Errorf("failed to store job: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), job.ID)
	return nil
}

func jobFromURL(ctx context.Context) (*types.Job, error) {
	profileID, err := parseIDFlag("profile", importProfile)
	if err != nil {
		return nil, err
	}
	posting, err := ingestion.FromURL(ctx, importURL, ingestion.Options{
		UseBrowser: importBrowser,
		ChromePath: settings.ChromePath,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("fetched job posting",
		"url", posting.URL, "platform", posting.Platform, "company", posting.Company, "chars", len(posting.Text))
	return posting.Job(profileID), nil
}

// readFile reads path, or the command's stdin when path is "-".
func readFile(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

func readJSONFile(cmd *cobra.Command, path string, v any) error {
	data, err := readFile(cmd, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
