package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-tailor/internal/pipeline"
	"github.com/jonathan/application-tailor/internal/types"
)

var (
	overviewProfile string
	overviewLocale  string
	overviewFormat  string
	overviewOut     string
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Export the applications overview of a profile",
	Long:  `Lays out a table of all job postings of the profile with company, position, status and date.`,
	RunE:  runOverview,
}

func init() {
	overviewCmd.Flags().StringVarP(&overviewProfile, "profile", "p", "", "Profile ID (required)")
	overviewCmd.Flags().StringVarP(&overviewLocale, "locale", "l", "", "Table language: de or en (defaults to the configured locale)")
	overviewCmd.Flags().StringVar(&overviewFormat, "format", "pdf", "Output format: pdf or text")
	overviewCmd.Flags().StringVarP(&overviewOut, "out", "o", "", "Write the PDF to this file")
	_ = overviewCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(overviewCmd)
}

func runOverview(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	profileID, err := parseIDFlag("profile", overviewProfile)
	if err != nil {
		return err
	}

	req := types.OverviewRequest{Locale: types.Locale(settings.Locale)}
	if cmd.Flags().Changed("locale") {
		req.Locale = types.Locale(overviewLocale)
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("unsupported locale %q", req.Locale)
	}

	runner, cleanup, err := newRunner(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer cleanup()

	doc, err := runner.Overview(ctx, profileID, req.Locale)
	if err != nil {
		return fmt.Errorf("%s: %w", pipeline.UserMessage(req.Locale, err), err)
	}

	switch overviewFormat {
	case "text":
		for n := 1; n <= doc.PageCount(); n++ {
			lines, err := textPage(doc, n, 110)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
		}
		return nil
	case "pdf":
		pdf, err := newRenderer().PDF(ctx, doc)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("applications-%s-%s.pdf", profileID, req.Locale)
		return writeArtifact(ctx, cmd, overviewOut, name, "application/pdf", pdf)
	default:
		return fmt.Errorf("unsupported format %q (use pdf or text)", overviewFormat)
	}
}
