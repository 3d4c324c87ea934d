package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-tailor/internal/pipeline"
	"github.com/jonathan/application-tailor/internal/preview"
	"github.com/jonathan/application-tailor/internal/types"
)

var previewDoc string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Page through a stored document in the terminal",
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewDoc, "document", "d", "", "Document ID (required)")
	_ = previewCmd.MarkFlagRequired("document")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	id, err := parseIDFlag("document", previewDoc)
	if err != nil {
		return err
	}

	runner, cleanup, err := newRunner(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer cleanup()

	s, err := runner.Render(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", pipeline.UserMessage(settings.Template().Locale, err), err)
	}
	return preview.Run(ctx, s.Layout, previewTitle(s), nil, nil)
}

func previewTitle(s *pipeline.Session) string {
	kind := "CV"
	if s.Kind == types.KindCoverLetter {
		kind = "Cover letter"
	}
	return fmt.Sprintf("%s %s", kind, s.ID)
}
