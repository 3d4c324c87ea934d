package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-tailor/internal/artifacts"
	"github.com/jonathan/application-tailor/internal/layout"
	"github.com/jonathan/application-tailor/internal/pipeline"
	"github.com/jonathan/application-tailor/internal/rendering"
	"github.com/jonathan/application-tailor/internal/types"
)

var (
	docID       string
	editFile    string
	renderPage  int
	renderFmt   string
	renderOut   string
	renderScale float64
	renderCols  int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the editable content JSON of a stored document",
	Long:  `Prints the content of a stored document in the format accepted by "edit".`,
	RunE:  runShow,
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Replace the content of a stored document",
	Long: `Validates edited content JSON and replaces the stored content wholesale.
Content with unresolved placeholders or markup is rejected; nothing is cleaned automatically.`,
	RunE: runEdit,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a stored document as PDF, PNG page preview, or text",
	RunE:  runRender,
}

func init() {
	for _, c := range []*cobra.Command{showCmd, editCmd, renderCmd} {
		c.Flags().StringVarP(&docID, "document", "d", "", "Document ID (required)")
		_ = c.MarkFlagRequired("document")
		rootCmd.AddCommand(c)
	}

	editCmd.Flags().StringVarP(&editFile, "file", "f", "", "Path to the content JSON, or - for stdin (required)")
	_ = editCmd.MarkFlagRequired("file")

	renderCmd.Flags().StringVar(&renderFmt, "format", "pdf", "Output format: pdf, png or text")
	renderCmd.Flags().IntVar(&renderPage, "page", 1, "Page to render for png and text")
	renderCmd.Flags().Float64Var(&renderScale, "scale", 0, "PNG device scale factor (defaults to preview_scale)")
	renderCmd.Flags().IntVar(&renderCols, "columns", 100, "Text width in characters")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Write the artifact to this file")
}

func runShow(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	id, err := parseIDFlag("document", docID)
	if err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	doc, err := store.GetDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load document %s: %w", id, err)
	}
	data, err := types.MarshalContent(doc.Content)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runEdit(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	id, err := parseIDFlag("document", docID)
	if err != nil {
		return err
	}
	data, err := readFile(cmd, editFile)
	if err != nil {
		return err
	}

	runner, cleanup, err := newRunner(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer cleanup()

	s, err := runner.ReplaceContent(ctx, id, data)
	if err != nil {
		return fmt.Errorf("%s: %w", pipeline.UserMessage(settings.Template().Locale, err), err)
	}
	printDocumentSummary(cmd, s)
	return nil
}

func runRender(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	id, err := parseIDFlag("document", docID)
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

	switch renderFmt {
	case "text":
		lines, err := textPage(s.Layout, renderPage, renderCols)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
		return nil

	case "png":
		scale := renderScale
		if scale == 0 {
			scale = settings.PreviewScale
		}
		png, err := newRenderer().PreviewPNG(ctx, s.Layout, renderPage, scale)
		if err != nil {
			return err
		}
		return writeArtifact(ctx, cmd, renderOut, artifacts.PageName(s.ID, renderPage), "image/png", png)

	case "pdf":
		pdf, err := newRenderer().PDF(ctx, s.Layout)
		if err != nil {
			return err
		}
		return writeArtifact(ctx, cmd, renderOut, artifacts.DocumentName(s.Kind, s.ID, "pdf"), "application/pdf", pdf)

	default:
		return fmt.Errorf("unsupported format %q (use pdf, png or text)", renderFmt)
	}
}

// textPage draws page n of doc for the terminal, trimming trailing blank lines.
func textPage(doc *layout.Document, n, cols int) ([]string, error) {
	if n < 1 || n > doc.PageCount() {
		return nil, fmt.Errorf("page %d out of range (document has %d)", n, doc.PageCount())
	}
	lines := rendering.RenderText(doc, n, cols)
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
