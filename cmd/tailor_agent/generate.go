package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/application-tailor/internal/artifacts"
	"github.com/jonathan/application-tailor/internal/locale"
	"github.com/jonathan/application-tailor/internal/pipeline"
	"github.com/jonathan/application-tailor/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored CV or cover letter",
	Long: `Tailors the profile to the job posting, lays the result out on A4 pages, stores the document
and writes its PDF.

The PDF goes to --out when given, otherwise to the configured S3 bucket or output directory.
Use --no-render to skip the PDF (no Chrome needed).`,
	RunE: runGenerate,
}

var (
	genProfile   string
	genJob       string
	genKind      string
	genLocale    string
	genStyle     string
	genCompliant bool
	genPhoto     bool
	genOut       string
	genNoRender  bool
)

func init() {
	generateCmd.Flags().StringVarP(&genProfile, "profile", "p", "", "Profile ID (required)")
	generateCmd.Flags().StringVarP(&genJob, "job", "j", "", "Job ID (required for cover letters)")
	generateCmd.Flags().StringVarP(&genKind, "kind", "k", string(types.KindCV), "Document kind: cv or cover_letter")
	generateCmd.Flags().StringVarP(&genLocale, "locale", "l", "", "Document language: de or en")
	generateCmd.Flags().StringVar(&genStyle, "style", "", "Template style: formal or enhanced")
	generateCmd.Flags().BoolVar(&genCompliant, "compliant", false, "Omit photo and personal data not required in applications")
	generateCmd.Flags().BoolVar(&genPhoto, "photo", false, "Include the profile photo")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Write the PDF to this file")
	generateCmd.Flags().BoolVar(&genNoRender, "no-render", false, "Store the document without rendering a PDF")

	_ = generateCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	req, err := buildGenerateRequest(cmd)
	if err != nil {
		return err
	}

	runner, cleanup, err := newRunner(ctx, cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	s, err := runner.Generate(ctx, req, func(event pipeline.ProgressEvent) {
		logger.Info(event.Message, "step", event.Step, "document_id", event.RunID)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", pipeline.UserMessage(req.Template.Locale, err), err)
	}

	out := cmd.OutOrStdout()
	printDocumentSummary(cmd, s)
	if s.Report != nil && len(s.Report.MissingSections) > 0 {
		_, _ = fmt.Fprintln(out, locale.Message(s.Template.Locale, locale.MsgIncomplete,
			strings.Join(s.Report.MissingSections, ", ")))
	}

	if genNoRender {
		return nil
	}
	pdf, err := newRenderer().PDF(ctx, s.Layout)
	if err != nil {
		return fmt.Errorf("%s: %w", pipeline.UserMessage(s.Template.Locale, err), err)
	}
	return writeArtifact(ctx, cmd, genOut, artifacts.DocumentName(s.Kind, s.ID, "pdf"), "application/pdf", pdf)
}

// buildGenerateRequest turns flags and configured template defaults into a request.
func buildGenerateRequest(cmd *cobra.Command) (types.GenerateRequest, error) {
	profileID, err := parseIDFlag("profile", genProfile)
	if err != nil {
		return types.GenerateRequest{}, err
	}

	tpl := settings.Template()
	flags := cmd.Flags()
	if flags.Changed("locale") {
		tpl.Locale = types.Locale(genLocale)
	}
	if flags.Changed("style") {
		tpl.Style = types.Style(genStyle)
	}
	if flags.Changed("compliant") {
		tpl.Compliant = genCompliant
	}
	if flags.Changed("photo") {
		tpl.IncludePhoto = genPhoto
	}

	req := types.GenerateRequest{
		ProfileID: profileID,
		Kind:      types.DocumentKind(genKind),
		Template:  &tpl,
	}
	if genJob != "" {
		jobID, err := parseIDFlag("job", genJob)
		if err != nil {
			return types.GenerateRequest{}, err
		}
		req.JobID = &jobID
	}
	return req, nil
}

func parseIDFlag(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return id, nil
}

func printDocumentSummary(cmd *cobra.Command, s *pipeline.Session) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Document: %s\n", s.ID)
	_, _ = fmt.Fprintf(out, "Kind:     %s\n", s.Kind)
	_, _ = fmt.Fprintf(out, "Template: %s, %s\n", s.Template.Locale, s.Template.Style)
	if s.Layout != nil {
		_, _ = fmt.Fprintf(out, "Pages:    %d\n", s.Layout.PageCount())
	}
	if s.Report != nil {
		if n := s.Report.FallbackCount(); n > 0 {
			_, _ = fmt.Fprintf(out, "Fallbacks: %d field(s) kept their original text\n", n)
		}
	}
}

// writeArtifact writes data to path when set and to the configured sink otherwise.
func writeArtifact(ctx context.Context, cmd *cobra.Command, path, name, contentType string, data []byte) error {
	out := cmd.OutOrStdout()
	if path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		_, _ = fmt.Fprintf(out, "Wrote %s\n", path)
		return nil
	}

	sink, err := newSink(ctx)
	if err != nil {
		return err
	}
	location, err := sink.Put(ctx, name, contentType, data)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Wrote %s\n", location)
	return nil
}
