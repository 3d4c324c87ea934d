// Package pipeline orchestrates document generation, editing and re-rendering on top of the store.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jonathan/application-tailor/internal/assembly"
	"github.com/jonathan/application-tailor/internal/db"
	"github.com/jonathan/application-tailor/internal/keywords"
	"github.com/jonathan/application-tailor/internal/layout"
	"github.com/jonathan/application-tailor/internal/observability"
	"github.com/jonathan/application-tailor/internal/parsing"
	"github.com/jonathan/application-tailor/internal/ranking"
	"github.com/jonathan/application-tailor/internal/schemas"
	"github.com/jonathan/application-tailor/internal/types"
)

// Pipeline steps reported through ProgressEvent.Step.
const (
	StepLoadInput = "load_input"
	StepKeywords  = "keywords"
	StepAssemble  = "assemble_content"
	StepLayout    = "layout"
	StepStore     = "store_document"
)

// Step categories reported through ProgressEvent.Category.
const (
	CategoryInput     = "input"
	CategoryTailoring = "tailoring"
	CategoryRendering = "rendering"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Runner wires the store, the assembler and the layout engine together.
type Runner struct {
	Store     db.Store
	Assembler *assembly.Assembler
	Engine    *layout.Engine
	// Printer prints verbose summaries when set.
	Printer *observability.Printer
	Logger  *slog.Logger
}

// NewRunner creates a Runner with a default layout engine and logger.
func NewRunner(store db.Store, assembler *assembly.Assembler) *Runner {
	return &Runner{
		Store:     store,
		Assembler: assembler,
		Engine:    layout.NewEngine(),
		Logger:    slog.Default(),
	}
}

// emitProgress calls the progress callback if configured
func emitProgress(onProgress ProgressCallback, s *Session, step, category, message string, content any) {
	if onProgress != nil {
		onProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    s.ID.String(),
			Content:  content,
		})
	}
}

// Generate builds, lays out and stores a new document.
//
// Missing or malformed inputs are refused with *types.InputError before any generation call.
// A layout failure aborts the run and nothing is stored.
func (r *Runner) Generate(ctx context.Context, req types.GenerateRequest, onProgress ProgressCallback) (*Session, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	s := &Session{
		ID:        uuid.New(),
		Kind:      req.Kind,
		ProfileID: req.ProfileID,
		JobID:     req.JobID,
		Template:  *req.Template,
	}
	if err := r.loadInput(ctx, s); err != nil {
		return nil, err
	}
	emitProgress(onProgress, s, StepLoadInput, CategoryInput,
		fmt.Sprintf("Loaded profile of %s", s.Profile.Personal.FullName), nil)

	kw := keywords.Extract(s.Job)
	emitProgress(onProgress, s, StepKeywords, CategoryInput,
		fmt.Sprintf("Found %d keywords in the job posting", kw.Len()), kw.Sorted())
	if r.Printer != nil {
		r.Printer.PrintJob(s.Job, kw)
		r.Printer.PrintRankedSkills(ranking.RankSkills(s.Profile.Skills, kw), kw)
	}

	content, report, err := r.Assembler.Build(ctx, s.Kind, assembly.Input{
		Profile:  *s.Profile,
		Job:      s.Job,
		Template: s.Template,
	})
	s.Report = report
	if err != nil {
		return nil, err
	}
	s.Content = content
	if r.Printer != nil {
		r.Printer.PrintReport(report)
	}
	emitProgress(onProgress, s, StepAssemble, CategoryTailoring, assembleMessage(report), report)

	if err := r.layout(s); err != nil {
		return nil, err
	}
	emitProgress(onProgress, s, StepLayout, CategoryRendering,
		fmt.Sprintf("Laid out %d page(s)", s.Layout.PageCount()), nil)

	doc := s.Document()
	if err := r.Store.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}
	s.CreatedAt, s.UpdatedAt = doc.CreatedAt, doc.UpdatedAt
	emitProgress(onProgress, s, StepStore, CategoryRendering, "Stored document", nil)

	r.Logger.InfoContext(ctx, "document generated",
		"document_id", s.ID, "kind", s.Kind, "pages", s.Layout.PageCount(), "fallbacks", report.FallbackCount())
	return s, nil
}

// Render loads a stored document and lays it out again.
func (r *Runner) Render(ctx context.Context, id uuid.UUID) (*Session, error) {
	d, err := r.Store.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	s := sessionFromDocument(d)
	if err := r.layout(s); err != nil {
		return nil, err
	}
	return s, nil
}

// ReplaceContent validates edited content JSON and replaces the stored content wholesale.
// Content that fails validation or cannot be laid out leaves the stored document untouched.
func (r *Runner) ReplaceContent(ctx context.Context, id uuid.UUID, data []byte) (*Session, error) {
	content, err := schemas.ValidateContentJSON(data)
	if err != nil {
		return nil, err
	}

	stored, err := r.Store.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored.Kind() != content.Kind() {
		return nil, &types.InputError{
			Field:   "kind",
			Message: fmt.Sprintf("document holds %s content, got %s", stored.Kind(), content.Kind()),
		}
	}

	s := sessionFromDocument(stored)
	s.Content = content
	if err := r.layout(s); err != nil {
		return nil, err
	}

	updated, err := r.Store.ReplaceDocumentContent(ctx, id, content)
	if err != nil {
		return nil, err
	}
	s.UpdatedAt = updated.UpdatedAt
	r.Logger.InfoContext(ctx, "document content replaced", "document_id", id, "kind", s.Kind)
	return s, nil
}

// Overview lays out the applications list of a profile.
func (r *Runner) Overview(ctx context.Context, profileID uuid.UUID, loc types.Locale) (*layout.Document, error) {
	if loc == "" {
		loc = types.LocaleDE
	}
	jobs, err := r.Store.ListApplications(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return r.Engine.LayoutOverview(layout.RowsFromJobs(jobs), loc)
}

func (r *Runner) layout(s *Session) error {
	doc, err := r.Engine.Layout(s.Content, s.Template)
	if err != nil {
		return err
	}
	s.Layout = doc
	if r.Printer != nil {
		r.Printer.PrintLayout(doc)
	}
	return nil
}

// loadInput reads profile and job into the session and reduces HTML job notes to text.
func (r *Runner) loadInput(ctx context.Context, s *Session) error {
	profile, err := r.Store.GetProfile(ctx, s.ProfileID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return &types.InputError{Field: "profile_id", Message: "profile not found"}
		}
		return err
	}
	s.Profile = profile

	if s.JobID == nil {
		return nil
	}
	job, err := r.Store.GetJob(ctx, *s.JobID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return &types.InputError{Field: "job_id", Message: "job not found"}
		}
		return err
	}
	if parsing.LooksLikeHTML(job.Notes) {
		text, err := parsing.NotesText(job.Notes)
		if err != nil {
			r.Logger.WarnContext(ctx, "keeping raw job notes", "job_id", job.ID, "error", err)
		} else {
			job.Notes = text
		}
	}
	s.Job = job
	return nil
}

// checkRequest refuses incomplete requests before anything is loaded.
func checkRequest(req types.GenerateRequest) error {
	if req.ProfileID == uuid.Nil {
		return &types.InputError{Field: "profile_id", Message: "a profile is required"}
	}
	if req.Template == nil {
		return &types.InputError{Field: "template", Message: "a template is required"}
	}
	switch req.Kind {
	case types.KindCV:
	case types.KindCoverLetter:
		if req.JobID == nil {
			return &types.InputError{Field: "job_id", Message: "a cover letter needs a selected job"}
		}
	default:
		return &types.InputError{Field: "kind", Message: fmt.Sprintf("unknown document kind %q", req.Kind)}
	}
	if err := req.Template.Validate(); err != nil {
		return &types.InputError{Field: "template", Message: err.Error()}
	}
	return nil
}

func assembleMessage(report *assembly.Report) string {
	if report == nil {
		return "Assembled content"
	}
	if n := len(report.MissingSections); n > 0 {
		return fmt.Sprintf("Assembled content (%d section(s) missing from the generated letter)", n)
	}
	if n := report.FallbackCount(); n > 0 {
		return fmt.Sprintf("Assembled content (%d field(s) kept their original text)", n)
	}
	return "Assembled content"
}
