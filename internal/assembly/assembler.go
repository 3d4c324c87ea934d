// Package assembly combines profile, job, keywords and generated text into canonical document content.
package assembly

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonathan/application-tailor/internal/keywords"
	"github.com/jonathan/application-tailor/internal/llm"
	"github.com/jonathan/application-tailor/internal/tailoring"
	"github.com/jonathan/application-tailor/internal/types"
)

// Input is a read-only snapshot of everything one generation run needs.
type Input struct {
	Profile  types.Profile
	Job      *types.Job
	Template types.Template
}

// Outcome describes what happened to one tailored field.
type Outcome string

// Field outcomes.
const (
	OutcomeTailored      Outcome = "tailored"
	OutcomeSkippedEmpty  Outcome = "skipped_empty"
	OutcomeFallbackEmpty Outcome = "fallback_empty_result"
	OutcomeFallbackError Outcome = "fallback_error"
)

// FieldReport records the outcome for one tailored field.
type FieldReport struct {
	Path    string  `json:"path"`
	Outcome Outcome `json:"outcome"`
	Error   string  `json:"error,omitempty"`
}

// Report collects diagnostics of one assembly run.
type Report struct {
	Keywords           []string      `json:"keywords"`
	Fields             []FieldReport `json:"fields,omitempty"`
	MissingSections    []string      `json:"missing_sections,omitempty"`
	YearsOfExperience  int           `json:"years_of_experience"`
	SummarySynthesized bool          `json:"summary_synthesized,omitempty"`
}

// FallbackCount returns how many fields kept their original text because of an error.
func (r *Report) FallbackCount() int {
	n := 0
	for _, f := range r.Fields {
		if f.Outcome == OutcomeFallbackError {
			n++
		}
	}
	return n
}

// Assembler builds canonical content for both document kinds.
type Assembler struct {
	client      llm.Client
	tailor      *tailoring.Tailor
	letterTier  llm.ModelTier
	concurrency int
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithConcurrency limits how many fields are tailored at once. Zero means unlimited.
func WithConcurrency(n int) Option {
	return func(a *Assembler) { a.concurrency = n }
}

// WithClock overrides the clock used for dates and ongoing entries.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) { a.logger = logger }
}

// WithTiers sets the model tiers for field tailoring and cover letter generation.
func WithTiers(field, letter llm.ModelTier) Option {
	return func(a *Assembler) {
		a.tailor.Tier = field
		a.letterTier = letter
	}
}

// New creates an Assembler around a generation client.
func New(client llm.Client, opts ...Option) *Assembler {
	a := &Assembler{
		client:     client,
		tailor:     tailoring.New(client),
		letterTier: llm.TierAdvanced,
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build dispatches on kind.
func (a *Assembler) Build(ctx context.Context, kind types.DocumentKind, in Input) (types.Content, *Report, error) {
	switch kind {
	case types.KindCV:
		cv, report, err := a.BuildCV(ctx, in)
		if err != nil {
			return nil, report, err
		}
		return cv, report, nil
	case types.KindCoverLetter:
		letter, report, err := a.BuildCoverLetter(ctx, in)
		if err != nil {
			return nil, report, err
		}
		return letter, report, nil
	default:
		return nil, nil, &types.InputError{Field: "kind", Message: "unknown document kind " + string(kind)}
	}
}

func newReport(kw keywords.Set) *Report {
	return &Report{Keywords: kw.Sorted()}
}
