// Package tailoring rewrites single free-text CV fields toward a target job.
package tailoring

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/application-tailor/internal/keywords"
	"github.com/jonathan/application-tailor/internal/llm"
	"github.com/jonathan/application-tailor/internal/prompts"
	"github.com/jonathan/application-tailor/internal/sections"
	"github.com/jonathan/application-tailor/internal/types"
)

// MaxLengthChars is the length guideline given to the model for one field.
const MaxLengthChars = 600

// FieldKind identifies which profile list a field belongs to.
type FieldKind string

// Field kinds.
const (
	FieldExperience FieldKind = "experience"
	FieldEducation  FieldKind = "education"
)

// Field is one free-text description to tailor.
type Field struct {
	Kind  FieldKind
	Index int
	Text  string
}

// Path returns the field path, e.g. "experience[2].description".
func (f Field) Path() string {
	return fmt.Sprintf("%s[%d].description", f.Kind, f.Index)
}

// Tailor rewrites fields with a generation client.
type Tailor struct {
	Client llm.Client
	Tier   llm.ModelTier
}

// New creates a Tailor that uses the lite tier.
func New(client llm.Client) *Tailor {
	return &Tailor{Client: client, Tier: llm.TierLite}
}

// Result is the detailed outcome of tailoring one field.
type Result struct {
	Text string
	// Called is false when the original was empty and no request was made.
	Called bool
	// Fallback is true when the answer was empty and Text is the unchanged original.
	Fallback bool
}

// Tailor returns the rewritten text for field.
//
// An empty original returns "" without calling the client. An answer that is empty once
// placeholders and bold markers are stripped returns the original unchanged. A client failure is returned to the caller; substituting the original
// is the caller's decision.
func (t *Tailor) Tailor(ctx context.Context, field Field, job *types.Job, kw keywords.Set, loc types.Locale) (string, error) {
	res, err := t.TailorField(ctx, field, job, kw, loc)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// TailorField is Tailor with the outcome details needed for reporting.
func (t *Tailor) TailorField(ctx context.Context, field Field, job *types.Job, kw keywords.Set, loc types.Locale) (Result, error) {
	if strings.TrimSpace(field.Text) == "" {
		return Result{}, nil
	}

	prompt, err := BuildPrompt(field, job, kw, loc)
	if err != nil {
		return Result{}, err
	}

	response, err := t.Client.GenerateContent(ctx, prompt, t.Tier)
	if err != nil {
		return Result{Called: true}, fmt.Errorf("tailoring %s: %w", field.Path(), err)
	}

	if tailored := sections.Clean(llm.CleanTextBlock(response)); tailored != "" {
		return Result{Text: tailored, Called: true}, nil
	}
	return Result{Text: field.Text, Called: true, Fallback: true}, nil
}

// BuildPrompt renders the localized tailoring prompt for field.
func BuildPrompt(field Field, job *types.Job, kw keywords.Set, loc types.Locale) (string, error) {
	var title, company string
	if job != nil {
		title, company = job.Title, job.Company
	}
	terms := "-"
	if kw.Len() > 0 {
		terms = strings.Join(kw.Sorted(), ", ")
	}

	prompt, err := prompts.Render("tailoring.json", "tailor-description", string(loc), map[string]string{
		"FieldKind": string(field.Kind),
		"JobTitle":  title,
		"Company":   company,
		"Keywords":  terms,
		"MaxChars":  strconv.Itoa(MaxLengthChars),
		"Original":  field.Text,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build tailoring prompt: %w", err)
	}
	return prompt, nil
}
