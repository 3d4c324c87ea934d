package assembly

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/application-tailor/internal/keywords"
	"github.com/jonathan/application-tailor/internal/ranking"
	"github.com/jonathan/application-tailor/internal/tailoring"
	"github.com/jonathan/application-tailor/internal/types"
)

// fieldResult is the settled outcome of one tailoring task.
type fieldResult struct {
	text    string
	outcome Outcome
	err     error
}

// BuildCV ranks skills, tailors every experience and education description concurrently,
// orders entries by start date (newest first) and synthesizes a summary when the profile has none.
//
// A failed field keeps its original text; only cancellation of ctx aborts the build.
func (a *Assembler) BuildCV(ctx context.Context, in Input) (*types.CVContent, *Report, error) {
	kw := keywords.Extract(in.Job)
	report := newReport(kw)
	profile := in.Profile

	experience := make([]types.Experience, len(profile.Experience))
	copy(experience, profile.Experience)
	education := make([]types.Education, len(profile.Education))
	copy(education, profile.Education)

	fields := make([]tailoring.Field, 0, len(experience)+len(education))
	for i, e := range experience {
		fields = append(fields, tailoring.Field{Kind: tailoring.FieldExperience, Index: i, Text: e.Description})
	}
	for i, e := range education {
		fields = append(fields, tailoring.Field{Kind: tailoring.FieldEducation, Index: i, Text: e.Description})
	}

	results, err := a.tailorAll(ctx, fields, in.Job, kw, in.Template.Locale)
	if err != nil {
		return nil, report, err
	}

	for i, f := range fields {
		res := results[i]
		fr := FieldReport{Path: f.Path(), Outcome: res.outcome}
		if res.err != nil {
			fr.Error = res.err.Error()
		}
		report.Fields = append(report.Fields, fr)

		switch f.Kind {
		case tailoring.FieldExperience:
			experience[f.Index].Description = res.text
		case tailoring.FieldEducation:
			education[f.Index].Description = res.text
		}
	}

	sortExperienceByStartDesc(experience)
	sortEducationByStartDesc(education)

	ranked := ranking.RankSkills(profile.Skills, kw)
	report.YearsOfExperience = YearsOfExperience(profile.Experience, a.now())

	summary := strings.TrimSpace(profile.Summary)
	if summary == "" {
		summary = SynthesizeSummary(in.Template.Locale, report.YearsOfExperience, ranking.TopSkillNames(ranked, 3), in.Job)
		report.SummarySynthesized = true
	}

	cv := &types.CVContent{
		Personal:   profile.Personal,
		Summary:    summary,
		Experience: experience,
		Education:  education,
		Skills:     ranked,
		Languages:  append([]types.Language(nil), profile.Languages...),
		Interests:  append([]string(nil), profile.Interests...),
	}

	a.logger.InfoContext(ctx, "cv assembled",
		"experience", len(experience),
		"education", len(education),
		"keywords", len(report.Keywords),
		"fallbacks", report.FallbackCount())
	return cv, report, nil
}

// tailorAll fans out one task per field and waits for all of them to settle.
// Each task records its own result; a task error is returned only when ctx itself was
// cancelled, which stops the whole group.
func (a *Assembler) tailorAll(ctx context.Context, fields []tailoring.Field, job *types.Job, kw keywords.Set, loc types.Locale) ([]fieldResult, error) {
	results := make([]fieldResult, len(fields))

	g, gCtx := errgroup.WithContext(ctx)
	if a.concurrency > 0 {
		g.SetLimit(a.concurrency)
	}

	for i, field := range fields {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			res, err := a.tailor.TailorField(gCtx, field, job, kw, loc)
			switch {
			case err != nil:
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				a.logger.WarnContext(ctx, "tailoring failed, keeping original", "field", field.Path(), "error", err)
				results[i] = fieldResult{text: field.Text, outcome: OutcomeFallbackError, err: err}
			case !res.Called:
				results[i] = fieldResult{text: field.Text, outcome: OutcomeSkippedEmpty}
			case res.Fallback:
				results[i] = fieldResult{text: field.Text, outcome: OutcomeFallbackEmpty}
			default:
				results[i] = fieldResult{text: res.Text, outcome: OutcomeTailored}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
