package assembly

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/application-tailor/internal/keywords"
	"github.com/jonathan/application-tailor/internal/llm"
	"github.com/jonathan/application-tailor/internal/locale"
	"github.com/jonathan/application-tailor/internal/parsing"
	"github.com/jonathan/application-tailor/internal/prompts"
	"github.com/jonathan/application-tailor/internal/ranking"
	"github.com/jonathan/application-tailor/internal/sections"
	"github.com/jonathan/application-tailor/internal/types"
)

const (
	maxHighlights          = 3
	maxHighlightDescRunes  = 240
	coverLetterTopSkills   = 5
	coverLetterPromptsFile = "cover_letter.json"
)

// BuildCoverLetter generates the letter with a single call and parses its tagged sections.
//
// A generation failure aborts the build. Missing sections are reported and logged; the letter is
// still returned. The date is always the locale-formatted current date, whatever the model wrote.
// Missing formulaic sections (sender, recipient, subject, salutation, closing) are filled from
// profile, job and locale defaults.
func (a *Assembler) BuildCoverLetter(ctx context.Context, in Input) (*types.CoverLetterContent, *Report, error) {
	if in.Job == nil {
		return nil, nil, &types.InputError{Field: "job", Message: "a cover letter needs a selected job"}
	}

	kw := keywords.Extract(in.Job)
	report := newReport(kw)
	report.YearsOfExperience = YearsOfExperience(in.Profile.Experience, a.now())
	ranked := ranking.RankSkills(in.Profile.Skills, kw)

	prompt, err := BuildCoverLetterPrompt(in, kw, ranked)
	if err != nil {
		return nil, report, err
	}

	response, err := a.client.GenerateContent(ctx, prompt, a.letterTier)
	if err != nil {
		return nil, report, fmt.Errorf("cover letter generation: %w", err)
	}

	parsed := sections.Parse(llm.CleanTextBlock(response), sections.CoverLetterTags)
	if !parsed.Complete() {
		report.MissingSections = parsed.Missing()
		a.logger.WarnContext(ctx, "cover letter sections missing", "missing", strings.Join(report.MissingSections, ","))
	}

	loc := in.Template.Locale
	letter := &types.CoverLetterContent{
		Sender:       parsed.Text(sections.TagSender),
		Recipient:    parsed.Text(sections.TagRecipient),
		Subject:      parsed.Text(sections.TagSubject),
		Salutation:   parsed.Text(sections.TagSalutation),
		Introduction: parsed.Text(sections.TagIntroduction),
		MainBody:     parsed.Text(sections.TagMainBody),
		Closing:      parsed.Text(sections.TagClosing),
	}
	letter.Date = locale.FormatDate(loc, a.now())

	if letter.Sender == "" {
		letter.Sender = SenderBlock(in.Profile.Personal)
	}
	if letter.Recipient == "" {
		letter.Recipient = RecipientBlock(in.Job)
	}
	if letter.Subject == "" {
		letter.Subject = locale.Message(loc, locale.LabelSubject, in.Job.Title)
	}
	if letter.Salutation == "" {
		letter.Salutation = locale.Label(loc, locale.LabelSalutation)
	}
	if letter.Closing == "" {
		letter.Closing = strings.TrimSpace(locale.Label(loc, locale.LabelClosing) + "\n" + in.Profile.Personal.FullName)
	}

	a.logger.InfoContext(ctx, "cover letter assembled",
		"company", in.Job.Company,
		"complete", parsed.Complete(),
		"keywords", len(report.Keywords))
	return letter, report, nil
}

// BuildCoverLetterPrompt renders the localized generation prompt.
func BuildCoverLetterPrompt(in Input, kw keywords.Set, ranked []types.Skill) (string, error) {
	job := in.Job
	terms := strings.Join(kw.Sorted(), ", ")
	if terms == "" {
		terms = "-"
	}

	prompt, err := prompts.Render(coverLetterPromptsFile, "cover-letter", string(in.Template.Locale), map[string]string{
		"SenderBlock":    SenderBlock(in.Profile.Personal),
		"Headline":       orDash(in.Profile.Personal.Headline),
		"Highlights":     profileHighlights(in.Profile),
		"Skills":         orDash(strings.Join(ranking.TopSkillNames(ranked, coverLetterTopSkills), ", ")),
		"JobTitle":       job.Title,
		"Company":        job.Company,
		"ContactPerson":  orDash(job.ContactPerson),
		"CompanyAddress": orDash(addressBlock(job.Address)),
		"Keywords":       terms,
		"Requirements":   orDash(parsing.RequirementsExcerpt(job.Notes)),
		"Tags":           strings.Join(sections.CoverLetterTags, "\n"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to build cover letter prompt: %w", err)
	}
	return prompt, nil
}

// SenderBlock formats the applicant's name and contact details as address lines.
func SenderBlock(p types.PersonalDetails) string {
	return joinLines(p.FullName, p.Address.Street, p.Address.CityLine(), p.Phone, p.Email)
}

// RecipientBlock formats the company, contact person and address as address lines.
func RecipientBlock(job *types.Job) string {
	if job == nil {
		return ""
	}
	return joinLines(job.Company, job.ContactPerson, job.Address.Street, job.Address.CityLine())
}

func addressBlock(a types.Address) string {
	return joinLines(a.Street, a.CityLine())
}

// profileHighlights lists the most recent experience entries with a short description.
func profileHighlights(p types.Profile) string {
	entries := make([]types.Experience, len(p.Experience))
	copy(entries, p.Experience)
	sortExperienceByStartDesc(entries)

	var lines []string
	for i, e := range entries {
		if i == maxHighlights {
			break
		}
		line := "- " + e.Title
		if e.Company != "" {
			line += ", " + e.Company
		}
		if desc := strings.TrimSpace(e.Description); desc != "" {
			line += ": " + truncate(strings.ReplaceAll(desc, "\n", " "), maxHighlightDescRunes)
		}
		lines = append(lines, line)
	}
	if len(p.Education) > 0 {
		edu := p.Education[0]
		lines = append(lines, "- "+strings.TrimSpace(edu.Degree+", "+edu.Institution))
	}
	if len(lines) == 0 {
		return "-"
	}
	return strings.Join(lines, "\n")
}

func joinLines(parts ...string) string {
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n]))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
