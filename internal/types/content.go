package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DocumentKind distinguishes the two generated document types.
type DocumentKind string

// Document kinds.
const (
	KindCV          DocumentKind = "cv"
	KindCoverLetter DocumentKind = "cover_letter"
)

// Content is the canonical, render-ready content of a document.
// It is implemented only by *CVContent and *CoverLetterContent.
type Content interface {
	Kind() DocumentKind
	// Clone returns a deep copy that can be edited without touching the original.
	Clone() Content
	// TextFields lists every free-text value with its field path.
	TextFields() []TextField
	sealed()
}

// TextField is a single free-text value addressed by a field path such as "experience[0].description".
type TextField struct {
	Path  string
	Value string
}

// CVContent is the canonical content of a CV.
type CVContent struct {
	Personal   PersonalDetails `json:"personal"`
	Summary    string          `json:"summary,omitempty"`
	Experience []Experience    `json:"experience"`
	Education  []Education     `json:"education"`
	Skills     []Skill         `json:"skills"`
	Languages  []Language      `json:"languages,omitempty"`
	Interests  []string        `json:"interests,omitempty"`
}

// Kind implements Content.
func (*CVContent) Kind() DocumentKind { return KindCV }

func (*CVContent) sealed() {}

// Clone implements Content.
func (c *CVContent) Clone() Content {
	out := *c
	out.Experience = make([]Experience, len(c.Experience))
	for i, e := range c.Experience {
		e.End = cloneYearMonth(e.End)
		out.Experience[i] = e
	}
	out.Education = make([]Education, len(c.Education))
	for i, e := range c.Education {
		e.End = cloneYearMonth(e.End)
		out.Education[i] = e
	}
	out.Skills = append([]Skill(nil), c.Skills...)
	out.Languages = append([]Language(nil), c.Languages...)
	out.Interests = append([]string(nil), c.Interests...)
	return &out
}

// TextFields implements Content.
func (c *CVContent) TextFields() []TextField {
	fields := []TextField{
		{Path: "personal.full_name", Value: c.Personal.FullName},
		{Path: "personal.headline", Value: c.Personal.Headline},
		{Path: "summary", Value: c.Summary},
	}
	for i, e := range c.Experience {
		fields = append(fields,
			TextField{Path: fmt.Sprintf("experience[%d].title", i), Value: e.Title},
			TextField{Path: fmt.Sprintf("experience[%d].company", i), Value: e.Company},
			TextField{Path: fmt.Sprintf("experience[%d].description", i), Value: e.Description},
		)
	}
	for i, e := range c.Education {
		fields = append(fields,
			TextField{Path: fmt.Sprintf("education[%d].degree", i), Value: e.Degree},
			TextField{Path: fmt.Sprintf("education[%d].institution", i), Value: e.Institution},
			TextField{Path: fmt.Sprintf("education[%d].description", i), Value: e.Description},
		)
	}
	for i, s := range c.Skills {
		fields = append(fields, TextField{Path: fmt.Sprintf("skills[%d].name", i), Value: s.Name})
	}
	for i, l := range c.Languages {
		fields = append(fields, TextField{Path: fmt.Sprintf("languages[%d].name", i), Value: l.Name})
	}
	for i, v := range c.Interests {
		fields = append(fields, TextField{Path: fmt.Sprintf("interests[%d]", i), Value: v})
	}
	return fields
}

// CoverLetterContent is the canonical content of a cover letter: eight named sections.
type CoverLetterContent struct {
	Sender       string `json:"sender"`
	Recipient    string `json:"recipient"`
	Date         string `json:"date"`
	Subject      string `json:"subject"`
	Salutation   string `json:"salutation"`
	Introduction string `json:"introduction"`
	MainBody     string `json:"main_body"`
	Closing      string `json:"closing"`
}

// Kind implements Content.
func (*CoverLetterContent) Kind() DocumentKind { return KindCoverLetter }

func (*CoverLetterContent) sealed() {}

// Clone implements Content.
func (c *CoverLetterContent) Clone() Content {
	out := *c
	return &out
}

// TextFields implements Content.
func (c *CoverLetterContent) TextFields() []TextField {
	return []TextField{
		{Path: "sender", Value: c.Sender},
		{Path: "recipient", Value: c.Recipient},
		{Path: "date", Value: c.Date},
		{Path: "subject", Value: c.Subject},
		{Path: "salutation", Value: c.Salutation},
		{Path: "introduction", Value: c.Introduction},
		{Path: "main_body", Value: c.MainBody},
		{Path: "closing", Value: c.Closing},
	}
}

func cloneYearMonth(ym *YearMonth) *YearMonth {
	if ym == nil {
		return nil
	}
	v := *ym
	return &v
}

// ContentEnvelope is the JSON form of Content: a kind discriminator plus exactly one payload.
type ContentEnvelope struct {
	Kind        DocumentKind        `json:"kind"`
	CV          *CVContent          `json:"cv,omitempty"`
	CoverLetter *CoverLetterContent `json:"cover_letter,omitempty"`
}

// Wrap builds the envelope for c.
func Wrap(c Content) ContentEnvelope {
	switch v := c.(type) {
	case *CVContent:
		return ContentEnvelope{Kind: KindCV, CV: v}
	case *CoverLetterContent:
		return ContentEnvelope{Kind: KindCoverLetter, CoverLetter: v}
	default:
		return ContentEnvelope{}
	}
}

// Content returns the payload matching the envelope's kind.
func (e ContentEnvelope) Content() (Content, error) {
	switch e.Kind {
	case KindCV:
		if e.CV == nil {
			return nil, &InputError{Field: "cv", Message: "payload missing for kind cv"}
		}
		return e.CV, nil
	case KindCoverLetter:
		if e.CoverLetter == nil {
			return nil, &InputError{Field: "cover_letter", Message: "payload missing for kind cover_letter"}
		}
		return e.CoverLetter, nil
	default:
		return nil, &InputError{Field: "kind", Message: fmt.Sprintf("unknown document kind %q", e.Kind)}
	}
}

// MarshalContent encodes c as a ContentEnvelope.
func MarshalContent(c Content) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("content is nil")
	}
	return json.Marshal(Wrap(c))
}

// UnmarshalContent decodes a ContentEnvelope.
func UnmarshalContent(data []byte) (Content, error) {
	var env ContentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	return env.Content()
}

// Document is a stored, generated document.
type Document struct {
	ID        uuid.UUID  `json:"id"`
	ProfileID uuid.UUID  `json:"profile_id"`
	JobID     *uuid.UUID `json:"job_id,omitempty"`
	Template  Template   `json:"template"`
	Content   Content    `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type documentJSON struct {
	ID        uuid.UUID       `json:"id"`
	ProfileID uuid.UUID       `json:"profile_id"`
	JobID     *uuid.UUID      `json:"job_id,omitempty"`
	Template  Template        `json:"template"`
	Content   ContentEnvelope `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Kind returns the kind of the stored content.
func (d *Document) Kind() DocumentKind {
	if d.Content == nil {
		return ""
	}
	return d.Content.Kind()
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(documentJSON{
		ID:        d.ID,
		ProfileID: d.ProfileID,
		JobID:     d.JobID,
		Template:  d.Template,
		Content:   Wrap(d.Content),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	content, err := raw.Content.Content()
	if err != nil {
		return err
	}
	*d = Document{
		ID:        raw.ID,
		ProfileID: raw.ProfileID,
		JobID:     raw.JobID,
		Template:  raw.Template,
		Content:   content,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
	}
	return nil
}
