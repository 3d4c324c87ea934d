package schemas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/application-tailor/internal/types"
)

func validCV() *types.CVContent {
	return &types.CVContent{
		Personal: types.PersonalDetails{FullName: "Jane Doe", Email: "jane@example.com"},
		Summary:  "Frontend developer.",
		Experience: []types.Experience{
			{Title: "Frontend Developer", Company: "Pixel AG", Start: types.NewYearMonth(2021, time.March), Ongoing: true},
		},
		Skills: []types.Skill{{Name: "React", Level: "advanced"}},
	}
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	fields := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestValidateContent_Valid(t *testing.T) {
	assert.NoError(t, ValidateContent(validCV()))
	assert.NoError(t, ValidateContent(&types.CoverLetterContent{Sender: "Jane Doe", MainBody: "Hello."}))
}

func TestValidateContent_Nil(t *testing.T) {
	assert.Equal(t, []string{"(root)"}, fieldsOf(t, ValidateContent(nil)))
}

func TestValidateContent_EmptyTitle(t *testing.T) {
	cv := validCV()
	cv.Experience[0].Title = ""

	assert.Contains(t, fieldsOf(t, ValidateContent(cv)), "experience[0].title")
}

func TestValidateContent_RejectsArtifacts(t *testing.T) {
	tests := []struct {
		name    string
		content types.Content
		field   string
	}{
		{
			name:    "placeholder in summary",
			content: func() types.Content { c := validCV(); c.Summary = "I bring [X] years."; return c }(),
			field:   "summary",
		},
		{
			name: "bold in description",
			content: func() types.Content {
				c := validCV()
				c.Experience[0].Description = "Shipped **fast**."
				return c
			}(),
			field: "experience[0].description",
		},
		{
			name:    "placeholder in letter body",
			content: &types.CoverLetterContent{Sender: "Jane", MainBody: "Dear [Name],"},
			field:   "main_body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{tt.field}, fieldsOf(t, ValidateContent(tt.content)))
		})
	}
}

func TestValidateContentJSON(t *testing.T) {
	t.Run("valid cover letter", func(t *testing.T) {
		c, err := ValidateContentJSON([]byte(`{"kind":"cover_letter","cover_letter":{
			"sender":"Jane","recipient":"Acme GmbH","date":"18.10.2026","subject":"Bewerbung",
			"salutation":"Hallo,","introduction":"","main_body":"Text.","closing":"Grüße"}}`))
		require.NoError(t, err)
		letter, ok := c.(*types.CoverLetterContent)
		require.True(t, ok)
		assert.Equal(t, "Acme GmbH", letter.Recipient)
	})

	t.Run("valid cv", func(t *testing.T) {
		c, err := ValidateContentJSON([]byte(`{"kind":"cv","cv":{
			"personal":{"full_name":"Jane Doe","email":""},
			"experience":[{"title":"Dev","company":"Acme","start":"2020-01","end":"2022-06"}],
			"education":null,"skills":[]}}`))
		require.NoError(t, err)
		assert.Equal(t, types.KindCV, c.Kind())
	})

	t.Run("not json", func(t *testing.T) {
		_, err := ValidateContentJSON([]byte(`{kind`))
		assert.Equal(t, []string{"(root)"}, fieldsOf(t, err))
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := ValidateContentJSON([]byte(`{"kind":"resume","cv":{"personal":{"full_name":"x"}}}`))
		assert.Error(t, err)
	})

	t.Run("kind without payload", func(t *testing.T) {
		_, err := ValidateContentJSON([]byte(`{"kind":"cv"}`))
		assert.Error(t, err)
	})

	t.Run("malformed month", func(t *testing.T) {
		_, err := ValidateContentJSON([]byte(`{"kind":"cv","cv":{
			"personal":{"full_name":"Jane Doe"},
			"experience":[{"title":"Dev","company":"Acme","start":"2020-13"}]}}`))
		assert.Contains(t, fieldsOf(t, err), "experience[0].start")
	})

	t.Run("artifact after decoding", func(t *testing.T) {
		_, err := ValidateContentJSON([]byte(`{"kind":"cover_letter","cover_letter":{
			"sender":"Jane","recipient":"","date":"","subject":"__Bewerbung__",
			"salutation":"","introduction":"","main_body":"","closing":""}}`))
		assert.Equal(t, []string{"subject"}, fieldsOf(t, err))
	})
}

func TestFieldPath(t *testing.T) {
	tests := map[string]string{
		"":                            "(root)",
		"(root)":                      "(root)",
		"kind":                        "kind",
		"cv.experience.0.title":       "experience[0].title",
		"cv.skills.12.name":           "skills[12].name",
		"cover_letter.main_body":      "main_body",
		"cv.personal.address.city":    "personal.address.city",
		"cv.interests.3":              "interests[3]",
	}
	for in, want := range tests {
		assert.Equal(t, want, fieldPath(in), in)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "summary", Message: "bad"}}}
	assert.Contains(t, err.Error(), "1. summary: bad")
}
