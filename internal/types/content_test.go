package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCV() *CVContent {
	end := NewYearMonth(2022, time.March)
	return &CVContent{
		Personal: PersonalDetails{FullName: "Jane Doe", Email: "jane@example.com"},
		Summary:  "Engineer.",
		Experience: []Experience{
			{Title: "Frontend Developer", Company: "Acme", Start: NewYearMonth(2020, time.January), End: &end, Description: "Built UI components."},
		},
		Education: []Education{
			{Degree: "B.Sc.", Institution: "TU Berlin", Start: NewYearMonth(2015, time.October)},
		},
		Skills:    []Skill{{Name: "React", Level: "expert"}},
		Languages: []Language{{Name: "German", Level: "native"}},
		Interests: []string{"Climbing"},
	}
}

func TestCVContent_CloneIsDeep(t *testing.T) {
	original := sampleCV()
	clone := original.Clone().(*CVContent)

	clone.Experience[0].Description = "Changed."
	*clone.Experience[0].End = NewYearMonth(2030, time.January)
	clone.Skills[0].Name = "Vue"
	clone.Interests[0] = "Chess"

	assert.Equal(t, "Built UI components.", original.Experience[0].Description)
	assert.Equal(t, NewYearMonth(2022, time.March), *original.Experience[0].End)
	assert.Equal(t, "React", original.Skills[0].Name)
	assert.Equal(t, "Climbing", original.Interests[0])
}

func TestContentEnvelope_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		content Content
	}{
		{name: "cv", content: sampleCV()},
		{name: "cover letter", content: &CoverLetterContent{Sender: "Jane", Subject: "Application", MainBody: "Body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalContent(tt.content)
			require.NoError(t, err)

			decoded, err := UnmarshalContent(data)
			require.NoError(t, err)
			assert.Equal(t, tt.content.Kind(), decoded.Kind())
			assert.Equal(t, tt.content, decoded)
		})
	}
}

func TestUnmarshalContent_Errors(t *testing.T) {
	_, err := UnmarshalContent([]byte(`{"kind":"letter"}`))
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "kind", inputErr.Field)

	_, err = UnmarshalContent([]byte(`{"kind":"cv"}`))
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "cv", inputErr.Field)

	_, err = UnmarshalContent([]byte(`not json`))
	assert.Error(t, err)
}

func TestDocument_JSON(t *testing.T) {
	doc := Document{
		ID:        uuid.New(),
		ProfileID: uuid.New(),
		Template:  Template{Locale: LocaleDE, Style: StyleFormal},
		Content:   &CoverLetterContent{Sender: "Jane", Closing: "Mit freundlichen Grüßen"},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"cover_letter"`)

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc, decoded)
	assert.Equal(t, KindCoverLetter, decoded.Kind())
}

func TestCVContent_TextFields(t *testing.T) {
	fields := sampleCV().TextFields()

	paths := make(map[string]string, len(fields))
	for _, f := range fields {
		paths[f.Path] = f.Value
	}
	assert.Equal(t, "Built UI components.", paths["experience[0].description"])
	assert.Equal(t, "TU Berlin", paths["education[0].institution"])
	assert.Equal(t, "React", paths["skills[0].name"])
	assert.Equal(t, "Climbing", paths["interests[0]"])
}
