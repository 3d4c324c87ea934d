package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("tailoring.json", "tailor-description-en")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "{{.Original}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("tailoring.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		prompt := MustGet("tailoring.json", "tailor-description-en")
		assert.NotEmpty(t, prompt)
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	result := Format(template, data)
	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	result := Format(template, data)
	assert.Equal(t, template, result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	data := map[string]string{}

	result := Format(template, data)
	assert.Equal(t, template, result) // Placeholder remains
}

func TestFormat_SinglePass(t *testing.T) {
	data := map[string]string{
		"Original": "Notes mention {{.Company}} literally.",
		"Company":  "Acme",
	}

	for i := 0; i < 20; i++ {
		assert.Equal(t, "Acme: Notes mention {{.Company}} literally.", Format("{{.Company}}: {{.Original}}", data))
	}
}

func TestRender(t *testing.T) {
	ClearCache()

	template := MustGet("tailoring.json", "tailor-description-de")
	data := map[string]string{}
	for _, field := range Fields(template) {
		data[field] = "<" + field + ">"
	}

	prompt, err := Render("tailoring.json", "tailor-description", "de", data)
	require.NoError(t, err)
	assert.Contains(t, prompt, "<Original>")
	assert.Empty(t, Fields(prompt))

	fallback, err := Render("tailoring.json", "tailor-description", "fr", data)
	require.NoError(t, err)
	assert.NotEqual(t, prompt, fallback, "unknown locales use the English variant")
}

func TestRender_MissingValue(t *testing.T) {
	ClearCache()

	_, err := Render("tailoring.json", "tailor-description", "en", map[string]string{"Original": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no value for")
	assert.Contains(t, err.Error(), "JobTitle")
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, Fields("{{.B}} {{.A}} {{.B}} {{ .C }}"))
	assert.Empty(t, Fields("plain"))
}

func TestLocalizedVariantsShareFields(t *testing.T) {
	ClearCache()

	for _, name := range []struct{ file, key string }{
		{"tailoring.json", "tailor-description"},
		{"cover_letter.json", "cover-letter"},
	} {
		de := Fields(MustGet(name.file, name.key+"-de"))
		en := Fields(MustGet(name.file, name.key+"-en"))
		assert.Equal(t, en, de, name.key)
	}
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("cover_letter.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"cover-letter-de", "cover-letter-en"}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	// First call loads from file
	prompt1, err := Get("tailoring.json", "tailor-description-en")
	require.NoError(t, err)

	// Second call should use cache
	prompt2, err := Get("tailoring.json", "tailor-description-en")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}

func TestGetLocalized(t *testing.T) {
	ClearCache()

	german, err := GetLocalized("cover_letter.json", "cover-letter", "de")
	require.NoError(t, err)
	assert.Contains(t, german, "Anschreiben")

	fallback, err := GetLocalized("cover_letter.json", "cover-letter", "fr")
	require.NoError(t, err)
	english, err := Get("cover_letter.json", "cover-letter-en")
	require.NoError(t, err)
	assert.Equal(t, english, fallback)

	_, err = GetLocalized("cover_letter.json", "missing", "de")
	assert.Error(t, err)
}

func TestPromptsForbidPlaceholders(t *testing.T) {
	ClearCache()

	for _, file := range []string{"tailoring.json", "cover_letter.json"} {
		keys, err := List(file)
		require.NoError(t, err)
		for _, key := range keys {
			prompt := MustGet(file, key)
			assert.Regexp(t, `(?i)(square brackets|eckigen Klammern)`, prompt, "%s/%s", file, key)
		}
	}
}
