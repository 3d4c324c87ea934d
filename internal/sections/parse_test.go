package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullLetter = `##SENDER##
Jane Doe
Hauptstr. 1, 10115 Berlin
##RECIPIENT##
Acme GmbH
##DATE##
[Datum]
##SUBJECT##
**Bewerbung als Frontend Developer**
##SALUTATION##
Sehr geehrte Frau Meier,
##INTRODUCTION##
mit großem Interesse habe ich Ihre Anzeige gelesen.
##MAIN_BODY##
Ich habe [Anzahl] Jahre Erfahrung mit React.
##CLOSING##
Mit freundlichen Grüßen
Jane Doe`

func TestParse_AllSections(t *testing.T) {
	res := Parse(fullLetter, CoverLetterTags)

	assert.True(t, res.Complete())
	assert.Empty(t, res.Missing())
	assert.Equal(t, "Jane Doe\nHauptstr. 1, 10115 Berlin", res.Text(TagSender))
	assert.Equal(t, "Acme GmbH", res.Text(TagRecipient))
	assert.Equal(t, "", res.Text(TagDate))
	assert.True(t, res.Get(TagDate).Found)
	assert.Equal(t, "Bewerbung als Frontend Developer", res.Text(TagSubject))
	assert.Equal(t, "Ich habe  Jahre Erfahrung mit React.", res.Text(TagMainBody))
	assert.Equal(t, "Mit freundlichen Grüßen\nJane Doe", res.Text(TagClosing))
}

func TestParse_FiveOfEightScrambled(t *testing.T) {
	text := "preamble\n##CLOSING## Bye\n##SUBJECT## Hello there\n##MAIN_BODY## Body text\n##SENDER## Me\n##SALUTATION## Hi,"

	res := Parse(text, CoverLetterTags)

	assert.False(t, res.Complete())
	assert.Equal(t, []string{TagRecipient, TagDate, TagIntroduction}, res.Missing())

	want := map[string]string{
		TagClosing:    "Bye",
		TagSubject:    "Hello there",
		TagMainBody:   "Body text",
		TagSender:     "Me",
		TagSalutation: "Hi,",
	}
	for tag, content := range want {
		s := res.Get(tag)
		assert.True(t, s.Found, tag)
		assert.Equal(t, content, s.Text, tag)
	}
	for _, tag := range res.Missing() {
		assert.Equal(t, Section{}, res.Get(tag))
	}
}

func TestParse_AdjacentTagsYieldEmpty(t *testing.T) {
	res := Parse("##SUBJECT####SALUTATION## Dear team", []string{TagSubject, TagSalutation})

	require.True(t, res.Complete())
	assert.Equal(t, "", res.Text(TagSubject))
	assert.Equal(t, "Dear team", res.Text(TagSalutation))
}

func TestParse_UsesFirstOccurrence(t *testing.T) {
	res := Parse("##SUBJECT## one ##CLOSING## end ##SUBJECT## two", []string{TagSubject, TagClosing})

	assert.Equal(t, "one", res.Text(TagSubject))
	assert.Equal(t, "end ##SUBJECT## two", res.Text(TagClosing))
}

func TestParse_EmptyInput(t *testing.T) {
	assert.NotPanics(t, func() {
		res := Parse("", CoverLetterTags)
		assert.Len(t, res.Missing(), len(CoverLetterTags))
	})
	assert.NotPanics(t, func() {
		res := Parse("text", nil)
		assert.True(t, res.Complete())
	})
}

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "placeholder", in: "Dear [Name], hello", want: "Dear , hello"},
		{name: "bold", in: "**Important** and __this__", want: "Important and this"},
		{name: "nested brackets", in: "x [[name]] y", want: "x  y"},
		{name: "trim", in: "\n  text \t", want: "text"},
		{name: "empty bold pair", in: "a **** b", want: "a  b"},
		{name: "dunder method kept", in: "Overrode self.__init__() and __repr__() in Python.", want: "Overrode self.__init__() and __repr__() in Python."},
		{name: "snake case kept", in: "Renamed snake__case__name.", want: "Renamed snake__case__name."},
		{name: "unpaired stars kept", in: "Rated ** by peers", want: "Rated ** by peers"},
		{name: "bold next to identifier", in: "__Go__ and obj.__dict__", want: "Go and obj.__dict__"},
		{name: "clean text untouched", in: "Plain sentence (with parens) and 5 * 3.", want: "Plain sentence (with parens) and 5 * 3."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Clean(got), "Clean must be idempotent")
			assert.False(t, HasArtifacts(got))
		})
	}
}

func TestHasArtifacts(t *testing.T) {
	assert.True(t, HasArtifacts("Hello [Company]"))
	assert.True(t, HasArtifacts("**bold**"))
	assert.True(t, HasArtifacts("__Bewerbung__"))
	assert.False(t, HasArtifacts("Hello Acme"))
	assert.False(t, HasArtifacts("Called self.__init__() twice"))
}
