package keywords

import (
	"strings"
	"testing"

	"github.com/jonathan/application-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_RequirementsNotes(t *testing.T) {
	job := &types.Job{Title: "Frontend Developer", Notes: "requirements: React, teamwork"}

	kw := Extract(job)
	assert.True(t, kw.Contains("react"))
	assert.True(t, kw.Contains("teamwork"))
	assert.True(t, kw.Contains("React"))
}

func TestExtract_NilJob(t *testing.T) {
	assert.Equal(t, 0, Extract(nil).Len())
}

func TestExtract_NoMatches(t *testing.T) {
	job := &types.Job{Title: "Gärtner", Company: "Blumen Müller", Notes: "Pflege von Beeten."}
	assert.Equal(t, 0, Extract(job).Len())
}

func TestExtract_TechStackAndCompany(t *testing.T) {
	job := &types.Job{Company: "Kubernetes Consulting", TechStack: []string{"PostgreSQL", "Docker"}}

	kw := Extract(job)
	assert.True(t, kw.Contains("kubernetes"))
	assert.True(t, kw.Contains("postgresql"))
	assert.True(t, kw.Contains("sql"), "substring containment also matches sql inside postgresql")
	assert.True(t, kw.Contains("docker"))
}

func TestExtractText_EveryTermAnyCase(t *testing.T) {
	for _, vocab := range [][]string{TechnicalTerms, SoftSkills} {
		for _, term := range vocab {
			for _, variant := range []string{term, strings.ToUpper(term), "xx " + term + " yy"} {
				kw := ExtractText(variant)
				require.True(t, kw.Contains(term), "term %q not found in %q", term, variant)
			}
		}
	}
}

func TestExtractText_Deterministic(t *testing.T) {
	text := "We need Go, React and strong Communication skills. Teamfähigkeit ist wichtig."
	first := ExtractText(text).Sorted()
	second := ExtractText(text).Sorted()
	assert.Equal(t, first, second)
	assert.Contains(t, first, "teamfähigkeit")
	assert.Contains(t, first, "communication")
}

func TestVocabulariesAreLowercase(t *testing.T) {
	for _, vocab := range [][]string{TechnicalTerms, SoftSkills} {
		for _, term := range vocab {
			assert.Equal(t, strings.ToLower(term), term)
		}
	}
}
