package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequirementsExcerpt(t *testing.T) {
	tests := []struct {
		name  string
		notes string
		want  string
	}{
		{
			name:  "english marker to end of text",
			notes: "requirements: React, teamwork",
			want:  "requirements: React, teamwork",
		},
		{
			name:  "german marker with end marker",
			notes: "Über die Stelle\nIhr Profil: Erfahrung mit Go und SQL.\nWir bieten: Homeoffice.",
			want:  "Ihr Profil: Erfahrung mit Go und SQL.",
		},
		{
			name:  "first marker in list order wins over earlier text position",
			notes: "Requirements: English speaker. Anforderungen: Deutsch C1. We offer fruit.",
			want:  "Anforderungen: Deutsch C1.",
		},
		{
			name:  "nearest end marker",
			notes: "Qualifications: Python. About us: small team. Benefits: bike.",
			want:  "Qualifications: Python.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequirementsExcerpt(tt.notes))
		})
	}
}

func TestRequirementsExcerpt_FallbackToFirst500(t *testing.T) {
	notes := strings.Repeat("a", 800)
	assert.Equal(t, strings.Repeat("a", 500), RequirementsExcerpt(notes))

	short := "Join our bakery."
	assert.Equal(t, short, RequirementsExcerpt(short))
}

func TestRequirementsExcerpt_FallbackCountsRunes(t *testing.T) {
	notes := strings.Repeat("ä", 600)
	assert.Equal(t, strings.Repeat("ä", 500), RequirementsExcerpt(notes))
}

func TestRequirementsExcerpt_CapsLongExcerpt(t *testing.T) {
	notes := "requirements " + strings.Repeat("x", 3000)
	got := RequirementsExcerpt(notes)
	assert.Len(t, got, MaxExcerptRunes)
	assert.True(t, strings.HasPrefix(got, "requirements"))
}

func TestRequirementsExcerpt_KeepsCasingWhenFoldingChangesLength(t *testing.T) {
	// U+0130 and the Kelvin sign fold to single-byte letters.
	notes := "İstanbul office, Key account. Requirements: Go, Kubernetes, PostgreSQL. We offer: fruit."
	assert.Equal(t, "Requirements: Go, Kubernetes, PostgreSQL.", RequirementsExcerpt(notes))

	notes = "Standort İzmir\nIHR PROFIL: Erfahrung mit AWS.\nWIR BIETEN: Obst."
	assert.Equal(t, "IHR PROFIL: Erfahrung mit AWS.", RequirementsExcerpt(notes))
}

func TestFoldCase_Offsets(t *testing.T) {
	s := "Aİb"
	lower, origin := foldCase(s)
	assert.Equal(t, "aib", lower)
	assert.Equal(t, []int{0, 1, 3, 4}, origin)
}
