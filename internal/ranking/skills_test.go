package ranking

import (
	"testing"

	"github.com/jonathan/application-tailor/internal/keywords"
	"github.com/jonathan/application-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankSkills_MatchedFirst(t *testing.T) {
	skills := []types.Skill{
		{Name: "Python", Level: "expert"},
		{Name: "React", Level: "basic"},
		{Name: "Teamwork"},
	}
	kw := keywords.NewSet("react", "teamwork")

	ranked := RankSkills(skills, kw)
	require.Len(t, ranked, 3)
	assert.Equal(t, "React", ranked[0].Name)
	assert.Equal(t, "Teamwork", ranked[1].Name)
	assert.Equal(t, "Python", ranked[2].Name)
}

func TestRankSkills_ProficiencyWithinGroup(t *testing.T) {
	skills := []types.Skill{
		{Name: "A", Level: "basic"},
		{Name: "B", Level: "Experte"},
		{Name: "C"},
		{Name: "D", Level: "fortgeschritten"},
		{Name: "E", Level: "intermediate"},
	}

	ranked := RankSkills(skills, keywords.Set{})
	names := []string{}
	for _, s := range ranked {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"B", "D", "E", "A", "C"}, names)
}

func TestRankSkills_StableForTies(t *testing.T) {
	skills := []types.Skill{
		{Name: "X", Level: "good"},
		{Name: "Y", Level: "gut"},
		{Name: "Z", Level: "intermediate"},
	}
	ranked := RankSkills(skills, keywords.Set{})
	assert.Equal(t, skills, ranked)
}

func TestRankSkills_DoesNotMutateInput(t *testing.T) {
	skills := []types.Skill{{Name: "Go"}, {Name: "React", Level: "expert"}}
	original := append([]types.Skill(nil), skills...)

	_ = RankSkills(skills, keywords.NewSet("react"))
	assert.Equal(t, original, skills)
}

func TestRankSkills_NoMatchedAfterUnmatched(t *testing.T) {
	skills := []types.Skill{
		{Name: "Excel", Level: "expert"},
		{Name: "Docker", Level: "basic"},
		{Name: "Cooking", Level: "expert"},
		{Name: "Kubernetes"},
		{Name: "SQL", Level: "advanced"},
	}
	kw := keywords.NewSet("docker", "kubernetes", "sql")

	ranked := RankSkills(skills, kw)
	seenUnmatched := false
	for _, s := range ranked {
		if kw.Contains(s.Name) {
			assert.False(t, seenUnmatched, "matched skill %s after unmatched", s.Name)
		} else {
			seenUnmatched = true
		}
	}
}

func TestTopSkillNames(t *testing.T) {
	ranked := []types.Skill{{Name: "React"}, {Name: " "}, {Name: "Go"}, {Name: "SQL"}, {Name: "CSS"}}
	assert.Equal(t, []string{"React", "Go", "SQL"}, TopSkillNames(ranked, 3))
	assert.Empty(t, TopSkillNames(nil, 3))
}
