// Package ranking orders profile skills by relevance to a job.
package ranking

import (
	"sort"
	"strings"

	"github.com/jonathan/application-tailor/internal/keywords"
	"github.com/jonathan/application-tailor/internal/types"
)

// Proficiency levels on the fixed ordinal scale, most expert highest.
const (
	LevelUnknown = iota
	LevelBasic
	LevelIntermediate
	LevelAdvanced
	LevelExpert
)

// proficiencyScale maps self-reported level labels (English and German) onto the ordinal scale.
var proficiencyScale = map[string]int{
	"expert":          LevelExpert,
	"experte":         LevelExpert,
	"expertin":        LevelExpert,
	"sehr gut":        LevelExpert,
	"advanced":        LevelAdvanced,
	"fortgeschritten": LevelAdvanced,
	"proficient":      LevelAdvanced,
	"gut":             LevelIntermediate,
	"good":            LevelIntermediate,
	"intermediate":    LevelIntermediate,
	"mittel":          LevelIntermediate,
	"basic":           LevelBasic,
	"beginner":        LevelBasic,
	"grundkenntnisse": LevelBasic,
	"anfänger":        LevelBasic,
}

// Proficiency returns the ordinal value of a level label. Unknown or empty labels rank lowest.
func Proficiency(level string) int {
	return proficiencyScale[strings.ToLower(strings.TrimSpace(level))]
}

// RankSkills returns a new slice with keyword-matched skills first and, among equally matched
// skills, higher proficiency first. Ties keep their original order. The input is not modified.
func RankSkills(skills []types.Skill, kw keywords.Set) []types.Skill {
	ranked := make([]types.Skill, len(skills))
	copy(ranked, skills)

	matched := make(map[string]bool, len(ranked))
	for _, s := range ranked {
		matched[s.Name] = kw.Contains(s.Name)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		mi, mj := matched[ranked[i].Name], matched[ranked[j].Name]
		if mi != mj {
			return mi
		}
		return Proficiency(ranked[i].Level) > Proficiency(ranked[j].Level)
	})
	return ranked
}

// TopSkillNames returns up to n skill names from an already ranked list.
func TopSkillNames(ranked []types.Skill, n int) []string {
	names := make([]string, 0, n)
	for _, s := range ranked {
		if len(names) == n {
			break
		}
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		names = append(names, s.Name)
	}
	return names
}
