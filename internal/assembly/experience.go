package assembly

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/application-tailor/internal/types"
)

// YearsOfExperience sums the month span of every entry (ongoing entries end at now) and floors
// the total to whole years. Overlapping entries are counted separately.
func YearsOfExperience(entries []types.Experience, now time.Time) int {
	months := 0
	for _, e := range entries {
		if e.Start.IsZero() {
			continue
		}
		if delta := e.Start.MonthsUntil(e.EndOrNow(now)); delta > 0 {
			months += delta
		}
	}
	return months / 12
}

// sortExperienceByStartDesc orders entries by start date, newest first. Equal starts keep their order.
func sortExperienceByStartDesc(entries []types.Experience) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[j].Start.Before(entries[i].Start)
	})
}

func sortEducationByStartDesc(entries []types.Education) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[j].Start.Before(entries[i].Start)
	})
}

// SynthesizeSummary builds the templated professional summary used when a profile has none.
func SynthesizeSummary(loc types.Locale, years int, topSkills []string, job *types.Job) string {
	var sb strings.Builder
	if loc == types.LocaleDE {
		unit := "Jahren"
		if years == 1 {
			unit = "Jahr"
		}
		sb.WriteString(fmt.Sprintf("Fachkraft mit %d %s Berufserfahrung", years, unit))
		if len(topSkills) > 0 {
			sb.WriteString(" und Schwerpunkten in " + joinList(topSkills, "und"))
		}
		sb.WriteString(".")
		if job != nil && job.Title != "" {
			sb.WriteString(" Motiviert, als " + job.Title)
			if job.Company != "" {
				sb.WriteString(" bei " + job.Company)
			}
			sb.WriteString(" einen Beitrag zu leisten.")
		}
		return sb.String()
	}

	unit := "years"
	if years == 1 {
		unit = "year"
	}
	sb.WriteString(fmt.Sprintf("Professional with %d %s of experience", years, unit))
	if len(topSkills) > 0 {
		sb.WriteString(", specializing in " + joinList(topSkills, "and"))
	}
	sb.WriteString(".")
	if job != nil && job.Title != "" {
		sb.WriteString(" Eager to contribute as " + job.Title)
		if job.Company != "" {
			sb.WriteString(" at " + job.Company)
		}
		sb.WriteString(".")
	}
	return sb.String()
}

func joinList(items []string, conjunction string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " " + conjunction + " " + items[len(items)-1]
	}
}
