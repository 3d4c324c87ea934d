package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// FallbackExcerptRunes is how much of the notes is used when no marker phrase matches.
	FallbackExcerptRunes = 500
	// MaxExcerptRunes caps an excerpt that has no end marker.
	MaxExcerptRunes = 1500
)

// RequirementMarkers are scanned in order; the first one present in the notes starts the excerpt.
var RequirementMarkers = []string{
	"anforderungen",
	"ihr profil",
	"dein profil",
	"was du mitbringst",
	"was sie mitbringen",
	"qualifikationen",
	"requirements",
	"qualifications",
	"your profile",
	"what you bring",
	"what we're looking for",
	"must have",
}

// EndMarkers end an excerpt when they occur after its start marker.
var EndMarkers = []string{
	"wir bieten",
	"was wir bieten",
	"das bieten wir",
	"benefits",
	"über uns",
	"kontakt",
	"we offer",
	"what we offer",
	"about us",
	"how to apply",
}

// RequirementsExcerpt slices the requirements part out of job notes.
// The first marker of RequirementMarkers (in list order) that occurs anywhere starts the
// excerpt, even if another marker occurs earlier in the text. The excerpt ends at the
// nearest end marker after it, or after MaxExcerptRunes. Without any marker the first
// FallbackExcerptRunes runes of the notes are returned.
func RequirementsExcerpt(notes string) string {
	lower, origin := foldCase(notes)

	for _, marker := range RequirementMarkers {
		start := strings.Index(lower, marker)
		if start < 0 {
			continue
		}
		end := len(lower)
		searchFrom := start + len(marker)
		for _, endMarker := range EndMarkers {
			if idx := strings.Index(lower[searchFrom:], endMarker); idx >= 0 && searchFrom+idx < end {
				end = searchFrom + idx
			}
		}
		return strings.TrimSpace(truncateRunes(notes[origin[start]:origin[end]], MaxExcerptRunes))
	}

	return strings.TrimSpace(truncateRunes(notes, FallbackExcerptRunes))
}

// foldCase lower-cases s rune by rune. origin maps every byte offset of the folded text,
// including its length, to the offset of the rune it came from in s.
func foldCase(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s))
	origin := make([]int, 0, len(s)+1)
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				b.WriteByte(s[i])
				origin = append(origin, i)
				continue
			}
		}
		n, _ := b.WriteRune(unicode.ToLower(r))
		for range n {
			origin = append(origin, i)
		}
	}
	origin = append(origin, len(s))
	return b.String(), origin
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
