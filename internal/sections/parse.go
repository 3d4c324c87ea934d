// Package sections splits tag-delimited generated text into named sections.
package sections

import (
	"regexp"
	"sort"
	"strings"
)

// Cover letter section tags, in the order the letter is read.
const (
	TagSender       = "##SENDER##"
	TagRecipient    = "##RECIPIENT##"
	TagDate         = "##DATE##"
	TagSubject      = "##SUBJECT##"
	TagSalutation   = "##SALUTATION##"
	TagIntroduction = "##INTRODUCTION##"
	TagMainBody     = "##MAIN_BODY##"
	TagClosing      = "##CLOSING##"
)

// CoverLetterTags lists all cover letter tags.
var CoverLetterTags = []string{
	TagSender, TagRecipient, TagDate, TagSubject,
	TagSalutation, TagIntroduction, TagMainBody, TagClosing,
}

var (
	placeholderPattern = regexp.MustCompile(`\[[^\[\]\n]*\]`)
	boldStars          = regexp.MustCompile(`\*\*([^*\n]*?)\*\*`)
	// Underscore markers only count when they are not part of an identifier
	// such as self.__init__() or snake__case__name.
	boldUnderscores = regexp.MustCompile(`(^|[^\w.])__((?:[^_\s](?:[^_\n]*[^_\s])?)?)__($|[^\w(])`)
)

func stripBold(s string) string {
	s = boldStars.ReplaceAllString(s, "$1")
	return boldUnderscores.ReplaceAllString(s, "${1}${2}${3}")
}

// Section is the content recovered for one tag. Found is false when the tag never occurs.
type Section struct {
	Text  string
	Found bool
}

// Result maps each expected tag to its section.
type Result struct {
	tags     []string
	sections map[string]Section
}

// Get returns the section for tag; unknown or missing tags yield the zero Section.
func (r Result) Get(tag string) Section {
	return r.sections[tag]
}

// Text returns the cleaned content for tag, or "" when it was not found.
func (r Result) Text(tag string) string {
	return r.sections[tag].Text
}

// Complete reports whether every expected tag was found.
func (r Result) Complete() bool {
	return len(r.Missing()) == 0
}

// Missing lists the expected tags that do not occur, in expected order.
func (r Result) Missing() []string {
	var missing []string
	for _, tag := range r.tags {
		if !r.sections[tag].Found {
			missing = append(missing, tag)
		}
	}
	return missing
}

type tagPosition struct {
	tag string
	pos int
}

// Parse extracts the content following each tag. Each found tag's content runs from the end
// of its first occurrence to the start of the nearest other tag that occurs after it, or to
// the end of text. Tags may appear in any order; missing tags are recorded, never fatal.
func Parse(text string, tags []string) Result {
	result := Result{
		tags:     append([]string(nil), tags...),
		sections: make(map[string]Section, len(tags)),
	}

	positions := make([]tagPosition, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if idx := strings.Index(text, tag); idx >= 0 {
			positions = append(positions, tagPosition{tag: tag, pos: idx})
		} else {
			result.sections[tag] = Section{}
		}
	}
	sort.SliceStable(positions, func(i, j int) bool {
		return positions[i].pos < positions[j].pos
	})

	for i, p := range positions {
		start := p.pos + len(p.tag)
		end := len(text)
		if i+1 < len(positions) {
			end = positions[i+1].pos
		}
		if end < start {
			end = start
		}
		result.sections[p.tag] = Section{Text: Clean(text[start:end]), Found: true}
	}

	return result
}

// Clean strips bracketed placeholder fragments and paired bold markers, then trims whitespace.
// Clean is idempotent and leaves text without such artifacts unchanged apart from trimming.
func Clean(s string) string {
	// Removing an inner fragment can expose an outer one ("[[name]]"), so repeat until stable.
	for {
		next := stripBold(placeholderPattern.ReplaceAllString(s, ""))
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}

// HasArtifacts reports whether s still contains a placeholder fragment or a paired bold marker.
func HasArtifacts(s string) bool {
	return placeholderPattern.MatchString(s) || boldStars.MatchString(s) || boldUnderscores.MatchString(s)
}
