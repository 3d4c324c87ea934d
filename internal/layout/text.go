package layout

import (
	"strings"
	"unicode/utf8"
)

const (
	regularAdvance = 0.5
	boldAdvance    = 0.55
	lineSpacing    = 1.35
)

// TextWidth estimates the rendered width of s. Every glyph is assumed to advance a fixed
// fraction of the font size, which keeps layout independent of installed fonts.
func TextWidth(s string, f Font) float64 {
	advance := regularAdvance
	if f.Bold {
		advance = boldAdvance
	}
	return float64(utf8.RuneCountInString(s)) * f.Size * advance
}

// LineHeight is the vertical advance of one line of f.
func LineHeight(f Font) float64 {
	return f.Size * lineSpacing
}

// Wrap breaks text into lines no wider than width. Explicit newlines start a new line and
// blank lines are kept. Words wider than a whole line are split between runes.
func Wrap(text string, f Font, width float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range words {
			for TextWidth(word, f) > width && width > 0 {
				if current != "" {
					lines = append(lines, current)
					current = ""
				}
				head, tail := splitToWidth(word, f, width)
				lines = append(lines, head)
				word = tail
			}
			if word == "" {
				continue
			}

			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if TextWidth(candidate, f) <= width {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = word
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

// splitToWidth returns the longest prefix of word that fits width (at least one rune) and the rest.
func splitToWidth(word string, f Font, width float64) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && TextWidth(string(runes[:n+1]), f) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
