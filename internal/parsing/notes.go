// Package parsing prepares free-text job notes for keyword extraction and prompting.
package parsing

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	htmlTagPattern    = regexp.MustCompile(`(?i)</?(p|div|br|li|ul|ol|h[1-6]|span|strong|b|em|section|article|body|html)\b[^>]*>`)
	multiSpacePattern = regexp.MustCompile(`[ \t\x{00a0}]+`)
	blankRunPattern   = regexp.MustCompile(`\n\n\n+`)
)

// LooksLikeHTML reports whether notes contain markup copied from a job board.
func LooksLikeHTML(notes string) bool {
	return htmlTagPattern.MatchString(notes)
}

// NotesText returns plain, cleaned text for job notes. Pasted HTML is reduced to its
// visible text with block elements on their own lines; plain text is only cleaned.
func NotesText(notes string) (string, error) {
	if !LooksLikeHTML(notes) {
		return CleanText(notes), nil
	}

	return htmlText(strings.NewReader(notes), len(notes))
}

// NotesError reports job notes whose markup could not be read.
type NotesError struct {
	Format string
	Bytes  int
	Cause  error
}

func (e *NotesError) Error() string {
	return fmt.Sprintf("reading %s job notes (%d bytes): %v", e.Format, e.Bytes, e.Cause)
}

func (e *NotesError) Unwrap() error {
	return e.Cause
}

func htmlText(r io.Reader, size int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", &NotesError{Format: "html", Bytes: size, Cause: err}
	}

	doc.Find("script, style, noscript, nav, footer").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
		s.AppendHtml("\n")
	})
	doc.Find("p, div, h1, h2, h3, h4, h5, h6, ul, ol, section").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return CleanText(doc.Text()), nil
}

// CleanText normalizes line endings, collapses runs of spaces inside lines,
// keeps bullet and heading lines, and limits blank lines to one in a row.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			cleaned = append(cleaned, "")
			continue
		}
		cleaned = append(cleaned, multiSpacePattern.ReplaceAllString(trimmed, " "))
	}

	result := blankRunPattern.ReplaceAllString(strings.Join(cleaned, "\n"), "\n\n")
	return strings.TrimSpace(result)
}
