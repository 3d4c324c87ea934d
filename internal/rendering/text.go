package rendering

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/application-tailor/internal/layout"
)

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

// RenderText draws page n (1-based) of doc onto a character grid cols wide, for terminal
// previews. Text keeps its relative position; thin rules become horizontal lines. Later
// elements overwrite earlier ones where they overlap.
func RenderText(doc *layout.Document, n, cols int) []string {
	if doc == nil || n < 1 || n > len(doc.Pages) || cols <= 0 {
		return nil
	}
	sx := float64(cols) / doc.Size.Width
	sy := sx / cellAspect
	rows := int(doc.Size.Height*sy) + 1

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	put := func(r, c int, s string) {
		if r < 0 || r >= rows {
			return
		}
		for _, ch := range s {
			if c >= 0 && c < cols {
				grid[r][c] = ch
			}
			c++
		}
	}

	for _, el := range doc.Pages[n-1].Elements {
		r := int(el.Rect.Y * sy)
		switch el.Kind {
		case layout.ElementRule:
			if el.Rect.H <= 2 {
				width := int(el.Rect.W * sx)
				put(r, int(el.Rect.X*sx), strings.Repeat("─", max(width, 1)))
			}
		case layout.ElementText, layout.ElementHeading:
			c := int(el.Rect.X * sx)
			switch el.Align {
			case layout.AlignRight:
				c = int((el.Rect.X+el.Rect.W)*sx) - utf8.RuneCountInString(el.Text)
			case layout.AlignCenter:
				c = int((el.Rect.X+el.Rect.W/2)*sx) - utf8.RuneCountInString(el.Text)/2
			}
			put(r, c, el.Text)
		case layout.ElementImage:
			put(r, int(el.Rect.X*sx), "[photo]")
		}
	}

	lines := make([]string, rows)
	for i, line := range grid {
		lines[i] = strings.TrimRight(string(line), " ")
	}
	return lines
}
