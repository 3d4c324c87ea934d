package layout

import "strings"

const (
	sectionGap = 14.0
	entryGap   = 7.0
	dateWidth  = 118.0
)

func textElement(text string, f Font, w float64, section string, align Align) Element {
	return Element{
		Kind:    ElementText,
		Rect:    Rect{W: w, H: LineHeight(f)},
		Text:    text,
		Font:    f,
		Align:   align,
		Section: section,
	}
}

// textRows wraps text to width and returns one row per line. Empty text yields no rows.
func textRows(text string, f Font, width float64, section string, align Align) []row {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	lines := Wrap(text, f, width)
	rows := make([]row, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, row{
			height:   LineHeight(f),
			elements: []Element{textElement(line, f, width, section, align)},
		})
	}
	return rows
}

// headingRows returns the heading line of a section and, for ruled styles, the rule below it.
func (st style) headingRows(title string, width float64, section string) []row {
	heading := textElement(title, st.heading, width, section, AlignLeft)
	heading.Kind = ElementHeading
	rows := []row{{height: LineHeight(st.heading) + 2, elements: []Element{heading}}}
	if st.headingRule {
		rows = append(rows, row{height: 7, elements: []Element{{
			Kind:    ElementRule,
			Rect:    Rect{Y: 1, W: width, H: 0.8},
			Fill:    st.accent,
			Section: section,
		}}})
	}
	return rows
}

// titledRows puts the first line of a title and a right-aligned date on one row. Further
// title lines follow as separate rows.
func (st style) titledRows(title, date string, width float64, section string) []row {
	titleFont := st.body
	titleFont.Bold = true
	dateFont := st.muted
	if st.dates == datesMonth {
		dateFont.Color = st.accent
	}

	titleWidth := width
	if date != "" {
		titleWidth = width - dateWidth - 6
	}
	lines := Wrap(strings.TrimSpace(title), titleFont, titleWidth)

	var rows []row
	for i, line := range lines {
		r := row{height: LineHeight(titleFont), elements: []Element{textElement(line, titleFont, titleWidth, section, AlignLeft)}}
		if i == 0 && date != "" {
			d := textElement(date, dateFont, dateWidth, section, AlignRight)
			d.Rect.X = width - dateWidth
			r.elements = append(r.elements, d)
		}
		rows = append(rows, r)
	}
	return rows
}

func gapRow(h float64) row {
	return row{height: h}
}

// joinNonEmpty joins the non-blank parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
