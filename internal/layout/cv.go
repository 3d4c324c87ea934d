package layout

import (
	"fmt"
	"strings"

	"github.com/jonathan/application-tailor/internal/locale"
	"github.com/jonathan/application-tailor/internal/types"
)

const (
	photoWidth  = 85.0
	photoHeight = 110.0
	photoGap    = 12.0
)

// Section identifiers carried by elements.
const (
	SectionPersonal   = "personal"
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
	SectionLanguages  = "languages"
	SectionInterests  = "interests"
	SectionContact    = "contact"
	SectionSidebar    = "sidebar"
	SectionFooter     = "footer"
)

// LayoutCV lays out a CV. The formal style flows every section in one column; the enhanced
// style draws a header band and moves contact details, skills, languages and interests into
// a sidebar that paginates independently of the main column.
func (e *Engine) LayoutCV(cv *types.CVContent, tpl types.Template) (*Document, error) {
	if cv == nil {
		return nil, &FieldError{Field: "content", Message: "no content"}
	}
	st, loc, err := resolveTemplate(tpl)
	if err != nil {
		return nil, err
	}
	if err := validateCV(cv); err != nil {
		return nil, err
	}

	var (
		pages          []Page
		footerX, width float64
	)
	if st.sidebarWidth > 0 {
		pages, footerX, width = e.layoutCVTwoColumn(cv, tpl, st, loc)
	} else {
		pages = e.layoutCVSingleColumn(cv, tpl, st, loc)
		footerX, width = st.marginX, e.size.Width-2*st.marginX
	}
	if len(pages) > 1 {
		e.numberPages(pages, loc, st.small, footerX, width, st.footerY(e.size))
	}
	return e.newDocument(loc, tpl.Style, pages), nil
}

func validateCV(cv *types.CVContent) error {
	if strings.TrimSpace(cv.Personal.FullName) == "" {
		return &FieldError{Field: "personal.full_name", Message: "name is required"}
	}
	for i, x := range cv.Experience {
		if strings.TrimSpace(x.Title) == "" {
			return &FieldError{Field: fmt.Sprintf("experience[%d].title", i), Message: "title is required"}
		}
		if endsBeforeStart(x.Start, x.End) {
			return &FieldError{Field: fmt.Sprintf("experience[%d].end", i), Message: "ends before it starts"}
		}
	}
	for i, x := range cv.Education {
		if strings.TrimSpace(x.Degree) == "" {
			return &FieldError{Field: fmt.Sprintf("education[%d].degree", i), Message: "degree is required"}
		}
		if endsBeforeStart(x.Start, x.End) {
			return &FieldError{Field: fmt.Sprintf("education[%d].end", i), Message: "ends before it starts"}
		}
	}
	for i, s := range cv.Skills {
		if strings.TrimSpace(s.Name) == "" {
			return &FieldError{Field: fmt.Sprintf("skills[%d].name", i), Message: "name is required"}
		}
	}
	for i, l := range cv.Languages {
		if strings.TrimSpace(l.Name) == "" {
			return &FieldError{Field: fmt.Sprintf("languages[%d].name", i), Message: "name is required"}
		}
	}
	return nil
}

func endsBeforeStart(start types.YearMonth, end *types.YearMonth) bool {
	return end != nil && !end.IsZero() && !start.IsZero() && end.Before(start)
}

func (e *Engine) layoutCVSingleColumn(cv *types.CVContent, tpl types.Template, st style, loc types.Locale) []Page {
	set := &pageSet{}
	width := e.size.Width - 2*st.marginX
	col := newColumn(set, st.marginX, width, st.marginTop, st.marginTop, e.size.Height-st.marginBottom)

	headerWidth := width
	withPhoto := tpl.IncludePhoto && cv.Personal.PhotoURL != ""
	if withPhoto {
		headerWidth -= photoWidth + photoGap
		set.add(0, Element{
			Kind:    ElementImage,
			Rect:    Rect{X: e.size.Width - st.marginX - photoWidth, Y: st.marginTop, W: photoWidth, H: photoHeight},
			URL:     cv.Personal.PhotoURL,
			Section: SectionPersonal,
		})
	}

	p := cv.Personal
	var header []row
	header = append(header, textRows(p.FullName, st.name, headerWidth, SectionPersonal, AlignLeft)...)
	header = append(header, textRows(p.Headline, Font{Size: 11.5, Color: st.muted.Color}, headerWidth, SectionPersonal, AlignLeft)...)
	contact := joinNonEmpty(" · ", p.Email, p.Phone, joinNonEmpty(", ", p.Address.Street, p.Address.CityLine()))
	header = append(header, textRows(contact, st.muted, headerWidth, SectionPersonal, AlignLeft)...)
	col.place(block{rows: header, atomic: true})
	if withPhoto && col.y < st.marginTop+photoHeight {
		col.y = st.marginTop + photoHeight
	}

	st.placeMainSections(col, cv, loc)
	st.placeSection(col, st.headingText(loc, locale.LabelSkills), SectionSkills,
		paragraphBlocks(skillsLine(cv.Skills), st.body, col.width, SectionSkills))
	st.placeSection(col, st.headingText(loc, locale.LabelLanguages), SectionLanguages,
		paragraphBlocks(languagesLine(cv.Languages), st.body, col.width, SectionLanguages))
	st.placeSection(col, st.headingText(loc, locale.LabelInterests), SectionInterests,
		paragraphBlocks(strings.Join(cv.Interests, ", "), st.body, col.width, SectionInterests))

	return set.pages
}

// layoutCVTwoColumn returns the pages and the horizontal extent of the main column.
func (e *Engine) layoutCVTwoColumn(cv *types.CVContent, tpl types.Template, st style, loc types.Locale) ([]Page, float64, float64) {
	sidebarRight := st.marginX + st.sidebarWidth
	set := &pageSet{decorate: func(p *Page) {
		top := 0.0
		if p.Number == 1 {
			top = st.bandHeight
			p.Elements = append(p.Elements, Element{Kind: ElementBox, Rect: Rect{W: e.size.Width, H: st.bandHeight}, Fill: st.bandFill, Section: SectionPersonal})
		}
		p.Elements = append(p.Elements, Element{Kind: ElementBox, Rect: Rect{Y: top, W: sidebarRight, H: e.size.Height - top}, Fill: st.sidebarFill, Section: SectionSidebar})
	}}

	firstTop := st.bandHeight + 22
	bottom := e.size.Height - st.marginBottom
	side := newColumn(set, st.marginX, st.sidebarWidth-14, firstTop, st.marginTop, bottom)
	mainX := sidebarRight + st.gutter
	mainWidth := e.size.Width - mainX - st.marginX
	main := newColumn(set, mainX, mainWidth, firstTop, st.marginTop, bottom)

	p := cv.Personal
	bandWidth := e.size.Width - 2*st.marginX
	if tpl.IncludePhoto && p.PhotoURL != "" {
		bandWidth -= photoWidth
		set.add(0, Element{
			Kind:    ElementImage,
			Rect:    Rect{X: e.size.Width - st.marginX - 72, Y: 14, W: 72, H: 90},
			URL:     p.PhotoURL,
			Section: SectionPersonal,
		})
	}
	y := 30.0
	for _, r := range textRows(p.FullName, st.name, bandWidth, SectionPersonal, AlignLeft) {
		y = emitAt(set, 0, st.marginX, y, r)
	}
	for _, r := range textRows(p.Headline, st.bandText, bandWidth, SectionPersonal, AlignLeft) {
		y = emitAt(set, 0, st.marginX, y, r)
	}

	contact := make([]block, 0, 4)
	for _, line := range []string{p.Email, p.Phone, p.Address.Street, p.Address.CityLine()} {
		if rows := textRows(line, st.small, side.width, SectionContact, AlignLeft); len(rows) > 0 {
			contact = append(contact, block{rows: rows, atomic: true})
		}
	}
	st.placeSection(side, st.headingText(loc, locale.LabelContact), SectionContact, contact)
	st.placeSection(side, st.headingText(loc, locale.LabelSkills), SectionSkills, st.ratedBlocks(skillPairs(cv.Skills), side.width, SectionSkills))
	st.placeSection(side, st.headingText(loc, locale.LabelLanguages), SectionLanguages, st.ratedBlocks(languagePairs(cv.Languages), side.width, SectionLanguages))
	st.placeSection(side, st.headingText(loc, locale.LabelInterests), SectionInterests,
		paragraphBlocks(strings.Join(cv.Interests, ", "), st.small, side.width, SectionInterests))

	st.placeMainSections(main, cv, loc)

	return set.pages, mainX, mainWidth
}

// placeMainSections places summary, experience and education.
func (st style) placeMainSections(col *column, cv *types.CVContent, loc types.Locale) {
	st.placeSection(col, st.headingText(loc, locale.LabelSummary), SectionSummary,
		paragraphBlocks(cv.Summary, st.body, col.width, SectionSummary))

	experience := make([]block, 0, len(cv.Experience))
	for _, x := range cv.Experience {
		rows := st.titledRows(x.Title, st.dateRange(loc, x.Start, x.End, x.Ongoing), col.width, SectionExperience)
		rows = append(rows, textRows(joinNonEmpty(" · ", x.Company, x.Location), st.muted, col.width, SectionExperience, AlignLeft)...)
		rows = append(rows, textRows(x.Description, st.body, col.width, SectionExperience, AlignLeft)...)
		rows = append(rows, gapRow(entryGap))
		experience = append(experience, block{rows: rows, atomic: true})
	}
	st.placeSection(col, st.headingText(loc, locale.LabelExperience), SectionExperience, experience)

	education := make([]block, 0, len(cv.Education))
	for _, x := range cv.Education {
		rows := st.titledRows(x.Degree, st.dateRange(loc, x.Start, x.End, x.Ongoing), col.width, SectionEducation)
		rows = append(rows, textRows(joinNonEmpty(" · ", x.Institution, x.Location), st.muted, col.width, SectionEducation, AlignLeft)...)
		rows = append(rows, textRows(x.Description, st.body, col.width, SectionEducation, AlignLeft)...)
		rows = append(rows, gapRow(entryGap))
		education = append(education, block{rows: rows, atomic: true})
	}
	st.placeSection(col, st.headingText(loc, locale.LabelEducation), SectionEducation, education)
}

// placeSection places a heading followed by its entries. Sections without entries are
// omitted entirely. The heading is kept on the same page as the start of the first entry.
func (st style) placeSection(col *column, title, section string, entries []block) {
	if len(entries) == 0 {
		return
	}
	col.skip(sectionGap)

	heading := st.headingRows(title, col.width, section)
	first := entries[0]
	if first.atomic {
		col.place(block{rows: append(heading, first.rows...), atomic: true})
	} else {
		col.place(block{rows: append(heading, first.rows[0]), atomic: true})
		col.place(block{rows: first.rows[1:]})
	}
	for _, b := range entries[1:] {
		col.place(b)
	}
}

// paragraphBlocks returns a single breakable block for text, or nothing when it is blank.
func paragraphBlocks(text string, f Font, width float64, section string) []block {
	rows := textRows(text, f, width, section, AlignLeft)
	if len(rows) == 0 {
		return nil
	}
	return []block{{rows: rows}}
}

type ratedItem struct {
	name  string
	level string
}

// ratedBlocks renders one atomic block per item: the name, then its level in muted type.
func (st style) ratedBlocks(items []ratedItem, width float64, section string) []block {
	blocks := make([]block, 0, len(items))
	for _, it := range items {
		rows := textRows(it.name, st.body, width, section, AlignLeft)
		rows = append(rows, textRows(it.level, st.muted, width, section, AlignLeft)...)
		rows = append(rows, gapRow(3))
		blocks = append(blocks, block{rows: rows, atomic: true})
	}
	return blocks
}

func skillPairs(skills []types.Skill) []ratedItem {
	out := make([]ratedItem, 0, len(skills))
	for _, s := range skills {
		out = append(out, ratedItem{name: s.Name, level: s.Level})
	}
	return out
}

func languagePairs(langs []types.Language) []ratedItem {
	out := make([]ratedItem, 0, len(langs))
	for _, l := range langs {
		out = append(out, ratedItem{name: l.Name, level: l.Level})
	}
	return out
}

func skillsLine(skills []types.Skill) string {
	return ratedLine(skillPairs(skills))
}

func languagesLine(langs []types.Language) string {
	return ratedLine(languagePairs(langs))
}

// ratedLine prints "Go (expert), SQL".
func ratedLine(items []ratedItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if level := strings.TrimSpace(it.level); level != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", strings.TrimSpace(it.name), level))
			continue
		}
		parts = append(parts, strings.TrimSpace(it.name))
	}
	return strings.Join(parts, ", ")
}

// emitAt places r at an absolute position on page and returns the y below it.
func emitAt(set *pageSet, page int, x, y float64, r row) float64 {
	for _, el := range r.elements {
		el.Rect.X += x
		el.Rect.Y += y
		set.add(page, el)
	}
	return y + r.height
}
