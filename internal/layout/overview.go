package layout

import (
	"fmt"
	"time"

	"github.com/jonathan/application-tailor/internal/locale"
	"github.com/jonathan/application-tailor/internal/types"
)

// Overview section identifiers.
const (
	SectionOverviewTitle  = "overview_title"
	SectionOverviewHeader = "overview_header"
	SectionOverviewRow    = "overview_row"
)

const (
	cellPadding   = 4.0
	overviewTitle = 15.0
	headerFill    = "#e5e7eb"
	rowRuleColor  = "#d1d5db"
)

// OverviewRow is one application in the overview export.
type OverviewRow struct {
	Company       string
	Position      string
	Status        types.ApplicationStatus
	AppliedAt     *time.Time
	ContactPerson string
}

// RowsFromJobs converts stored jobs into overview rows, keeping their order.
func RowsFromJobs(jobs []types.Job) []OverviewRow {
	rows := make([]OverviewRow, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, OverviewRow{
			Company:       j.Company,
			Position:      j.Title,
			Status:        j.Status,
			AppliedAt:     j.AppliedAt,
			ContactPerson: j.ContactPerson,
		})
	}
	return rows
}

type overviewColumn struct {
	label    locale.Key
	fraction float64
}

var overviewColumns = []overviewColumn{
	{locale.LabelCompany, 0.26},
	{locale.LabelPosition, 0.30},
	{locale.LabelStatus, 0.14},
	{locale.LabelAppliedAt, 0.14},
	{locale.LabelContactPer, 0.16},
}

// LayoutOverview lays out the applications list as a table with fixed column widths. Every
// page repeats the title and the column header and carries a "Page i of n" counter. A row is
// never split across pages.
func (e *Engine) LayoutOverview(rows []OverviewRow, loc types.Locale) (*Document, error) {
	if !locale.Supported(loc) {
		return nil, &FieldError{Field: "template.locale", Message: fmt.Sprintf("unsupported locale %q", loc)}
	}
	st := styles[types.StyleFormal]
	left := st.marginX
	width := e.size.Width - 2*st.marginX

	titleFont := Font{Size: overviewTitle, Bold: true, Color: st.accent}
	headFont := st.small
	headFont.Bold = true

	headerCells := make([]string, len(overviewColumns))
	for i, c := range overviewColumns {
		headerCells[i] = locale.Label(loc, c.label)
	}
	header := tableRow(headerCells, headFont, width, SectionOverviewHeader)
	header.elements = append([]Element{{Kind: ElementBox, Rect: Rect{W: width, H: header.height}, Fill: headerFill, Section: SectionOverviewHeader}}, header.elements...)

	bodyTop := st.marginTop + LineHeight(titleFont) + 8 + header.height
	set := &pageSet{decorate: func(p *Page) {
		title := textElement(locale.Label(loc, locale.LabelOverview), titleFont, width, SectionOverviewTitle, AlignLeft)
		title.Kind = ElementHeading
		title.Rect.X = left
		title.Rect.Y = st.marginTop
		p.Elements = append(p.Elements, title)
		for _, el := range header.elements {
			el.Rect.X += left
			el.Rect.Y += st.marginTop + LineHeight(titleFont) + 8
			p.Elements = append(p.Elements, el)
		}
	}}
	col := newColumn(set, left, width, bodyTop, bodyTop, e.size.Height-st.marginBottom)

	for _, r := range rows {
		applied := "–"
		if r.AppliedAt != nil {
			applied = locale.FormatNumericDate(loc, *r.AppliedAt)
		}
		status := "–"
		if r.Status != "" {
			status = locale.StatusLabel(loc, r.Status)
		}
		cells := []string{orDash(r.Company), orDash(r.Position), status, applied, orDash(r.ContactPerson)}

		tr := tableRow(cells, st.small, width, SectionOverviewRow)
		tr.elements = append(tr.elements, Element{Kind: ElementRule, Rect: Rect{Y: tr.height - 0.5, W: width, H: 0.5}, Fill: rowRuleColor, Section: SectionOverviewRow})
		col.place(block{rows: []row{tr}, atomic: true})
	}

	e.numberPages(set.pages, loc, st.small, left, width, st.footerY(e.size))
	return e.newDocument(loc, types.StyleFormal, set.pages), nil
}

// tableRow wraps every cell within its column and sizes the row to the tallest cell.
func tableRow(cells []string, f Font, width float64, section string) row {
	lh := LineHeight(f)
	r := row{}
	maxLines := 1
	x := 0.0
	for i, c := range overviewColumns {
		colWidth := width * c.fraction
		lines := Wrap(cells[i], f, colWidth-2*cellPadding)
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
		for j, line := range lines {
			el := textElement(line, f, colWidth-2*cellPadding, section, AlignLeft)
			el.Rect.X = x + cellPadding
			el.Rect.Y = cellPadding + float64(j)*lh
			r.elements = append(r.elements, el)
		}
		x += colWidth
	}
	r.height = float64(maxLines)*lh + 2*cellPadding
	return r
}

func orDash(s string) string {
	if s == "" {
		return "–"
	}
	return s
}
