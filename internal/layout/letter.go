package layout

import (
	"regexp"
	"strings"

	"github.com/jonathan/application-tailor/internal/types"
)

// Letter section identifiers.
const (
	SectionSender       = "sender"
	SectionReturn       = "return_address"
	SectionRecipient    = "recipient"
	SectionDate         = "date"
	SectionSubject      = "subject"
	SectionSalutation   = "salutation"
	SectionIntroduction = "introduction"
	SectionMainBody     = "main_body"
	SectionClosing      = "closing"
	SectionMarks        = "marks"
)

// Form B positions of the standard business letter, in millimetres from the top-left corner.
const (
	windowLeftMM      = 25.0
	windowTopMM       = 45.0
	windowWidthMM     = 85.0
	returnZoneMM      = 17.7
	infoLeftMM        = 125.0
	infoTopMM         = 50.0
	subjectTopMM      = 103.4
	letterRightMM     = 20.0
	letterBottomMM    = 25.0
	foldMarkUpperMM   = 105.0
	foldMarkLowerMM   = 210.0
	letterBandHeight  = 78.0
	paragraphSpacing  = 8.0
	signatureSpacing  = 26.0
	returnAddressSize = 7.0
)

var phoneLine = regexp.MustCompile(`^[+0-9()\s/.-]+$`)

// LayoutCoverLetter lays out a cover letter. With the compliance flag the recipient sits in
// the fixed address window under a one-line return address, the sender details move into
// the information block on the right and fold marks are drawn. Otherwise the formal style
// stacks sender, recipient and date at the top and the enhanced style puts the sender into
// a header band.
func (e *Engine) LayoutCoverLetter(letter *types.CoverLetterContent, tpl types.Template) (*Document, error) {
	if letter == nil {
		return nil, &FieldError{Field: "content", Message: "no content"}
	}
	st, loc, err := resolveTemplate(tpl)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(letter.Sender) == "" {
		return nil, &FieldError{Field: "sender", Message: "sender is required"}
	}
	if strings.TrimSpace(letter.Recipient) == "" {
		return nil, &FieldError{Field: "recipient", Message: "recipient is required"}
	}

	set := &pageSet{}
	var col *column
	switch {
	case tpl.Compliant:
		col = e.letterHeadCompliant(set, letter, st)
	case st.bandHeight > 0:
		col = e.letterHeadBanded(set, letter, st)
	default:
		col = e.letterHeadFormal(set, letter, st)
	}

	subject := st.body
	subject.Bold = true
	col.place(block{rows: textRows(letter.Subject, subject, col.width, SectionSubject, AlignLeft), atomic: true})
	col.skip(paragraphSpacing * 1.5)
	col.place(block{rows: textRows(letter.Salutation, st.body, col.width, SectionSalutation, AlignLeft), atomic: true})

	for _, part := range []struct{ text, section string }{
		{letter.Introduction, SectionIntroduction},
		{letter.MainBody, SectionMainBody},
	} {
		for _, paragraph := range paragraphs(part.text) {
			col.skip(paragraphSpacing)
			col.place(block{rows: textRows(paragraph, st.body, col.width, part.section, AlignLeft)})
		}
	}

	col.skip(paragraphSpacing)
	col.place(block{rows: closingRows(letter.Closing, st.body, col.width), atomic: true})

	if len(set.pages) > 1 {
		e.numberPages(set.pages, loc, st.small, col.x, col.width, st.footerY(e.size))
	}
	return e.newDocument(loc, tpl.Style, set.pages), nil
}

func (e *Engine) letterHeadCompliant(set *pageSet, letter *types.CoverLetterContent, st style) *column {
	set.decorate = func(p *Page) {
		if p.Number != 1 {
			return
		}
		for _, y := range []float64{foldMarkUpperMM, foldMarkLowerMM} {
			p.Elements = append(p.Elements, Element{Kind: ElementRule, Rect: Rect{X: mm(4), Y: mm(y), W: mm(5), H: 0.5}, Fill: "#9ca3af", Section: SectionMarks})
		}
		p.Elements = append(p.Elements, Element{Kind: ElementRule, Rect: Rect{X: mm(4), Y: e.size.Height / 2, W: mm(7), H: 0.5}, Fill: "#9ca3af", Section: SectionMarks})
	}

	left := mm(windowLeftMM)
	width := e.size.Width - left - mm(letterRightMM)
	col := newColumn(set, left, width, mm(subjectTopMM), mm(20), e.size.Height-mm(letterBottomMM))

	returnFont := Font{Size: returnAddressSize, Color: st.muted.Color}
	if line := ReturnAddress(letter.Sender); line != "" {
		y := mm(windowTopMM) + mm(returnZoneMM) - LineHeight(returnFont) - 2
		emitAt(set, 0, left, y, row{height: LineHeight(returnFont), elements: []Element{
			textElement(line, returnFont, mm(windowWidthMM), SectionReturn, AlignLeft),
		}})
	}
	y := mm(windowTopMM) + mm(returnZoneMM)
	for _, r := range textRows(letter.Recipient, st.body, mm(windowWidthMM), SectionRecipient, AlignLeft) {
		y = emitAt(set, 0, left, y, r)
	}

	infoX := mm(infoLeftMM)
	infoWidth := e.size.Width - infoX - mm(letterRightMM)
	y = mm(infoTopMM)
	for _, r := range textRows(letter.Sender, st.small, infoWidth, SectionSender, AlignLeft) {
		y = emitAt(set, 0, infoX, y, r)
	}
	y += LineHeight(st.small)
	for _, r := range textRows(letter.Date, st.small, infoWidth, SectionDate, AlignLeft) {
		y = emitAt(set, 0, infoX, y, r)
	}

	if y+paragraphSpacing > col.y {
		col.y = y + paragraphSpacing
	}
	return col
}

func (e *Engine) letterHeadFormal(set *pageSet, letter *types.CoverLetterContent, st style) *column {
	width := e.size.Width - 2*st.marginX
	col := newColumn(set, st.marginX, width, st.marginTop, st.marginTop, e.size.Height-st.marginBottom)

	col.place(block{rows: textRows(letter.Sender, st.muted, width, SectionSender, AlignRight), atomic: true})
	col.skip(LineHeight(st.body) * 2)
	col.place(block{rows: textRows(letter.Recipient, st.body, width/2, SectionRecipient, AlignLeft), atomic: true})
	col.skip(LineHeight(st.body))
	col.place(block{rows: textRows(letter.Date, st.body, width, SectionDate, AlignRight), atomic: true})
	col.skip(LineHeight(st.body))
	return col
}

func (e *Engine) letterHeadBanded(set *pageSet, letter *types.CoverLetterContent, st style) *column {
	set.decorate = func(p *Page) {
		if p.Number == 1 {
			p.Elements = append(p.Elements, Element{Kind: ElementBox, Rect: Rect{W: e.size.Width, H: letterBandHeight}, Fill: st.bandFill, Section: SectionSender})
		}
	}
	width := e.size.Width - 2*st.marginX
	col := newColumn(set, st.marginX, width, letterBandHeight+24, st.marginTop, e.size.Height-st.marginBottom)

	lines := nonEmptyLines(letter.Sender)
	nameFont := st.name
	nameFont.Size = 20
	y := 22.0
	if len(lines) > 0 {
		for _, r := range textRows(lines[0], nameFont, width, SectionSender, AlignLeft) {
			y = emitAt(set, 0, st.marginX, y, r)
		}
	}
	if len(lines) > 1 {
		for _, r := range textRows(strings.Join(lines[1:], " · "), st.bandText, width, SectionSender, AlignLeft) {
			y = emitAt(set, 0, st.marginX, y, r)
		}
	}

	col.place(block{rows: textRows(letter.Recipient, st.body, width/2, SectionRecipient, AlignLeft), atomic: true})
	col.skip(LineHeight(st.body))
	col.place(block{rows: textRows(letter.Date, st.body, width, SectionDate, AlignRight), atomic: true})
	col.skip(LineHeight(st.body))
	return col
}

// ReturnAddress condenses the postal part of a sender block into one line, e.g.
// "Jane Doe · Hauptstr. 1 · 10115 Berlin". Email and phone lines are left out.
func ReturnAddress(sender string) string {
	var parts []string
	for _, line := range nonEmptyLines(sender) {
		if strings.Contains(line, "@") || phoneLine.MatchString(line) {
			continue
		}
		parts = append(parts, line)
		if len(parts) == 3 {
			break
		}
	}
	return strings.Join(parts, " · ")
}

// closingRows leaves room for a signature between the closing formula and the name.
func closingRows(closing string, f Font, width float64) []row {
	lines := nonEmptyLines(closing)
	if len(lines) == 0 {
		return nil
	}
	rows := textRows(lines[0], f, width, SectionClosing, AlignLeft)
	if len(lines) > 1 {
		rows = append(rows, gapRow(signatureSpacing))
		rows = append(rows, textRows(strings.Join(lines[1:], "\n"), f, width, SectionClosing, AlignLeft)...)
	}
	return rows
}

// paragraphs splits text on blank lines.
func paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
