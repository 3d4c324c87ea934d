package layout

import (
	"fmt"

	"github.com/jonathan/application-tailor/internal/locale"
	"github.com/jonathan/application-tailor/internal/types"
)

// Engine lays out document content on fixed-size pages.
type Engine struct {
	size Size
}

// NewEngine returns an engine for A4 pages.
func NewEngine() *Engine {
	return &Engine{size: A4}
}

// Layout dispatches on the content kind.
func (e *Engine) Layout(content types.Content, tpl types.Template) (*Document, error) {
	switch c := content.(type) {
	case *types.CVContent:
		return e.LayoutCV(c, tpl)
	case *types.CoverLetterContent:
		return e.LayoutCoverLetter(c, tpl)
	case nil:
		return nil, &FieldError{Field: "content", Message: "no content"}
	default:
		return nil, &FieldError{Field: "kind", Message: fmt.Sprintf("unsupported content %T", content)}
	}
}

func (e *Engine) newDocument(loc types.Locale, s types.Style, pages []Page) *Document {
	return &Document{Size: e.size, Locale: loc, Style: s, Pages: pages}
}

// numberPages adds the "Page i of n" counter to every page. The total is only known once
// all content has been placed, so this runs last.
func (e *Engine) numberPages(pages []Page, loc types.Locale, f Font, x, width, y float64) {
	for i := range pages {
		el := textElement(locale.Message(loc, locale.LabelPage, i+1, len(pages)), f, width, SectionFooter, AlignRight)
		el.Rect.X = x
		el.Rect.Y = y
		pages[i].Elements = append(pages[i].Elements, el)
	}
}
