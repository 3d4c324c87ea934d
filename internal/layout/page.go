// Package layout places canonical document content onto fixed-size pages.
//
// Layout is deterministic and side-effect free: the same content and template always
// produce the same pages, elements and coordinates. All coordinates are PostScript points
// measured from the top-left corner of the page.
package layout

import "github.com/jonathan/application-tailor/internal/types"

// Size is a page size in points.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// A4 is the only page size documents are laid out on.
var A4 = Size{Width: 595.28, Height: 841.89}

// mm converts millimetres to points.
func mm(v float64) float64 {
	return v * 72 / 25.4
}

// Rect is a positioned box.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// ElementKind identifies how an element is drawn.
type ElementKind string

// Element kinds.
const (
	ElementText    ElementKind = "text"
	ElementHeading ElementKind = "heading"
	ElementBox     ElementKind = "box"
	ElementRule    ElementKind = "rule"
	ElementImage   ElementKind = "image"
)

// Align is horizontal text alignment within an element's box.
type Align string

// Alignments.
const (
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

// Font describes how text is set.
type Font struct {
	Size  float64 `json:"size"`
	Bold  bool    `json:"bold,omitempty"`
	Color string  `json:"color,omitempty"`
}

// Element is one drawable item on a page.
type Element struct {
	Kind    ElementKind `json:"kind"`
	Rect    Rect        `json:"rect"`
	Text    string      `json:"text,omitempty"`
	Font    Font        `json:"font"`
	Fill    string      `json:"fill,omitempty"`
	Align   Align       `json:"align,omitempty"`
	Section string      `json:"section,omitempty"`
	URL     string      `json:"url,omitempty"`
}

// Page is one laid-out page. Number starts at 1.
type Page struct {
	Number   int       `json:"number"`
	Elements []Element `json:"elements"`
}

// Document is the ordered page stream produced for one piece of content.
type Document struct {
	Size   Size         `json:"size"`
	Locale types.Locale `json:"locale"`
	Style  types.Style  `json:"style"`
	Pages  []Page       `json:"pages"`
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// SectionOrder returns the sections carrying text, in order of first appearance.
// The page counter is not a section.
func (d *Document) SectionOrder() []string {
	var order []string
	seen := map[string]bool{}
	for _, p := range d.Pages {
		for _, el := range p.Elements {
			if el.Kind != ElementText && el.Kind != ElementHeading {
				continue
			}
			if el.Section == "" || el.Section == SectionFooter || seen[el.Section] {
				continue
			}
			seen[el.Section] = true
			order = append(order, el.Section)
		}
	}
	return order
}

// Texts returns the text of every text or heading element of page n (1-based) in drawing order.
func (d *Document) Texts(n int) []string {
	if n < 1 || n > len(d.Pages) {
		return nil
	}
	var out []string
	for _, el := range d.Pages[n-1].Elements {
		if el.Kind == ElementText || el.Kind == ElementHeading {
			out = append(out, el.Text)
		}
	}
	return out
}
