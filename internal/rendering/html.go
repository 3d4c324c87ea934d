package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/jonathan/application-tailor/internal/layout"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var documentTemplate = template.Must(template.ParseFS(templateFS, "templates/document.html.tmpl"))

type documentView struct {
	Lang   string
	Title  string
	Width  template.CSS
	Height template.CSS
	Pages  []pageView
}

type pageView struct {
	Number   int
	Elements []elementView
}

type elementView struct {
	Kind    string
	Style   template.CSS
	Text    string
	URL     string
	Section string
}

// HTML renders every page of doc as one printable HTML document. Elements are absolutely
// positioned in points, so the browser reproduces the layout without reflowing text.
func HTML(doc *layout.Document) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, &RenderError{Format: FormatHTML, Message: "document has no pages"}
	}
	return execute(doc, doc.Pages)
}

// PageHTML renders only page n (1-based), sized as a single sheet, for previews.
func PageHTML(doc *layout.Document, n int) ([]byte, error) {
	if doc == nil || n < 1 || n > len(doc.Pages) {
		return nil, &RenderError{Format: FormatHTML, Page: n, Message: "no such page", Cause: ErrPageOutOfRange}
	}
	return execute(doc, doc.Pages[n-1:n])
}

func execute(doc *layout.Document, pages []layout.Page) ([]byte, error) {
	view := documentView{
		Lang:   string(doc.Locale),
		Title:  fmt.Sprintf("%s document", doc.Style),
		Width:  template.CSS(pt(doc.Size.Width)),
		Height: template.CSS(pt(doc.Size.Height)),
	}
	for _, p := range pages {
		pv := pageView{Number: p.Number}
		for _, el := range p.Elements {
			pv.Elements = append(pv.Elements, elementView{
				Kind:    string(el.Kind),
				Style:   elementStyle(el),
				Text:    el.Text,
				URL:     el.URL,
				Section: el.Section,
			})
		}
		view.Pages = append(view.Pages, pv)
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, view); err != nil {
		return nil, &TemplateError{Pages: len(pages), Cause: err}
	}
	return buf.Bytes(), nil
}

// elementStyle builds the inline CSS for one element. All values come from the layout
// engine, never from user text.
func elementStyle(el layout.Element) template.CSS {
	var sb strings.Builder
	fmt.Fprintf(&sb, "left:%spt;top:%spt;width:%spt;height:%spt;", pt(el.Rect.X), pt(el.Rect.Y), pt(el.Rect.W), pt(el.Rect.H))

	switch el.Kind {
	case layout.ElementBox, layout.ElementRule:
		if el.Fill != "" {
			fmt.Fprintf(&sb, "background:%s;", el.Fill)
		}
	case layout.ElementText, layout.ElementHeading:
		fmt.Fprintf(&sb, "font-size:%spt;", pt(el.Font.Size))
		if el.Font.Bold {
			sb.WriteString("font-weight:bold;")
		}
		if el.Font.Color != "" {
			fmt.Fprintf(&sb, "color:%s;", el.Font.Color)
		}
		if el.Align != "" && el.Align != layout.AlignLeft {
			fmt.Fprintf(&sb, "text-align:%s;", el.Align)
		}
	}
	return template.CSS(sb.String())
}

func pt(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
