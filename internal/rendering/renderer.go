// Package rendering turns laid-out page streams into HTML, PDF, PNG previews and text.
package rendering

import (
	"context"

	"github.com/jonathan/application-tailor/internal/layout"
)

// Renderer produces downloadable artifacts from laid-out documents.
type Renderer struct {
	browser Browser
}

// NewRenderer creates a Renderer that converts through browser.
func NewRenderer(browser Browser) *Renderer {
	return &Renderer{browser: browser}
}

// PDF renders every page of doc into one PDF.
func (r *Renderer) PDF(ctx context.Context, doc *layout.Document) ([]byte, error) {
	html, err := HTML(doc)
	if err != nil {
		return nil, err
	}
	pdf, err := r.browser.PrintPDF(ctx, html, doc.Size)
	if err != nil {
		return nil, &RenderError{Format: FormatPDF, Message: "failed to print", Cause: err}
	}
	if len(pdf) == 0 {
		return nil, &RenderError{Format: FormatPDF, Message: "browser returned no data"}
	}
	return pdf, nil
}

// PreviewPNG renders page n (1-based) of doc as a PNG image.
func (r *Renderer) PreviewPNG(ctx context.Context, doc *layout.Document, n int, scale float64) ([]byte, error) {
	html, err := PageHTML(doc, n)
	if err != nil {
		return nil, err
	}
	png, err := r.browser.Screenshot(ctx, html, doc.Size, scale)
	if err != nil {
		return nil, &RenderError{Format: FormatPNG, Page: n, Message: "failed to capture", Cause: err}
	}
	if len(png) == 0 {
		return nil, &RenderError{Format: FormatPNG, Page: n, Message: "browser returned no data"}
	}
	return png, nil
}
