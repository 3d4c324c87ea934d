package rendering

import (
	"errors"
	"fmt"
)

// Output formats named in errors.
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// ErrPageOutOfRange is wrapped by errors for a page number the document does not have.
var ErrPageOutOfRange = errors.New("page out of range")

// RenderError reports that a document could not be turned into Format output.
// Page is the 1-based page concerned, or 0 when the whole document failed.
// No partial output accompanies it.
type RenderError struct {
	Format  string
	Page    int
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	where := e.Format
	if e.Page > 0 {
		where = fmt.Sprintf("%s page %d", e.Format, e.Page)
	}
	if e.Cause != nil {
		return fmt.Sprintf("render %s: %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("render %s: %s", where, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// TemplateError reports a failure executing the page template. It is a
// programming error rather than a property of the document.
type TemplateError struct {
	Pages int
	Cause error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template error rendering %d page(s): %v", e.Pages, e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
