package layout

import "fmt"

// FieldError reports content the layout engine cannot place. Field is the path of the
// offending value, e.g. "experience[1].title".
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("layout error: %s: %s", e.Field, e.Message)
}
