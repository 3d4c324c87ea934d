package types

import "fmt"

// InputError reports a missing or malformed pipeline input. Generation is refused before any call is made.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("input error: %s", e.Message)
	}
	return fmt.Sprintf("input error: %s: %s", e.Field, e.Message)
}
