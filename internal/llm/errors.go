package llm

import (
	"errors"
	"fmt"
)

// PolicyError means the provider refused the prompt or its answer on content-policy grounds.
type PolicyError struct {
	Reason string
	Cause  error
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("content policy rejection: %s", e.Reason)
}

func (e *PolicyError) Unwrap() error {
	return e.Cause
}

// TransportError covers every other generation failure: network, quota, missing model, bad response.
type TransportError struct {
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed: %s", e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsPolicyRejection reports whether err is, or wraps, a *PolicyError.
func IsPolicyRejection(err error) bool {
	var pe *PolicyError
	return errors.As(err, &pe)
}

// Detail returns the underlying failure text appended to user-facing messages.
func Detail(err error) string {
	var te *TransportError
	if errors.As(err, &te) && te.Cause != nil {
		return te.Cause.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
