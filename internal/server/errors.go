package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/application-tailor/internal/db"
	"github.com/jonathan/application-tailor/internal/layout"
	"github.com/jonathan/application-tailor/internal/llm"
	"github.com/jonathan/application-tailor/internal/pipeline"
	"github.com/jonathan/application-tailor/internal/schemas"
	"github.com/jonathan/application-tailor/internal/types"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	// Message is the localized text to show the user, when one exists.
	Message string               `json:"message,omitempty"`
	Field   string               `json:"field,omitempty"`
	Fields  []schemas.FieldError `json:"fields,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		inputErr      *types.InputError
		validationErr *schemas.ValidationError
		policyErr     *llm.PolicyError
		transportErr  *llm.TransportError
		fieldErr      *layout.FieldError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &inputErr), errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &policyErr), errors.As(err, &fieldErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &transportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorBody builds the response body for err in the given locale.
func errorBody(loc types.Locale, err error) ErrorResponse {
	body := ErrorResponse{
		Error:   err.Error(),
		Message: pipeline.UserMessage(loc, err),
	}

	var (
		inputErr      *types.InputError
		validationErr *schemas.ValidationError
		fieldErr      *layout.FieldError
	)
	switch {
	case errors.As(err, &validationErr):
		body.Fields = validationErr.Errors
	case errors.As(err, &fieldErr):
		body.Field = fieldErr.Field
	case errors.As(err, &inputErr):
		body.Field = inputErr.Field
	}
	return body
}

// writeError maps err to a status code and writes it with a localized message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, loc types.Locale, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "status", status, "error", err)
	} else {
		s.logger.DebugContext(r.Context(), "request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	s.jsonResponse(w, status, errorBody(loc, err))
}
