package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// GenerateRequest asks for a new document built from a stored profile and optional job.
type GenerateRequest struct {
	ProfileID uuid.UUID    `json:"profile_id" validate:"required"`
	JobID     *uuid.UUID   `json:"job_id,omitempty"`
	Kind      DocumentKind `json:"kind" validate:"required,oneof=cv cover_letter"`
	Template  *Template    `json:"template" validate:"required"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// OverviewRequest selects the locale of an applications overview export.
type OverviewRequest struct {
	Locale Locale `json:"locale" validate:"omitempty,oneof=de en"`
}

// Validate validates the OverviewRequest using the validator.
func (r *OverviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
