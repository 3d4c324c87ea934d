package types

import (
	"github.com/go-playground/validator/v10"
)

// Locale is one of the supported document languages.
type Locale string

// Supported locales.
const (
	LocaleDE Locale = "de"
	LocaleEN Locale = "en"
)

// Style is a visual template variant.
type Style string

// Supported styles.
const (
	StyleFormal   Style = "formal"
	StyleEnhanced Style = "enhanced"
)

// Template selects locale, visual style and structural flags for a document.
type Template struct {
	Locale       Locale `json:"locale" validate:"required,oneof=de en"`
	Style        Style  `json:"style" validate:"required,oneof=formal enhanced"`
	Compliant    bool   `json:"compliant,omitempty"`
	IncludePhoto bool   `json:"include_photo,omitempty"`
}

// Validate validates the Template using the validator.
func (t *Template) Validate() error {
	validate := validator.New()
	return validate.Struct(t)
}
