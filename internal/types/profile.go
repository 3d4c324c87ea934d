// Package types provides the data model shared by the tailoring and rendering pipeline.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Address is a postal address.
type Address struct {
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	City       string `json:"city,omitempty"`
}

// IsZero reports whether no address field is set.
func (a Address) IsZero() bool {
	return a.Street == "" && a.PostalCode == "" && a.City == ""
}

// CityLine returns "PostalCode City" with empty parts dropped.
func (a Address) CityLine() string {
	switch {
	case a.PostalCode == "":
		return a.City
	case a.City == "":
		return a.PostalCode
	default:
		return a.PostalCode + " " + a.City
	}
}

// PersonalDetails holds the contact block of a profile.
type PersonalDetails struct {
	FullName string  `json:"full_name" validate:"required"`
	Headline string  `json:"headline,omitempty"`
	Email    string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string  `json:"phone,omitempty"`
	Address  Address `json:"address"`
	PhotoURL string  `json:"photo_url,omitempty" validate:"omitempty,url"`
}

// Experience is one employment entry.
type Experience struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	Start       YearMonth  `json:"start"`
	End         *YearMonth `json:"end,omitempty"`
	Ongoing     bool       `json:"ongoing,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Education is one education entry.
type Education struct {
	Degree      string     `json:"degree"`
	Institution string     `json:"institution"`
	Location    string     `json:"location,omitempty"`
	Start       YearMonth  `json:"start"`
	End         *YearMonth `json:"end,omitempty"`
	Ongoing     bool       `json:"ongoing,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Skill is a named skill with an optional self-reported level.
type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// Language is a spoken language with a proficiency label.
type Language struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Profile is the user's stored application profile.
type Profile struct {
	ID         uuid.UUID       `json:"id"`
	Personal   PersonalDetails `json:"personal"`
	Summary    string          `json:"summary,omitempty"`
	Experience []Experience    `json:"experience"`
	Education  []Education     `json:"education"`
	Skills     []Skill         `json:"skills"`
	Languages  []Language      `json:"languages,omitempty"`
	Interests  []string        `json:"interests,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at,omitempty"`
}

// EndOrNow returns the effective end month of an experience entry.
// Ongoing entries and entries without an end date end at now.
func (e Experience) EndOrNow(now time.Time) YearMonth {
	if e.Ongoing || e.End == nil {
		return YearMonthOf(now)
	}
	return *e.End
}
