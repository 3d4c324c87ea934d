package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus tracks where an application stands.
type ApplicationStatus string

// Application statuses.
const (
	StatusDraft     ApplicationStatus = "draft"
	StatusApplied   ApplicationStatus = "applied"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusRejected  ApplicationStatus = "rejected"
)

// Job is a target job posting together with its application state.
type Job struct {
	ID            uuid.UUID         `json:"id"`
	ProfileID     uuid.UUID         `json:"profile_id"`
	Company       string            `json:"company"`
	Title         string            `json:"title"`
	Notes         string            `json:"notes,omitempty"`
	ContactPerson string            `json:"contact_person,omitempty"`
	TechStack     []string          `json:"tech_stack,omitempty"`
	Address       Address           `json:"address"`
	Status        ApplicationStatus `json:"status,omitempty"`
	AppliedAt     *time.Time        `json:"applied_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at,omitempty"`
}

// SearchText returns title, company, notes and tech stack joined and lower-cased.
func (j *Job) SearchText() string {
	if j == nil {
		return ""
	}
	parts := []string{j.Title, j.Company, j.Notes}
	parts = append(parts, j.TechStack...)
	return strings.ToLower(strings.Join(parts, "\n"))
}
