package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/application-tailor/internal/assembly"
	"github.com/jonathan/application-tailor/internal/layout"
	"github.com/jonathan/application-tailor/internal/types"
)

// Session carries everything one generation or edit works on. It is created per request and
// passed explicitly; nothing about a run lives in package state.
type Session struct {
	ID        uuid.UUID
	Kind      types.DocumentKind
	ProfileID uuid.UUID
	JobID     *uuid.UUID
	Template  types.Template

	// Profile and Job are only loaded when content is generated.
	Profile *types.Profile
	Job     *types.Job

	Content types.Content
	Report  *assembly.Report
	Layout  *layout.Document

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document returns the storable form of the session.
func (s *Session) Document() *types.Document {
	return &types.Document{
		ID:        s.ID,
		ProfileID: s.ProfileID,
		JobID:     s.JobID,
		Template:  s.Template,
		Content:   s.Content,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func sessionFromDocument(d *types.Document) *Session {
	return &Session{
		ID:        d.ID,
		Kind:      d.Kind(),
		ProfileID: d.ProfileID,
		JobID:     d.JobID,
		Template:  d.Template,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
