// Package db persists profiles, jobs and generated documents in PostgreSQL or SQLite.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/application-tailor/internal/types"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence boundary of the pipeline.
type Store interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*types.Profile, error)
	SaveProfile(ctx context.Context, p *types.Profile) error
	GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error)
	SaveJob(ctx context.Context, j *types.Job) error
	// ListApplications returns the profile's jobs, oldest first.
	ListApplications(ctx context.Context, profileID uuid.UUID) ([]types.Job, error)
	SaveDocument(ctx context.Context, d *types.Document) error
	GetDocument(ctx context.Context, id uuid.UUID) (*types.Document, error)
	// ReplaceDocumentContent overwrites the stored content wholesale. The new content must
	// be of the same kind as the stored one.
	ReplaceDocumentContent(ctx context.Context, id uuid.UUID, content types.Content) (*types.Document, error)
	Close() error
}

var (
	_ Store = (*Postgres)(nil)
	_ Store = (*SQLite)(nil)
)

// Open connects to PostgreSQL when databaseURL is set and falls back to a SQLite file at
// sqlitePath otherwise. Pending migrations are applied in both cases.
func Open(ctx context.Context, databaseURL, sqlitePath string) (Store, error) {
	if databaseURL != "" {
		pg, err := Connect(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		return pg, nil
	}
	return OpenSQLite(ctx, sqlitePath)
}

func prepareProfile(p *types.Profile, now time.Time) error {
	if p == nil {
		return &types.InputError{Field: "profile", Message: "profile is required"}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.UpdatedAt = now
	return nil
}

func prepareJob(j *types.Job, now time.Time) error {
	if j == nil {
		return &types.InputError{Field: "job", Message: "job is required"}
	}
	if j.ProfileID == uuid.Nil {
		return &types.InputError{Field: "profile_id", Message: "job must belong to a profile"}
	}
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = types.StatusDraft
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	return nil
}

func prepareDocument(d *types.Document, now time.Time) error {
	if d == nil || d.Content == nil {
		return &types.InputError{Field: "content", Message: "document content is required"}
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
	return nil
}

// checkReplacement rejects content whose kind differs from the stored document.
func checkReplacement(stored *types.Document, content types.Content) error {
	if content == nil {
		return &types.InputError{Field: "content", Message: "content is required"}
	}
	if stored.Kind() != content.Kind() {
		return &types.InputError{
			Field:   "kind",
			Message: fmt.Sprintf("document %s holds %s content, got %s", stored.ID, stored.Kind(), content.Kind()),
		}
	}
	return nil
}

func decodeProfile(data []byte) (*types.Profile, error) {
	var p types.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &p, nil
}

func decodeJob(data []byte) (*types.Job, error) {
	var j types.Job
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}
	return &j, nil
}

func encodeDocument(d *types.Document) (template, content []byte, err error) {
	template, err = json.Marshal(d.Template)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode template: %w", err)
	}
	content, err = types.MarshalContent(d.Content)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode content: %w", err)
	}
	return template, content, nil
}

func decodeDocument(d *types.Document, template, content []byte) error {
	if err := json.Unmarshal(template, &d.Template); err != nil {
		return fmt.Errorf("failed to decode template: %w", err)
	}
	c, err := types.UnmarshalContent(content)
	if err != nil {
		return fmt.Errorf("failed to decode content: %w", err)
	}
	d.Content = c
	return nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
