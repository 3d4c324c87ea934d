package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/jonathan/application-tailor/internal/types"
)

// SQLite stores everything in a single SQLite file. Timestamps are RFC 3339 text.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the database at dsn and applies migrations.
func OpenSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection keeps in-memory databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := runMigrations(ctx, db, "sqlite3", sqliteMigrations); err != nil {
		db.Close()
		return nil, err
	}
	return NewSQLite(db), nil
}

// NewSQLite wraps an already migrated database handle.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, now: utcNow}
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// MigrationVersion returns the current schema version.
func (s *SQLite) MigrationVersion(ctx context.Context) (int64, error) {
	return migrationVersion(ctx, s.db, "sqlite3")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// GetProfile retrieves a profile by ID.
func (s *SQLite) GetProfile(ctx context.Context, id uuid.UUID) (*types.Profile, error) {
	var data, updatedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT data, updated_at FROM profiles WHERE id = ?`, id.String(),
	).Scan(&data, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}

	p, err := decodeProfile([]byte(data))
	if err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

// SaveProfile inserts or replaces a profile. A missing ID is generated.
func (s *SQLite) SaveProfile(ctx context.Context, p *types.Profile) error {
	if err := prepareProfile(p, s.now()); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, full_name, data, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET full_name = excluded.full_name, data = excluded.data, updated_at = excluded.updated_at`,
		p.ID.String(), p.Personal.FullName, string(data), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", p.ID, err)
	}
	return nil
}

// GetJob retrieves a job by ID.
func (s *SQLite) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM jobs WHERE id = ?`, id.String()).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job %s: %w", id, err)
	}
	return decodeJob([]byte(data))
}

// SaveJob inserts or replaces a job. A missing ID is generated; new jobs start as drafts.
func (s *SQLite) SaveJob(ctx context.Context, j *types.Job) error {
	if err := prepareJob(j, s.now()); err != nil {
		return err
	}
	data, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}
	var appliedAt sql.NullString
	if j.AppliedAt != nil {
		appliedAt = sql.NullString{String: formatTime(*j.AppliedAt), Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, profile_id, company, title, status, applied_at, data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET company = excluded.company, title = excluded.title,
		   status = excluded.status, applied_at = excluded.applied_at, data = excluded.data`,
		j.ID.String(), j.ProfileID.String(), j.Company, j.Title, string(j.Status), appliedAt, string(data), formatTime(j.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save job %s: %w", j.ID, err)
	}
	return nil
}

// ListApplications returns all jobs of a profile, oldest first.
func (s *SQLite) ListApplications(ctx context.Context, profileID uuid.UUID) ([]types.Job, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM jobs WHERE profile_id = ? ORDER BY created_at, id`, profileID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var jobs []types.Job
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		j, err := decodeJob([]byte(data))
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return jobs, nil
}

// SaveDocument inserts or replaces a generated document.
func (s *SQLite) SaveDocument(ctx context.Context, d *types.Document) error {
	if err := prepareDocument(d, s.now()); err != nil {
		return err
	}
	template, content, err := encodeDocument(d)
	if err != nil {
		return err
	}
	var jobID sql.NullString
	if d.JobID != nil {
		jobID = sql.NullString{String: d.JobID.String(), Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, profile_id, job_id, kind, template, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET template = excluded.template, content = excluded.content,
		   updated_at = excluded.updated_at`,
		d.ID.String(), d.ProfileID.String(), jobID, string(d.Kind()), string(template), string(content),
		formatTime(d.CreatedAt), formatTime(d.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", d.ID, err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *SQLite) GetDocument(ctx context.Context, id uuid.UUID) (*types.Document, error) {
	var (
		profileID, template, content, createdAt, updatedAt string
		jobID                                              sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT profile_id, job_id, template, content, created_at, updated_at FROM documents WHERE id = ?`,
		id.String(),
	).Scan(&profileID, &jobID, &template, &content, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}

	d := &types.Document{ID: id}
	if d.ProfileID, err = uuid.Parse(profileID); err != nil {
		return nil, fmt.Errorf("invalid profile id on document %s: %w", id, err)
	}
	if jobID.Valid {
		jid, err := uuid.Parse(jobID.String)
		if err != nil {
			return nil, fmt.Errorf("invalid job id on document %s: %w", id, err)
		}
		d.JobID = &jid
	}
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if err := decodeDocument(d, []byte(template), []byte(content)); err != nil {
		return nil, err
	}
	return d, nil
}

// ReplaceDocumentContent overwrites a document's content with an edited version.
func (s *SQLite) ReplaceDocumentContent(ctx context.Context, id uuid.UUID, content types.Content) (*types.Document, error) {
	d, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkReplacement(d, content); err != nil {
		return nil, err
	}
	data, err := types.MarshalContent(content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content: %w", err)
	}

	d.Content = content
	d.UpdatedAt = s.now()
	_, err = s.db.ExecContext(ctx,
		`UPDATE documents SET content = ?, updated_at = ? WHERE id = ?`,
		string(data), formatTime(d.UpdatedAt), id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to replace content of document %s: %w", id, err)
	}
	return d, nil
}
