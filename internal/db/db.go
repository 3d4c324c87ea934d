package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/jonathan/application-tailor/internal/types"
)

// Postgres wraps a PostgreSQL connection pool
type Postgres struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool, now: utcNow}, nil
}

// Close closes the connection pool
func (db *Postgres) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

// Migrate applies pending schema migrations.
func (db *Postgres) Migrate(ctx context.Context) error {
	sqlDB := stdlib.OpenDBFromPool(db.pool)
	defer sqlDB.Close()
	return runMigrations(ctx, sqlDB, "pgx", postgresMigrations)
}

// MigrationVersion returns the current schema version.
func (db *Postgres) MigrationVersion(ctx context.Context) (int64, error) {
	sqlDB := stdlib.OpenDBFromPool(db.pool)
	defer sqlDB.Close()
	return migrationVersion(ctx, sqlDB, "pgx")
}

// GetProfile retrieves a profile by ID
func (db *Postgres) GetProfile(ctx context.Context, id uuid.UUID) (*types.Profile, error) {
	var (
		data      []byte
		updatedAt time.Time
	)
	err := db.pool.QueryRow(ctx,
		`SELECT data, updated_at FROM profiles WHERE id = $1`, id,
	).Scan(&data, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}

	p, err := decodeProfile(data)
	if err != nil {
		return nil, err
	}
	p.ID = id
	p.UpdatedAt = updatedAt.UTC()
	return p, nil
}

// SaveProfile inserts or replaces a profile. A missing ID is generated.
func (db *Postgres) SaveProfile(ctx context.Context, p *types.Profile) error {
	if err := prepareProfile(p, db.now()); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (id, full_name, data, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET full_name = $2, data = $3, updated_at = $4`,
		p.ID, p.Personal.FullName, data, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", p.ID, err)
	}
	return nil
}

// GetJob retrieves a job by ID
func (db *Postgres) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT data FROM jobs WHERE id = $1`, id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job %s: %w", id, err)
	}
	return decodeJob(data)
}

// SaveJob inserts or replaces a job. A missing ID is generated; new jobs start as drafts.
func (db *Postgres) SaveJob(ctx context.Context, j *types.Job) error {
	if err := prepareJob(j, db.now()); err != nil {
		return err
	}
	data, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO jobs (id, profile_id, company, title, status, applied_at, data, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET company = $3, title = $4, status = $5, applied_at = $6, data = $7`,
		j.ID, j.ProfileID, j.Company, j.Title, string(j.Status), j.AppliedAt, data, j.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save job %s: %w", j.ID, err)
	}
	return nil
}

// ListApplications returns all jobs of a profile, oldest first
func (db *Postgres) ListApplications(ctx context.Context, profileID uuid.UUID) ([]types.Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT data FROM jobs WHERE profile_id = $1 ORDER BY created_at, id`, profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var jobs []types.Job
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		j, err := decodeJob(data)
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

// SaveDocument inserts or replaces a generated document
func (db *Postgres) SaveDocument(ctx context.Context, d *types.Document) error {
	if err := prepareDocument(d, db.now()); err != nil {
		return err
	}
	template, content, err := encodeDocument(d)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO documents (id, profile_id, job_id, kind, template, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET template = $5, content = $6, updated_at = $8`,
		d.ID, d.ProfileID, d.JobID, string(d.Kind()), template, content, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", d.ID, err)
	}
	return nil
}

// GetDocument retrieves a document by ID
func (db *Postgres) GetDocument(ctx context.Context, id uuid.UUID) (*types.Document, error) {
	d := &types.Document{ID: id}
	var template, content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT profile_id, job_id, template, content, created_at, updated_at
		 FROM documents WHERE id = $1`, id,
	).Scan(&d.ProfileID, &d.JobID, &template, &content, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	if err := decodeDocument(d, template, content); err != nil {
		return nil, err
	}
	d.CreatedAt, d.UpdatedAt = d.CreatedAt.UTC(), d.UpdatedAt.UTC()
	return d, nil
}

// ReplaceDocumentContent overwrites a document's content with an edited version
func (db *Postgres) ReplaceDocumentContent(ctx context.Context, id uuid.UUID, content types.Content) (*types.Document, error) {
	d, err := db.GetDocument(ctx, id)
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
	d.UpdatedAt = db.now()
	_, err = db.pool.Exec(ctx,
		`UPDATE documents SET content = $2, updated_at = $3 WHERE id = $1`,
		id, data, d.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to replace content of document %s: %w", id, err)
	}
	return d, nil
}
