package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-matcher/internal/catalog"
)

// -----------------------------------------------------------------------------
// Catalog Job Methods
// -----------------------------------------------------------------------------

const catalogJobsDDL = `CREATE TABLE IF NOT EXISTS catalog_jobs (
	key             TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	company         TEXT NOT NULL DEFAULT '',
	location        TEXT NOT NULL DEFAULT '',
	salary          TEXT NOT NULL DEFAULT '',
	description     TEXT NOT NULL DEFAULT '',
	required_skills TEXT[] NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const upsertCatalogJobSQL = `INSERT INTO catalog_jobs (key, title, company, location, salary, description, required_skills)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (key) DO UPDATE SET
		title = EXCLUDED.title,
		company = EXCLUDED.company,
		location = EXCLUDED.location,
		salary = EXCLUDED.salary,
		description = EXCLUDED.description,
		required_skills = EXCLUDED.required_skills,
		updated_at = NOW()`

// EnsureCatalogSchema creates the catalog_jobs table if it does not exist
func (db *DB) EnsureCatalogSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, catalogJobsDDL); err != nil {
		return fmt.Errorf("failed to create catalog_jobs table: %w", err)
	}
	return nil
}

// UpsertCatalogJob inserts or replaces a catalog job by key
func (db *DB) UpsertCatalogJob(ctx context.Context, job catalog.Job) error {
	_, err := db.pool.Exec(ctx, upsertCatalogJobSQL, catalogJobArgs(job)...)
	if err != nil {
		return fmt.Errorf("failed to upsert catalog job %s: %w", job.Key, err)
	}
	return nil
}

// SeedCatalog upserts all jobs in one transaction and returns how many were written
func (db *DB) SeedCatalog(ctx context.Context, jobs []catalog.Job) (int, error) {
	err := pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, job := range jobs {
			batch.Queue(upsertCatalogJobSQL, catalogJobArgs(job)...)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", err)
	}
	return len(jobs), nil
}

// ListCatalogJobs retrieves every catalog job ordered by key
func (db *DB) ListCatalogJobs(ctx context.Context) ([]catalog.Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT key, title, company, location, salary, description, required_skills
		 FROM catalog_jobs ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog jobs: %w", err)
	}
	defer rows.Close()

	var jobs []catalog.Job
	for rows.Next() {
		var j catalog.Job
		if err := rows.Scan(&j.Key, &j.Title, &j.Company, &j.Location, &j.Salary, &j.Description, &j.RequiredSkills); err != nil {
			return nil, fmt.Errorf("failed to scan catalog job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog jobs: %w", err)
	}
	return jobs, nil
}

// CatalogSource exposes the catalog_jobs table as a catalog.Source
func (db *DB) CatalogSource() catalog.Source {
	return catalog.SourceFunc(db.ListCatalogJobs)
}

func catalogJobArgs(job catalog.Job) []any {
	return []any{job.Key, job.Title, job.Company, job.Location, job.Salary, job.Description, job.RequiredSkills}
}
