package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema holds the pipeline's tables. The browsing UI and RSS generators read
// these tables; only the pipeline writes them.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS postings (
		link               TEXT PRIMARY KEY,
		title              TEXT NOT NULL,
		organization       TEXT NOT NULL DEFAULT '',
		location           TEXT NOT NULL DEFAULT '',
		effective_city     TEXT,
		logo_path          TEXT,
		type               TEXT NOT NULL DEFAULT 'concurso',
		salary             TEXT NOT NULL DEFAULT '',
		min_salary         DOUBLE PRECISION NOT NULL DEFAULT 0,
		max_salary         DOUBLE PRECISION NOT NULL DEFAULT 0,
		vacancies          TEXT NOT NULL DEFAULT '',
		vacancy_count      INTEGER NOT NULL DEFAULT 0,
		education_levels   TEXT[] NOT NULL DEFAULT '{}',
		roles              TEXT[] NOT NULL DEFAULT '{}',
		mentioned_states   TEXT[] NOT NULL DEFAULT '{}',
		deadline_date      TIMESTAMPTZ,
		deadline_formatted TEXT NOT NULL DEFAULT '',
		searchable_text    TEXT NOT NULL DEFAULT '',
		run_tag            TEXT NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_postings_run_tag ON postings (run_tag)`,
	`CREATE INDEX IF NOT EXISTS idx_postings_deadline ON postings (deadline_date)`,
	`CREATE TABLE IF NOT EXISTS news_items (
		link             TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		publication_date TEXT NOT NULL DEFAULT '',
		source           TEXT NOT NULL DEFAULT '',
		normalized_title TEXT NOT NULL DEFAULT '',
		mentioned_states TEXT[] NOT NULL DEFAULT '{}',
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS predicted_items (
		link             TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		publication_date TEXT NOT NULL DEFAULT '',
		source           TEXT NOT NULL DEFAULT '',
		normalized_title TEXT NOT NULL DEFAULT '',
		mentioned_states TEXT[] NOT NULL DEFAULT '{}',
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the pipeline's tables when they do not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
