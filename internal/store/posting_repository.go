package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/concursohub/crawler/internal/domain"
)

// PostingRepository handles database operations for normalized postings.
type PostingRepository struct {
	db *sqlx.DB
}

// NewPostingRepository creates a new posting repository.
func NewPostingRepository(db *sqlx.DB) *PostingRepository {
	return &PostingRepository{db: db}
}

// UpsertBatch inserts or overwrites postings keyed by link. The link is the
// sole identity: a second run with the same link overwrites the row and
// re-tags it with that run's tag.
func (r *PostingRepository) UpsertBatch(ctx context.Context, postings []*domain.Posting) error {
	if len(postings) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, p := range postings {
		p.UpdatedAt = now
		// pq encodes nil slices as NULL, which the array columns reject.
		if p.EducationLevels == nil {
			p.EducationLevels = pq.StringArray{}
		}
		if p.Roles == nil {
			p.Roles = pq.StringArray{}
		}
		if p.MentionedStates == nil {
			p.MentionedStates = pq.StringArray{}
		}
	}

	query := `
		INSERT INTO postings (
			link, title, organization, location, effective_city, logo_path,
			type, salary, min_salary, max_salary, vacancies, vacancy_count,
			education_levels, roles, mentioned_states,
			deadline_date, deadline_formatted, searchable_text,
			run_tag, updated_at
		)
		VALUES (
			:link, :title, :organization, :location, :effective_city, :logo_path,
			:type, :salary, :min_salary, :max_salary, :vacancies, :vacancy_count,
			:education_levels, :roles, :mentioned_states,
			:deadline_date, :deadline_formatted, :searchable_text,
			:run_tag, :updated_at
		)
		ON CONFLICT (link) DO UPDATE SET
			title = EXCLUDED.title,
			organization = EXCLUDED.organization,
			location = EXCLUDED.location,
			effective_city = EXCLUDED.effective_city,
			logo_path = COALESCE(EXCLUDED.logo_path, postings.logo_path),
			type = EXCLUDED.type,
			salary = EXCLUDED.salary,
			min_salary = EXCLUDED.min_salary,
			max_salary = EXCLUDED.max_salary,
			vacancies = EXCLUDED.vacancies,
			vacancy_count = EXCLUDED.vacancy_count,
			education_levels = EXCLUDED.education_levels,
			roles = EXCLUDED.roles,
			mentioned_states = EXCLUDED.mentioned_states,
			deadline_date = EXCLUDED.deadline_date,
			deadline_formatted = EXCLUDED.deadline_formatted,
			searchable_text = EXCLUDED.searchable_text,
			run_tag = EXCLUDED.run_tag,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, postings); err != nil {
		return fmt.Errorf("failed to upsert postings: %w", err)
	}

	return nil
}

// DeleteStale deletes every posting whose run tag differs from runTag,
// returning the number of rows removed. Callers gate this behind the
// minimum-viable-listing threshold.
func (r *PostingRepository) DeleteStale(ctx context.Context, runTag string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM postings WHERE run_tag <> $1`, runTag)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale postings: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted postings: %w", err)
	}

	return deleted, nil
}

// LogoPaths returns the link -> logo path map for every posting that already
// has a stored logo, so the image resolver can skip them.
func (r *PostingRepository) LogoPaths(ctx context.Context) (map[string]string, error) {
	rows := []struct {
		Link     string `db:"link"`
		LogoPath string `db:"logo_path"`
	}{}

	query := `SELECT link, logo_path FROM postings WHERE logo_path IS NOT NULL`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load logo paths: %w", err)
	}

	paths := make(map[string]string, len(rows))
	for _, row := range rows {
		paths[row.Link] = row.LogoPath
	}
	return paths, nil
}

// Count returns the number of stored postings.
func (r *PostingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM postings`); err != nil {
		return 0, fmt.Errorf("failed to count postings: %w", err)
	}
	return count, nil
}

// List returns stored postings ordered by deadline, soonest first, for the
// operator CLI.
func (r *PostingRepository) List(ctx context.Context, limit int) ([]domain.Posting, error) {
	var postings []domain.Posting
	query := `
		SELECT link, title, organization, location, effective_city, logo_path,
		       type, salary, min_salary, max_salary, vacancies, vacancy_count,
		       education_levels, roles, mentioned_states,
		       deadline_date, deadline_formatted, searchable_text,
		       run_tag, updated_at
		FROM postings
		ORDER BY deadline_date ASC NULLS LAST
		LIMIT $1
	`
	if err := r.db.SelectContext(ctx, &postings, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}
	return postings, nil
}
