package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/concursohub/crawler/internal/domain"
)

// News tables. News and predicted postings share one row shape.
const (
	NewsTable      = "news_items"
	PredictedTable = "predicted_items"
)

// NewsRepository handles database operations for news and predicted items.
type NewsRepository struct {
	db    *sqlx.DB
	table string
}

// NewNewsRepository creates a repository over the given table, which must be
// NewsTable or PredictedTable.
func NewNewsRepository(db *sqlx.DB, table string) (*NewsRepository, error) {
	if table != NewsTable && table != PredictedTable {
		return nil, fmt.Errorf("unknown news table %q", table)
	}
	return &NewsRepository{db: db, table: table}, nil
}

// UpsertBatch inserts or overwrites items keyed by link. News datasets are
// reconciled upsert-only; stale rows are never deleted.
func (r *NewsRepository) UpsertBatch(ctx context.Context, items []*domain.NewsItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, item := range items {
		item.UpdatedAt = now
		if item.MentionedStates == nil {
			item.MentionedStates = pq.StringArray{}
		}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			link, title, publication_date, source,
			normalized_title, mentioned_states, updated_at
		)
		VALUES (
			:link, :title, :publication_date, :source,
			:normalized_title, :mentioned_states, :updated_at
		)
		ON CONFLICT (link) DO UPDATE SET
			title = EXCLUDED.title,
			publication_date = EXCLUDED.publication_date,
			source = EXCLUDED.source,
			normalized_title = EXCLUDED.normalized_title,
			mentioned_states = EXCLUDED.mentioned_states,
			updated_at = EXCLUDED.updated_at
	`, r.table)

	if _, err := r.db.NamedExecContext(ctx, query, items); err != nil {
		return fmt.Errorf("failed to upsert %s: %w", r.table, err)
	}

	return nil
}

// Count returns the number of stored items.
func (r *NewsRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.table)
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.table, err)
	}
	return count, nil
}
