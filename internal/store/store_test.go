package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/concursohub/crawler/internal/domain"
	"github.com/concursohub/crawler/internal/store"
)

const postgresImage = "postgres:16-alpine"

// startPostgres spins up a disposable Postgres with the schema applied.
func startPostgres(t *testing.T) *sqlx.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("concursohub"),
		postgres.WithUsername("crawler"),
		postgres.WithPassword("crawler"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, testcontainers.TerminateContainer(container))
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, store.Migrate(ctx, db))
	return db
}

func posting(link, runTag string) *domain.Posting {
	return &domain.Posting{
		Link:         "https://listings.test/" + link,
		Title:        "Concurso " + link,
		Organization: "Prefeitura de Teste",
		Type:         domain.PostingTypeConcurso,
		Salary:       "R$ 2.000,00",
		MinSalary:    2000,
		MaxSalary:    2000,
		Vacancies:    "2 vagas",
		VacancyCount: 2,
		RunTag:       runTag,
	}
}

func TestPostingRepository(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	repo := store.NewPostingRepository(db)

	t.Run("upsert keyed by link", func(t *testing.T) {
		logoPath := "logos/a.png"
		first := posting("a", "run-1")
		first.LogoPath = &logoPath

		require.NoError(t, repo.UpsertBatch(ctx, []*domain.Posting{first, posting("b", "run-1")}))

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 2, count)

		// The same link again does not create a second row.
		update := posting("a", "run-2")
		update.Title = "Concurso a retificado"
		update.MentionedStates = []string{"RJ"}
		require.NoError(t, repo.UpsertBatch(ctx, []*domain.Posting{update}))

		count, err = repo.Count(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 2, count)

		rows, err := repo.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, rows, 2)
	})

	t.Run("logo path survives an update without one", func(t *testing.T) {
		paths, err := repo.LogoPaths(ctx)
		require.NoError(t, err)
		require.Equal(t, map[string]string{"https://listings.test/a": "logos/a.png"}, paths)
	})

	t.Run("stale rows are deleted by run tag", func(t *testing.T) {
		// "a" carries run-2 after the update; "b" still carries run-1.
		deleted, err := repo.DeleteStale(ctx, "run-2")
		require.NoError(t, err)
		require.EqualValues(t, 1, deleted)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 1, count)
	})

	t.Run("list orders by deadline soonest first", func(t *testing.T) {
		soon := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
		later := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)

		withSoon := posting("soon", "run-2")
		withSoon.DeadlineDate = &soon
		withLater := posting("later", "run-2")
		withLater.DeadlineDate = &later
		require.NoError(t, repo.UpsertBatch(ctx, []*domain.Posting{withLater, withSoon}))

		rows, err := repo.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		require.Equal(t, "https://listings.test/soon", rows[0].Link)
		require.Equal(t, "https://listings.test/later", rows[1].Link)
		// "a" has no deadline and sorts last.
		require.Equal(t, "https://listings.test/a", rows[2].Link)
	})
}

func TestNewsRepository(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	repo, err := store.NewNewsRepository(db, store.NewsTable)
	require.NoError(t, err)

	item := &domain.NewsItem{
		Link:            "https://news.test/1",
		Title:           "Concurso tem edital publicado",
		PublicationDate: "2026-08-28",
		Source:          "pciconcursos-noticias",
		NormalizedTitle: "concurso tem edital publicado",
		MentionedStates: []string{"SP"},
	}
	require.NoError(t, repo.UpsertBatch(ctx, []*domain.NewsItem{item}))

	// Upserting the same link twice leaves one row.
	item.Title = "Concurso tem edital retificado"
	require.NoError(t, repo.UpsertBatch(ctx, []*domain.NewsItem{item}))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	// News and predicted tables are isolated from each other.
	predicted, err := store.NewNewsRepository(db, store.PredictedTable)
	require.NoError(t, err)
	count, err = predicted.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestNewNewsRepository_RejectsUnknownTable(t *testing.T) {
	t.Parallel()

	_, err := store.NewNewsRepository(nil, "postings")
	require.Error(t, err)
}
