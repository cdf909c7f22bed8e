// Package common wires the shared dependencies used by the CLI commands.
package common

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/concursohub/crawler/internal/config"
	"github.com/concursohub/crawler/internal/fetch"
	"github.com/concursohub/crawler/internal/images"
	"github.com/concursohub/crawler/internal/logger"
	"github.com/concursohub/crawler/internal/pipeline"
	"github.com/concursohub/crawler/internal/store"
)

// Deps holds the dependencies a command needs.
type Deps struct {
	Config   *config.Config
	Logger   logger.Interface
	DB       *sqlx.DB
	Runner   *pipeline.Runner
	Postings *store.PostingRepository
}

// New builds the full dependency graph: logger, database, repositories,
// fetcher, logo resolver and pipeline runner.
func New() (*Deps, error) {
	cfg := config.Load()

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := store.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fetcher := fetch.New(cfg.Fetch, log)

	resolver, err := images.NewResolver(cfg.MinIO, fetcher, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create logo resolver: %w", err)
	}

	newsRepo, err := store.NewNewsRepository(db, store.NewsTable)
	if err != nil {
		db.Close()
		return nil, err
	}
	predictedRepo, err := store.NewNewsRepository(db, store.PredictedTable)
	if err != nil {
		db.Close()
		return nil, err
	}

	postingRepo := store.NewPostingRepository(db)

	runner := pipeline.NewRunner(
		fetcher,
		postingRepo,
		newsRepo,
		predictedRepo,
		resolver,
		log,
		cfg.Pipeline,
	)

	return &Deps{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Runner:   runner,
		Postings: postingRepo,
	}, nil
}

// Close releases held resources.
func (d *Deps) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
