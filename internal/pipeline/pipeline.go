// Package pipeline drives a complete scraping run for one content type:
// page-by-page source scraping, normalization, logo resolution and
// reconciliation against the store.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/concursohub/crawler/internal/domain"
	"github.com/concursohub/crawler/internal/fetch"
	"github.com/concursohub/crawler/internal/logger"
	"github.com/concursohub/crawler/internal/sources"
)

// ErrBelowSafetyThreshold reports an open-postings run that scraped too few
// listings to be trusted with stale-row deletion. The run writes nothing.
var ErrBelowSafetyThreshold = errors.New("raw listing count below safety threshold")

// Default orchestration settings.
const (
	DefaultMaxPages          = 5
	DefaultPageDelay         = 250 * time.Millisecond
	DefaultBatchSize         = 100
	DefaultEmptyPageLimit    = 5
	DefaultMinViableListings = 500
)

// Config configures a pipeline run.
type Config struct {
	// MaxPages bounds the pages visited per source.
	MaxPages int `yaml:"max_pages"`
	// PageDelay throttles requests between pages of one source.
	PageDelay time.Duration `yaml:"page_delay"`
	// BatchSize is the number of rows per upsert batch.
	BatchSize int `yaml:"batch_size"`
	// EmptyPageLimit stops a source after this many consecutive pages
	// yielding no new listings.
	EmptyPageLimit int `yaml:"empty_page_limit"`
	// MinViableListings gates stale deletion for open postings: a run that
	// scrapes fewer raw listings aborts with no writes. Guards against a
	// source silently changing its markup and wiping the dataset.
	MinViableListings int `yaml:"min_viable_listings"`
}

// NewConfig returns a pipeline configuration with default values.
func NewConfig() Config {
	return Config{
		MaxPages:          DefaultMaxPages,
		PageDelay:         DefaultPageDelay,
		BatchSize:         DefaultBatchSize,
		EmptyPageLimit:    DefaultEmptyPageLimit,
		MinViableListings: DefaultMinViableListings,
	}
}

// PageFetcher retrieves page bodies.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// PostingStore persists normalized postings.
type PostingStore interface {
	UpsertBatch(ctx context.Context, postings []*domain.Posting) error
	DeleteStale(ctx context.Context, runTag string) (int64, error)
	LogoPaths(ctx context.Context) (map[string]string, error)
}

// NewsStore persists news or predicted items.
type NewsStore interface {
	UpsertBatch(ctx context.Context, items []*domain.NewsItem) error
}

// LogoResolver resolves listing logos into object storage.
type LogoResolver interface {
	Remember(paths map[string]string)
	ResolveBatch(ctx context.Context, postings []*domain.Posting, logoURLs map[string]string) int
}

// Runner executes scraping runs.
type Runner struct {
	fetcher   PageFetcher
	postings  PostingStore
	news      NewsStore
	predicted NewsStore
	logos     LogoResolver
	log       logger.Interface
	cfg       Config
}

// NewRunner creates a pipeline runner.
func NewRunner(
	fetcher PageFetcher,
	postings PostingStore,
	news NewsStore,
	predicted NewsStore,
	logos LogoResolver,
	log logger.Interface,
	cfg Config,
) *Runner {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.EmptyPageLimit <= 0 {
		cfg.EmptyPageLimit = DefaultEmptyPageLimit
	}

	return &Runner{
		fetcher:   fetcher,
		postings:  postings,
		news:      news,
		predicted: predicted,
		logos:     logos,
		log:       log.WithComponent("pipeline"),
		cfg:       cfg,
	}
}

// Run executes one complete run for a content type against the default
// sources.
func (r *Runner) Run(ctx context.Context, ct domain.ContentType) (*domain.RunResult, error) {
	return r.RunSources(ctx, ct, sources.ForContentType(ct))
}

// RunSources executes one complete run for a content type against the given
// sources. The run tag correlates every row it touches.
func (r *Runner) RunSources(
	ctx context.Context,
	ct domain.ContentType,
	srcs []sources.Source,
) (*domain.RunResult, error) {
	runTag := uuid.NewString()
	log := r.log.WithRunID(runTag)
	started := time.Now()

	log.Info("run started", "content_type", string(ct), "sources", len(srcs))

	seen := newSeenLinks()
	var raw []domain.RawListing
	for _, src := range srcs {
		listings := r.scrapeSource(ctx, src, seen, log)
		raw = append(raw, listings...)
		log.Info("source finished",
			"source", src.Name(),
			"listings", len(listings))
	}

	result, err := r.reconcile(ctx, ct, runTag, raw, log)
	if err != nil {
		return nil, err
	}

	log.Info("run finished",
		"content_type", string(ct),
		"raw", result.RawCount,
		"upserted", result.Upserted,
		"logos", result.LogosUploaded,
		"deleted", result.StaleDeleted,
		"duration", time.Since(started))

	return result, nil
}

// scrapeSource walks a source page by page, collecting listings not seen
// earlier in this run. A page-parse failure skips the page; a fetch-exhausted
// failure aborts only this source.
func (r *Runner) scrapeSource(
	ctx context.Context,
	src sources.Source,
	seen *seenLinks,
	log logger.Interface,
) []domain.RawListing {
	log = log.WithSource(src.Name())

	var collected []domain.RawListing
	emptyPages := 0

	for page := 1; page <= r.cfg.MaxPages; page++ {
		if page > 1 && r.cfg.PageDelay > 0 {
			select {
			case <-ctx.Done():
				log.Warn("source aborted", "page", page, "error", ctx.Err())
				return collected
			case <-time.After(r.cfg.PageDelay):
			}
		}

		pageURL := src.PageURL(page)
		body, err := r.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			// Retries are spent inside the fetcher; whatever reaches
			// here ends this source. Other sources still run.
			log.Error("fetch failed, aborting source", "page", page, "error", err)
			return collected
		}

		listings, err := src.ParsePage(pageURL, body)
		if err != nil {
			log.Warn("page parse failed, skipping page", "page", page, "error", err)
			continue
		}

		fresh := 0
		for _, l := range listings {
			if l.Link == "" || !seen.add(l.Link) {
				continue
			}
			collected = append(collected, l)
			fresh++
		}

		if fresh == 0 {
			emptyPages++
			if emptyPages >= r.cfg.EmptyPageLimit {
				log.Info("stopping source after consecutive empty pages",
					"page", page,
					"empty_pages", emptyPages)
				return collected
			}
			continue
		}
		emptyPages = 0
	}

	return collected
}

// reconcile applies a run's raw listings to the store.
func (r *Runner) reconcile(
	ctx context.Context,
	ct domain.ContentType,
	runTag string,
	raw []domain.RawListing,
	log logger.Interface,
) (*domain.RunResult, error) {
	result := &domain.RunResult{
		ContentType: ct,
		RunTag:      runTag,
		RawCount:    len(raw),
	}

	switch ct {
	case domain.ContentOpen:
		return result, r.reconcileOpen(ctx, runTag, raw, result, log)
	case domain.ContentPredicted:
		return result, r.reconcileNews(ctx, r.predicted, raw, result)
	case domain.ContentNews:
		return result, r.reconcileNews(ctx, r.news, raw, result)
	default:
		return nil, fmt.Errorf("unknown content type %q", ct)
	}
}

// reconcileOpen upserts open postings and deletes rows not touched by this
// run. The safety threshold is checked before any write: a short scrape means
// a source likely changed its markup, and deleting against it would wipe the
// dataset.
func (r *Runner) reconcileOpen(
	ctx context.Context,
	runTag string,
	raw []domain.RawListing,
	result *domain.RunResult,
	log logger.Interface,
) error {
	if len(raw) < r.cfg.MinViableListings {
		return fmt.Errorf("%w: got %d, need %d",
			ErrBelowSafetyThreshold, len(raw), r.cfg.MinViableListings)
	}

	existing, err := r.postings.LogoPaths(ctx)
	if err != nil {
		return err
	}
	r.logos.Remember(existing)

	for start := 0; start < len(raw); start += r.cfg.BatchSize {
		end := min(start+r.cfg.BatchSize, len(raw))

		batch := make([]*domain.Posting, 0, end-start)
		logoURLs := make(map[string]string, end-start)
		for _, l := range raw[start:end] {
			batch = append(batch, buildPosting(l, runTag))
			if l.LogoURL != "" {
				logoURLs[l.Link] = l.LogoURL
			}
		}

		result.LogosUploaded += r.logos.ResolveBatch(ctx, batch, logoURLs)

		if err := r.postings.UpsertBatch(ctx, batch); err != nil {
			return err
		}
		result.Upserted += len(batch)
	}

	deleted, err := r.postings.DeleteStale(ctx, runTag)
	if err != nil {
		return err
	}
	result.StaleDeleted = int(deleted)

	log.Info("reconciled open postings",
		"upserted", result.Upserted,
		"deleted", deleted)
	return nil
}

// reconcileNews upserts news or predicted items in batches. These datasets
// are upsert-only; staleness deletion never applies.
func (r *Runner) reconcileNews(
	ctx context.Context,
	store NewsStore,
	raw []domain.RawListing,
	result *domain.RunResult,
) error {
	for start := 0; start < len(raw); start += r.cfg.BatchSize {
		end := min(start+r.cfg.BatchSize, len(raw))

		batch := make([]*domain.NewsItem, 0, end-start)
		for _, l := range raw[start:end] {
			batch = append(batch, buildNewsItem(l))
		}

		if err := store.UpsertBatch(ctx, batch); err != nil {
			return err
		}
		result.Upserted += len(batch)
	}
	return nil
}

// seenLinks is the run-scoped set preventing duplicate upserts when the same
// listing appears on multiple pages or sources. Synchronized because sources
// may be driven concurrently.
type seenLinks struct {
	mu    sync.Mutex
	links map[string]bool
}

func newSeenLinks() *seenLinks {
	return &seenLinks{links: make(map[string]bool)}
}

// add records a link, reporting whether it was new.
func (s *seenLinks) add(link string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.links[link] {
		return false
	}
	s.links[link] = true
	return true
}

var _ PageFetcher = (*fetch.Fetcher)(nil)
