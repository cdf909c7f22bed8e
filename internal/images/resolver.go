// Package images resolves listing logos into MinIO object storage.
package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/concursohub/crawler/internal/domain"
	"github.com/concursohub/crawler/internal/logger"
)

// Config represents MinIO configuration for logo storage.
type Config struct {
	// Enabled toggles logo resolution on/off.
	Enabled bool `yaml:"enabled"`
	// Endpoint is the MinIO server address (e.g. "minio:9000").
	Endpoint string `yaml:"endpoint"`
	// AccessKey for MinIO authentication.
	AccessKey string `yaml:"access_key"`
	// SecretKey for MinIO authentication.
	SecretKey string `yaml:"secret_key"`
	// UseSSL enables HTTPS for MinIO connections.
	UseSSL bool `yaml:"use_ssl"`
	// Bucket is the bucket holding logo images.
	Bucket string `yaml:"bucket"`
	// Concurrency bounds parallel logo fetches within a batch.
	Concurrency int `yaml:"concurrency"`
}

// NewConfig returns a MinIO configuration with default values.
func NewConfig() Config {
	return Config{
		Enabled:     false,
		Endpoint:    "localhost:9000",
		UseSSL:      false,
		Bucket:      "listing-logos",
		Concurrency: defaultConcurrency,
	}
}

const defaultConcurrency = 4

// ImageFetcher downloads raw image bytes.
type ImageFetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Resolver fetches logos, sniffs their real format and uploads them to MinIO,
// memoizing by listing link so a logo is never fetched twice.
type Resolver struct {
	client  *miniogo.Client
	config  Config
	fetcher ImageFetcher
	log     logger.Interface

	mu    sync.Mutex
	known map[string]string // link -> stored object path
}

// NewResolver creates a logo resolver. With Enabled false it resolves nothing
// and every listing degrades to "no logo".
func NewResolver(cfg Config, fetcher ImageFetcher, log logger.Interface) (*Resolver, error) {
	r := &Resolver{
		config:  cfg,
		fetcher: fetcher,
		log:     log.WithComponent("images"),
		known:   make(map[string]string),
	}

	if !cfg.Enabled {
		r.log.Info("logo storage disabled")
		return r, nil
	}

	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	r.client = client

	return r, nil
}

// Remember seeds the memo with logo paths already on record, so those links
// skip fetch and upload entirely.
func (r *Resolver) Remember(paths map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for link, path := range paths {
		if path != "" {
			r.known[link] = path
		}
	}
}

// ResolveBatch resolves logos for a batch of postings with bounded
// concurrency, setting LogoPath on each posting that gets one. A per-item
// failure degrades only that item. Returns the number of uploads performed.
func (r *Resolver) ResolveBatch(ctx context.Context, postings []*domain.Posting, logoURLs map[string]string) int {
	if r.client == nil {
		return 0
	}

	concurrency := r.config.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	var (
		wg       sync.WaitGroup
		uploaded int64
		countMu  sync.Mutex
	)
	sem := make(chan struct{}, concurrency)

	for _, posting := range postings {
		logoURL := logoURLs[posting.Link]

		if path, ok := r.knownPath(posting.Link); ok {
			posting.LogoPath = &path
			continue
		}
		if logoURL == "" {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(p *domain.Posting, url string) {
			defer wg.Done()
			defer func() { <-sem }()

			path, err := r.resolve(ctx, p.Link, url)
			if err != nil {
				r.log.Warn("skipping logo", "link", p.Link, "error", err)
				return
			}
			p.LogoPath = &path
			countMu.Lock()
			uploaded++
			countMu.Unlock()
		}(posting, logoURL)
	}
	wg.Wait()

	return int(uploaded)
}

// resolve fetches, sniffs and uploads one logo, returning its object path.
func (r *Resolver) resolve(ctx context.Context, link, logoURL string) (string, error) {
	data, err := r.fetcher.FetchBytes(ctx, logoURL)
	if err != nil {
		return "", err
	}

	format, ok := SniffFormat(data)
	if !ok {
		return "", errors.New("unrecognized image format")
	}

	objectPath := fmt.Sprintf("logos/%s.%s", sanitizeLink(link), format.Extension)

	_, err = r.client.PutObject(
		ctx,
		r.config.Bucket,
		objectPath,
		bytes.NewReader(data),
		int64(len(data)),
		miniogo.PutObjectOptions{ContentType: format.ContentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload logo: %w", err)
	}

	r.mu.Lock()
	r.known[link] = objectPath
	r.mu.Unlock()

	r.log.Debug("uploaded logo", "object_path", objectPath, "size", len(data))
	return objectPath, nil
}

func (r *Resolver) knownPath(link string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	path, ok := r.known[link]
	return path, ok
}

var unsafePathRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// sanitizeLink derives a flat object name from a listing link.
func sanitizeLink(link string) string {
	link = strings.TrimPrefix(link, "https://")
	link = strings.TrimPrefix(link, "http://")
	return strings.Trim(unsafePathRe.ReplaceAllString(link, "-"), "-")
}
