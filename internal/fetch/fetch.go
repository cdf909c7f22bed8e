// Package fetch provides the HTTP fetcher used by source adapters, with
// bounded exponential-backoff retry.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/concursohub/crawler/internal/logger"
)

// Classifiable fetch failures, checked with errors.Is.
var (
	// ErrAborted reports a caller-initiated cancellation; never retried.
	ErrAborted = errors.New("fetch aborted")
	// ErrExhausted reports that every attempt failed; it wraps the last
	// underlying error.
	ErrExhausted = errors.New("fetch attempts exhausted")
)

// Default fetch settings.
const (
	DefaultAttempts     = 3
	DefaultInitialDelay = 500 * time.Millisecond
	DefaultTimeout      = 30 * time.Second
	DefaultUserAgent    = "concursohub-crawler/1.0"
)

// Config configures the fetcher.
type Config struct {
	// Attempts is the maximum number of tries per URL.
	Attempts int `yaml:"attempts"`
	// InitialDelay is the wait before the second attempt; it doubles on
	// each subsequent attempt.
	InitialDelay time.Duration `yaml:"initial_delay"`
	// Timeout bounds a single request.
	Timeout time.Duration `yaml:"timeout"`
	// UserAgent is sent on every request.
	UserAgent string `yaml:"user_agent"`
}

// NewConfig returns a fetch configuration with default values.
func NewConfig() Config {
	return Config{
		Attempts:     DefaultAttempts,
		InitialDelay: DefaultInitialDelay,
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
	}
}

// Fetcher retrieves page bodies over HTTP.
type Fetcher struct {
	client       *resty.Client
	log          logger.Interface
	attempts     int
	initialDelay time.Duration
}

// New creates a fetcher from the given configuration.
func New(cfg Config, log logger.Interface) *Fetcher {
	if cfg.Attempts <= 0 {
		cfg.Attempts = DefaultAttempts
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = DefaultInitialDelay
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent)

	return &Fetcher{
		client:       client,
		log:          log.WithComponent("fetch"),
		attempts:     cfg.Attempts,
		initialDelay: cfg.InitialDelay,
	}
}

// Fetch retrieves the body at url, retrying transient failures with
// exponential backoff. Cancellation of ctx returns ErrAborted immediately;
// running out of attempts returns ErrExhausted wrapping the last error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= f.attempts; attempt++ {
		if attempt > 1 {
			delay := f.initialDelay << (attempt - 2)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrAborted, ctx.Err())
			case <-time.After(delay):
			}
		}

		resp, err := f.client.R().SetContext(ctx).Get(url)
		if err != nil {
			if ctx.Err() != nil {
				return "", fmt.Errorf("%w: %v", ErrAborted, ctx.Err())
			}
			lastErr = err
			f.log.Warn("fetch attempt failed",
				"url", url,
				"attempt", attempt,
				"error", err)
			continue
		}

		if resp.IsSuccess() {
			return resp.String(), nil
		}

		lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode())
		f.log.Warn("fetch attempt failed",
			"url", url,
			"attempt", attempt,
			"status", resp.StatusCode())
	}

	return "", fmt.Errorf("%w after %d attempts: %w", ErrExhausted, f.attempts, lastErr)
}

// FetchBytes retrieves the raw body at url with a single attempt. Used for
// image downloads, where a failure degrades the item instead of retrying.
func (f *Fetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %d", url, resp.StatusCode())
	}
	return resp.Body(), nil
}
