// Package sources contains the per-site adapters that turn fetched pages
// into raw listings. Adapters are interchangeable from the pipeline's point
// of view: they build page URLs and parse documents, nothing else.
package sources

import (
	"net/url"
	"strings"

	"github.com/concursohub/crawler/internal/domain"
)

// Source is a single scraping target for one content type.
type Source interface {
	// Name identifies the source in logs and stored rows.
	Name() string
	// ContentType is the dataset this source feeds.
	ContentType() domain.ContentType
	// PageURL builds the URL for the given 1-based page number.
	PageURL(page int) string
	// ParsePage extracts raw listings from a fetched document. pageURL is
	// the URL the document came from, used to resolve relative links.
	ParsePage(pageURL, html string) ([]domain.RawListing, error)
}

// ForContentType returns the default sources for a content type.
func ForContentType(ct domain.ContentType) []Source {
	switch ct {
	case domain.ContentOpen:
		return []Source{NewPCIConcursos(), NewConcursosNoBrasil()}
	case domain.ContentPredicted:
		return []Source{NewPCIPrevistos()}
	case domain.ContentNews:
		return []Source{NewPCINoticias(), NewJCNoticias()}
	default:
		return nil
	}
}

// absoluteURL resolves href against base. Returns "" when href is empty or
// unparseable.
func absoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}
