package sources

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/concursohub/crawler/internal/domain"
)

// PCIPrevistos scrapes the predicted-postings index of pciconcursos.com.br.
// Predicted postings are announcements of concursos expected to open; they
// are reconciled upsert-only, never stale-deleted.
type PCIPrevistos struct {
	baseURL string
}

// NewPCIPrevistos creates the adapter with the production base URL.
func NewPCIPrevistos() *PCIPrevistos {
	return &PCIPrevistos{baseURL: "https://www.pciconcursos.com.br"}
}

// NewPCIPrevistosAt creates the adapter against an arbitrary base URL.
func NewPCIPrevistosAt(baseURL string) *PCIPrevistos {
	return &PCIPrevistos{baseURL: strings.TrimRight(baseURL, "/")}
}

// Name identifies the source.
func (s *PCIPrevistos) Name() string { return "pciconcursos-previstos" }

// ContentType is the dataset this source feeds.
func (s *PCIPrevistos) ContentType() domain.ContentType { return domain.ContentPredicted }

// PageURL builds the listing page URL for a 1-based page number.
func (s *PCIPrevistos) PageURL(page int) string {
	if page <= 1 {
		return s.baseURL + "/previstos/"
	}
	return fmt.Sprintf("%s/previstos/?pagina=%d", s.baseURL, page)
}

// ParsePage extracts predicted postings. The layout mirrors the open-postings
// index: div.ca blocks with an anchor and a publication date in div.cp.
func (s *PCIPrevistos) ParsePage(pageURL, html string) ([]domain.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var listings []domain.RawListing
	doc.Find("div.ca").Each(func(_ int, block *goquery.Selection) {
		anchor := block.Find("a").First()
		title := strings.TrimSpace(anchor.Text())
		link := absoluteURL(pageURL, anchor.AttrOr("href", ""))
		if title == "" || link == "" {
			return
		}

		listings = append(listings, domain.RawListing{
			Title:           title,
			Organization:    title,
			RawLocationText: strings.TrimSpace(block.Find("div.cc").Text()),
			Link:            link,
			PublishedAt:     strings.TrimSpace(block.Find("div.cp").AttrOr("data-date", "")),
			Source:          s.Name(),
		})
	})

	return listings, nil
}
