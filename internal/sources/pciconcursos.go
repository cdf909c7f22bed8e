package sources

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/concursohub/crawler/internal/domain"
)

// PCIConcursos scrapes the open-postings index of pciconcursos.com.br.
type PCIConcursos struct {
	baseURL string
}

// NewPCIConcursos creates the adapter with the production base URL.
func NewPCIConcursos() *PCIConcursos {
	return &PCIConcursos{baseURL: "https://www.pciconcursos.com.br"}
}

// NewPCIConcursosAt creates the adapter against an arbitrary base URL.
func NewPCIConcursosAt(baseURL string) *PCIConcursos {
	return &PCIConcursos{baseURL: strings.TrimRight(baseURL, "/")}
}

// Name identifies the source.
func (s *PCIConcursos) Name() string { return "pciconcursos" }

// ContentType is the dataset this source feeds.
func (s *PCIConcursos) ContentType() domain.ContentType { return domain.ContentOpen }

// PageURL builds the listing page URL for a 1-based page number.
func (s *PCIConcursos) PageURL(page int) string {
	if page <= 1 {
		return s.baseURL + "/concursos/"
	}
	return fmt.Sprintf("%s/concursos/?pagina=%d", s.baseURL, page)
}

// ParsePage extracts open postings from a listing page. Each posting sits in
// a div.ca block: the anchor carries the organization and link, div.cc the
// location, div.cd the salary/vacancy details, div.cb the roles field and
// div.ce the deadline.
func (s *PCIConcursos) ParsePage(pageURL, html string) ([]domain.RawListing, error) {
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

		logo := block.Find("img").First().AttrOr("data-src", "")
		if logo == "" {
			logo = block.Find("img").First().AttrOr("src", "")
		}

		listings = append(listings, domain.RawListing{
			Title:           title,
			Organization:    title,
			RawLocationText: strings.TrimSpace(block.Find("div.cc").Text()),
			RawDetailsText:  strings.TrimSpace(block.Find("div.cd").Text()),
			RawRolesText:    strings.TrimSpace(block.Find("div.cb").Text()),
			RawDeadlineText: strings.TrimSpace(block.Find("div.ce").Text()),
			Link:            link,
			LogoURL:         absoluteURL(pageURL, logo),
			Source:          s.Name(),
		})
	})

	return listings, nil
}
