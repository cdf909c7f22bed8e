package sources

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/concursohub/crawler/internal/domain"
)

// ConcursosNoBrasil scrapes the open-postings table of concursosnobrasil.com.
type ConcursosNoBrasil struct {
	baseURL string
}

// NewConcursosNoBrasil creates the adapter with the production base URL.
func NewConcursosNoBrasil() *ConcursosNoBrasil {
	return &ConcursosNoBrasil{baseURL: "https://concursosnobrasil.com"}
}

// NewConcursosNoBrasilAt creates the adapter against an arbitrary base URL.
func NewConcursosNoBrasilAt(baseURL string) *ConcursosNoBrasil {
	return &ConcursosNoBrasil{baseURL: strings.TrimRight(baseURL, "/")}
}

// Name identifies the source.
func (s *ConcursosNoBrasil) Name() string { return "concursosnobrasil" }

// ContentType is the dataset this source feeds.
func (s *ConcursosNoBrasil) ContentType() domain.ContentType { return domain.ContentOpen }

// PageURL builds the listing page URL for a 1-based page number.
func (s *ConcursosNoBrasil) PageURL(page int) string {
	if page <= 1 {
		return s.baseURL + "/concursos/"
	}
	return fmt.Sprintf("%s/concursos/page/%d/", s.baseURL, page)
}

// ParsePage extracts open postings from a listing page. Postings are table
// rows: the first cell holds the organization anchor, the second the
// vacancy/salary details, the third the roles field, and an optional
// data-deadline attribute the deadline text.
func (s *ConcursosNoBrasil) ParsePage(pageURL, html string) ([]domain.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var listings []domain.RawListing
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		anchor := row.Find("td a").First()
		title := strings.TrimSpace(anchor.Text())
		link := absoluteURL(pageURL, anchor.AttrOr("href", ""))
		if title == "" || link == "" {
			return
		}

		cells := row.Find("td")
		details, roles := "", ""
		if cells.Length() > 1 {
			details = strings.TrimSpace(cells.Eq(1).Text())
		}
		if cells.Length() > 2 {
			roles = strings.TrimSpace(cells.Eq(2).Text())
		}

		listings = append(listings, domain.RawListing{
			Title:           title,
			Organization:    title,
			RawLocationText: strings.TrimSpace(row.AttrOr("data-uf", "")),
			RawDetailsText:  details,
			RawRolesText:    roles,
			RawDeadlineText: strings.TrimSpace(row.AttrOr("data-deadline", "")),
			Link:            link,
			Source:          s.Name(),
		})
	})

	return listings, nil
}
