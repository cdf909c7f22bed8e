package sources

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/concursohub/crawler/internal/domain"
)

// PCINoticias scrapes the concurso news index of pciconcursos.com.br.
type PCINoticias struct {
	baseURL string
}

// NewPCINoticias creates the adapter with the production base URL.
func NewPCINoticias() *PCINoticias {
	return &PCINoticias{baseURL: "https://www.pciconcursos.com.br"}
}

// NewPCINoticiasAt creates the adapter against an arbitrary base URL.
func NewPCINoticiasAt(baseURL string) *PCINoticias {
	return &PCINoticias{baseURL: strings.TrimRight(baseURL, "/")}
}

// Name identifies the source.
func (s *PCINoticias) Name() string { return "pciconcursos-noticias" }

// ContentType is the dataset this source feeds.
func (s *PCINoticias) ContentType() domain.ContentType { return domain.ContentNews }

// PageURL builds the news index URL for a 1-based page number.
func (s *PCINoticias) PageURL(page int) string {
	if page <= 1 {
		return s.baseURL + "/noticias/"
	}
	return fmt.Sprintf("%s/noticias/?pagina=%d", s.baseURL, page)
}

// ParsePage extracts news entries: ul.noticias li blocks with an anchor and a
// <time> element carrying the ISO publication date.
func (s *PCINoticias) ParsePage(pageURL, html string) ([]domain.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var listings []domain.RawListing
	doc.Find("ul.noticias li").Each(func(_ int, item *goquery.Selection) {
		anchor := item.Find("a").First()
		title := strings.TrimSpace(anchor.Text())
		link := absoluteURL(pageURL, anchor.AttrOr("href", ""))
		if title == "" || link == "" {
			return
		}

		listings = append(listings, domain.RawListing{
			Title:       title,
			Link:        link,
			PublishedAt: strings.TrimSpace(item.Find("time").AttrOr("datetime", "")),
			Source:      s.Name(),
		})
	})

	return listings, nil
}

// JCNoticias scrapes the news index of jcconcursos.com.br.
type JCNoticias struct {
	baseURL string
}

// NewJCNoticias creates the adapter with the production base URL.
func NewJCNoticias() *JCNoticias {
	return &JCNoticias{baseURL: "https://jcconcursos.com.br"}
}

// NewJCNoticiasAt creates the adapter against an arbitrary base URL.
func NewJCNoticiasAt(baseURL string) *JCNoticias {
	return &JCNoticias{baseURL: strings.TrimRight(baseURL, "/")}
}

// Name identifies the source.
func (s *JCNoticias) Name() string { return "jcconcursos-noticias" }

// ContentType is the dataset this source feeds.
func (s *JCNoticias) ContentType() domain.ContentType { return domain.ContentNews }

// PageURL builds the news index URL for a 1-based page number.
func (s *JCNoticias) PageURL(page int) string {
	if page <= 1 {
		return s.baseURL + "/noticia/concursos"
	}
	return fmt.Sprintf("%s/noticia/concursos?page=%d", s.baseURL, page)
}

// ParsePage extracts news entries: article blocks with a headline anchor and
// a <time> element.
func (s *JCNoticias) ParsePage(pageURL, html string) ([]domain.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var listings []domain.RawListing
	doc.Find("article").Each(func(_ int, item *goquery.Selection) {
		anchor := item.Find("a").First()
		title := strings.TrimSpace(item.Find("h2, h3").First().Text())
		if title == "" {
			title = strings.TrimSpace(anchor.Text())
		}
		link := absoluteURL(pageURL, anchor.AttrOr("href", ""))
		if title == "" || link == "" {
			return
		}

		listings = append(listings, domain.RawListing{
			Title:       title,
			Link:        link,
			PublishedAt: strings.TrimSpace(item.Find("time").AttrOr("datetime", "")),
			Source:      s.Name(),
		})
	})

	return listings, nil
}
