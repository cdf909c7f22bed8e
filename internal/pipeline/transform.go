package pipeline

import (
	"strings"
	"time"

	"github.com/concursohub/crawler/internal/domain"
	"github.com/concursohub/crawler/internal/extract"
	"github.com/concursohub/crawler/internal/normalize"
)

// buildPosting normalizes a raw open-posting listing.
func buildPosting(raw domain.RawListing, runTag string) *domain.Posting {
	sv := extract.SplitSalaryVacancy(raw.RawDetailsText)
	rng := extract.ParseSalaryRange(sv.Salary)
	re := extract.SplitRolesEducation(raw.RawRolesText)
	deadline := extract.ParseDeadline(raw.RawDeadlineText)
	states := extract.DetectStates(strings.Join(
		[]string{raw.Organization, raw.Title, raw.RawLocationText}, " ",
	))

	posting := &domain.Posting{
		Link:              raw.Link,
		Title:             raw.Title,
		Organization:      raw.Organization,
		Location:          raw.RawLocationText,
		Type:              postingType(raw),
		Salary:            sv.Salary,
		MinSalary:         rng.Min,
		MaxSalary:         rng.Max,
		Vacancies:         sv.Vacancies,
		VacancyCount:      extract.CountVacancies(raw.RawDetailsText),
		EducationLevels:   re.EducationLevels,
		Roles:             re.Roles,
		MentionedStates:   states,
		DeadlineFormatted: deadline.Formatted,
		DeadlineDate:      deadline.Date,
		SearchableText: normalize.SearchKey(
			raw.Title, raw.Organization, raw.RawLocationText, raw.RawRolesText,
		),
		RunTag: runTag,
	}

	if city, ok := extract.ExtractCity(raw.Title, raw.Organization, raw.RawLocationText); ok {
		posting.EffectiveCity = &city
	}

	return posting
}

// buildNewsItem normalizes a raw news or predicted listing.
func buildNewsItem(raw domain.RawListing) *domain.NewsItem {
	return &domain.NewsItem{
		Link:            raw.Link,
		Title:           raw.Title,
		PublicationDate: publicationDate(raw.PublishedAt),
		Source:          raw.Source,
		NormalizedTitle: normalize.Fold(raw.Title),
		MentionedStates: extract.DetectStates(raw.Title),
	}
}

// postingType classifies a listing as concurso or processo seletivo from its
// text.
func postingType(raw domain.RawListing) string {
	folded := normalize.Fold(combinedText(raw))
	if strings.Contains(folded, "processo seletivo") || strings.Contains(folded, "seletivo simplificado") {
		return domain.PostingTypeProcessoSeletivo
	}
	return domain.PostingTypeConcurso
}

func combinedText(raw domain.RawListing) string {
	return strings.Join([]string{
		raw.Organization, raw.Title, raw.RawLocationText, raw.RawDetailsText,
	}, " ")
}

// publicationDate normalizes a scraped date to ISO yyyy-mm-dd, falling back
// to today when the source gives nothing usable.
func publicationDate(published string) string {
	published = strings.TrimSpace(published)

	// Already ISO, possibly with a time suffix.
	if len(published) >= 10 {
		if d, err := time.Parse("2006-01-02", published[:10]); err == nil {
			return d.Format("2006-01-02")
		}
	}
	if d, err := time.Parse("02/01/2006", published); err == nil {
		return d.Format("2006-01-02")
	}
	return time.Now().UTC().Format("2006-01-02")
}
