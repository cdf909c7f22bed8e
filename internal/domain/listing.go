// Package domain defines the core types shared across the scraping pipeline.
package domain

import (
	"time"

	"github.com/lib/pq"
)

// ContentType identifies which dataset a run targets.
type ContentType string

const (
	// ContentOpen is the dataset of currently open postings.
	ContentOpen ContentType = "concursos"
	// ContentPredicted is the dataset of predicted (not yet open) postings.
	ContentPredicted ContentType = "previstos"
	// ContentNews is the dataset of concurso news articles.
	ContentNews ContentType = "noticias"
)

// Posting type constants.
const (
	PostingTypeConcurso         = "concurso"
	PostingTypeProcessoSeletivo = "processoSeletivo"
)

// RawListing is what a source adapter produces for a single listing on a page.
// It is ephemeral: transformed into a Posting or NewsItem within the same run.
type RawListing struct {
	Title           string
	Organization    string
	RawLocationText string
	RawDetailsText  string
	RawRolesText    string
	RawDeadlineText string
	Link            string
	LogoURL         string
	PublishedAt     string
	Source          string
}

// Posting is a normalized open or predicted posting, persisted keyed by Link.
type Posting struct {
	Link              string         `db:"link"               json:"link"`
	Title             string         `db:"title"              json:"title"`
	Organization      string         `db:"organization"       json:"organization"`
	Location          string         `db:"location"           json:"location"`
	EffectiveCity     *string        `db:"effective_city"     json:"effective_city,omitempty"`
	LogoPath          *string        `db:"logo_path"          json:"logo_path,omitempty"`
	Type              string         `db:"type"               json:"type"`
	Salary            string         `db:"salary"             json:"salary"`
	MinSalary         float64        `db:"min_salary"         json:"min_salary"`
	MaxSalary         float64        `db:"max_salary"         json:"max_salary"`
	Vacancies         string         `db:"vacancies"          json:"vacancies"`
	VacancyCount      int            `db:"vacancy_count"      json:"vacancy_count"`
	EducationLevels   pq.StringArray `db:"education_levels"   json:"education_levels"`
	Roles             pq.StringArray `db:"roles"              json:"roles"`
	MentionedStates   pq.StringArray `db:"mentioned_states"   json:"mentioned_states"`
	DeadlineDate      *time.Time     `db:"deadline_date"      json:"deadline_date,omitempty"`
	DeadlineFormatted string         `db:"deadline_formatted" json:"deadline_formatted"`
	SearchableText    string         `db:"searchable_text"    json:"searchable_text"`
	RunTag            string         `db:"run_tag"            json:"run_tag"`
	UpdatedAt         time.Time      `db:"updated_at"         json:"updated_at"`
}

// NewsItem is a normalized news or predicted-posting entry, persisted keyed by Link.
type NewsItem struct {
	Link            string         `db:"link"             json:"link"`
	Title           string         `db:"title"            json:"title"`
	PublicationDate string         `db:"publication_date" json:"publication_date"`
	Source          string         `db:"source"           json:"source"`
	NormalizedTitle string         `db:"normalized_title" json:"normalized_title"`
	MentionedStates pq.StringArray `db:"mentioned_states" json:"mentioned_states"`
	UpdatedAt       time.Time      `db:"updated_at"       json:"updated_at"`
}

// RunResult summarizes what a completed run changed.
type RunResult struct {
	ContentType   ContentType `json:"content_type"`
	RunTag        string      `json:"run_tag"`
	RawCount      int         `json:"raw_count"`
	Upserted      int         `json:"upserted"`
	LogosUploaded int         `json:"logos_uploaded"`
	StaleDeleted  int         `json:"stale_deleted"`
}
