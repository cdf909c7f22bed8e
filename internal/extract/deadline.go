package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/concursohub/crawler/internal/normalize"
)

// dateRe matches DD/MM with an optional 2- or 4-digit year.
var dateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{4}|\d{2}))?\b`)

// deadlineStatusKeywords are annotations sources attach to a deadline range.
var deadlineStatusKeywords = []string{"prorrogado", "reaberto", "verificar", "conferir"}

const (
	twoDigitYearBase = 2000
	displayDate      = "02/01/2006"
)

// Deadline is the parsed reading of a raw deadline fragment.
type Deadline struct {
	// Formatted is the display string ("Até 15/01/2026", "De 02/01/2026 a
	// 15/01/2026", possibly annotated). When no date parses it carries the
	// original text unchanged.
	Formatted string
	// Date is the latest parsed date at UTC midnight, nil when no date parsed.
	Date *time.Time
}

// ParseDeadline parses a raw deadline fragment. Year-less dates take the
// current year.
func ParseDeadline(text string) Deadline {
	return ParseDeadlineAt(text, time.Now().UTC())
}

// ParseDeadlineAt is ParseDeadline with an explicit reference time for
// year-less dates.
func ParseDeadlineAt(text string, ref time.Time) Deadline {
	trimmed := strings.Join(strings.Fields(text), " ")

	var dates []time.Time
	for _, m := range dateRe.FindAllStringSubmatch(trimmed, -1) {
		if d, ok := parseDateMatch(m, ref); ok {
			dates = append(dates, d)
		}
	}

	if len(dates) == 0 {
		return Deadline{Formatted: trimmed}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	first, last := dates[0], dates[len(dates)-1]

	var formatted string
	if first.Equal(last) {
		formatted = "Até " + last.Format(displayDate)
	} else {
		formatted = fmt.Sprintf("De %s a %s", first.Format(displayDate), last.Format(displayDate))
	}

	formatted = annotateDeadline(formatted, dateRe.ReplaceAllString(trimmed, ""))

	return Deadline{Formatted: formatted, Date: &last}
}

// annotateDeadline folds any leftover status text into the formatted range.
// "Prorrogado"/"reaberto" alone become a "Prorrogado: " prefix; a keyword
// with other leftover text is kept as a trailing annotation.
func annotateDeadline(formatted, leftover string) string {
	leftover = strings.Trim(strings.Join(strings.Fields(leftover), " "), " -–/|:().,")
	if leftover == "" {
		return formatted
	}

	folded := normalize.Fold(leftover)
	keyword := ""
	for _, k := range deadlineStatusKeywords {
		if strings.Contains(folded, k) {
			keyword = k
			break
		}
	}
	if keyword == "" {
		return formatted
	}

	if (keyword == "prorrogado" || keyword == "reaberto") && folded == keyword {
		return "Prorrogado: " + formatted
	}

	return fmt.Sprintf("%s (%s)", formatted, leftover)
}

// parseDateMatch builds a UTC-midnight date from a dateRe submatch.
func parseDateMatch(m []string, ref time.Time) (time.Time, bool) {
	day := atoi(m[1])
	month := atoi(m[2])

	year := ref.Year()
	if m[3] != "" {
		year = atoi(m[3])
		if year < 100 {
			year += twoDigitYearBase
		}
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject overflow like 31/02 silently normalizing into March.
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return d, true
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
