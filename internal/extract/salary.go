// Package extract implements the field extraction heuristics that turn the
// free-text fragments scraped from source pages into structured values.
// Every function here is pure: strings in, structured results out, no I/O.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/concursohub/crawler/internal/normalize"
)

// Tunable heuristic thresholds. These are pattern-matching guesses calibrated
// against the formatting currently observed on the source sites, not hard
// invariants; adjust here if a site reformats.
const (
	// strayValueTrigger: when the largest parsed salary exceeds this, small
	// values are treated as leftovers of the vacancy split.
	strayValueTrigger = 100
	// strayValueFloor: values below this are dropped when the trigger fires.
	strayValueFloor = 15
	// hourlyMonthlyFactor approximates a monthly figure from an hourly rate.
	hourlyMonthlyFactor = 176
	// dailyMonthlyFactor approximates a monthly figure from a daily rate.
	dailyMonthlyFactor = 22
)

// Display strings for salaries that carry no figure.
const (
	SalaryNotInformed  = "Não informado"
	SalaryToBeArranged = "A combinar"
	reserveRosterLabel = "Cadastro Reserva"
)

var (
	// vacancyRe matches explicit vacancy counts, thousands-separator aware.
	vacancyRe = regexp.MustCompile(`(?i)(\d{1,3}(?:\.\d{3})+|\d+)\s*vagas?\b`)
	// reserveRe matches the cadastro-de-reserva marker spelled out.
	reserveRe = regexp.MustCompile(`(?i)cadastro\s+(?:de\s+)?reservas?`)
	// crAbbrevRe matches the upper-case CR abbreviation only; lower-case "cr"
	// shows up inside ordinary words.
	crAbbrevRe = regexp.MustCompile(`\bCR\b`)
	// numberRe matches pt-BR formatted numbers ("3.500,00", "1.200", "950").
	numberRe = regexp.MustCompile(`\d{1,3}(?:\.\d{3})+(?:,\d{1,2})?|\d+(?:,\d{1,2})?`)
	// currencyRe detects text that already looks like a currency amount.
	currencyRe = regexp.MustCompile(`R\$\s*\d`)
	// untilPrefixRe matches a leading "até <value>" ceiling.
	untilPrefixRe = regexp.MustCompile(`(?i)^at[eé]\s+(.+)$`)
	// bareNumberRe matches a value with no currency marker around it.
	bareNumberRe = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})*(?:,\d{1,2})?$`)
	// separatorTrimRe trims the joiner debris left behind by the vacancy split.
	separatorTrimRe = regexp.MustCompile(`^[\s/,;:\-–|]+|[\s/,;:\-–|]+$`)
)

// SalaryVacancy is the result of splitting a raw details fragment into its
// salary and vacancy components.
type SalaryVacancy struct {
	// Salary is the normalized display text for the salary component.
	Salary string
	// Vacancies is the display text for the vacancy component,
	// e.g. "2 vagas", "2 vagas + Cadastro Reserva", "Cadastro Reserva".
	Vacancies string
}

// SplitSalaryVacancy scans a free-text details fragment for vacancy patterns,
// removes them, and normalizes the residual into salary display text.
func SplitSalaryVacancy(details string) SalaryVacancy {
	text := strings.TrimSpace(details)

	counts := vacancyRe.FindAllString(text, -1)
	hasReserve := reserveRe.MatchString(text) || crAbbrevRe.MatchString(text)

	residual := vacancyRe.ReplaceAllString(text, "")
	residual = reserveRe.ReplaceAllString(residual, "")
	residual = crAbbrevRe.ReplaceAllString(residual, "")

	var vacancyParts []string
	for _, c := range counts {
		vacancyParts = append(vacancyParts, strings.Join(strings.Fields(c), " "))
	}

	vacancies := strings.Join(vacancyParts, " + ")
	if hasReserve {
		// The marker appears at most once in the descriptor no matter how
		// often the source repeats it.
		if vacancies == "" {
			vacancies = reserveRosterLabel
		} else {
			vacancies += " + " + reserveRosterLabel
		}
	}
	if vacancies == "" {
		vacancies = SalaryNotInformed
	}

	return SalaryVacancy{
		Salary:    normalizeSalaryText(residual),
		Vacancies: vacancies,
	}
}

// normalizeSalaryText turns the residual of the vacancy split into display text.
func normalizeSalaryText(residual string) string {
	text := cleanResidual(residual)
	folded := normalize.Fold(text)

	switch {
	case text == "" || folded == "vagas" || folded == "vaga":
		return SalaryNotInformed
	case strings.Contains(folded, "a combinar"):
		return SalaryToBeArranged
	case currencyRe.MatchString(text):
		return reformatCurrency(text)
	}

	if m := untilPrefixRe.FindStringSubmatch(text); m != nil {
		value := cleanResidual(m[1])
		value = strings.TrimPrefix(value, "R$")
		value = strings.TrimSpace(value)
		if bareNumberRe.MatchString(value) {
			return "Até R$ " + formatAmount(parseAmount(value))
		}
		return "Até " + value
	}

	if bareNumberRe.MatchString(text) {
		// A bare figure with no currency marker reads as a ceiling.
		return "Até R$ " + formatAmount(parseAmount(text))
	}

	return text
}

// cleanResidual strips the separator debris the vacancy split leaves behind.
func cleanResidual(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	for {
		trimmed := separatorTrimRe.ReplaceAllString(s, "")
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

// reformatCurrency rewrites every numeric token of a currency-looking text in
// two-decimal, thousands-grouped pt-BR style.
func reformatCurrency(text string) string {
	return numberRe.ReplaceAllStringFunc(text, func(tok string) string {
		return formatAmount(parseAmount(tok))
	})
}

// SalaryRange is the numeric reading of a salary display text.
type SalaryRange struct {
	Min float64
	Max float64
}

// ParseSalaryRange extracts the numeric salary range from salary-only text.
// "Não informado" and "A combinar" map to (0, 0).
func ParseSalaryRange(salaryText string) SalaryRange {
	folded := normalize.Fold(salaryText)
	if strings.Contains(folded, "nao informado") || strings.Contains(folded, "a combinar") {
		return SalaryRange{}
	}

	tokens := numberRe.FindAllString(salaryText, -1)
	if len(tokens) == 0 {
		return SalaryRange{}
	}

	values := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		values = append(values, parseAmount(tok))
	}

	// When a real salary is present, tiny values are almost always strays
	// left over from the vacancy split ("2" out of "2 vagas").
	if len(values) > 1 && maxOf(values) > strayValueTrigger {
		kept := values[:0]
		for _, v := range values {
			if v >= strayValueFloor {
				kept = append(kept, v)
			}
		}
		values = kept
	}
	if len(values) == 0 {
		return SalaryRange{}
	}

	factor := 1.0
	switch {
	case containsWord(folded, "hora") || strings.Contains(folded, "hora/aula") || strings.Contains(folded, "h/a"):
		factor = hourlyMonthlyFactor
	case containsWord(folded, "dia") || containsWord(folded, "diaria"):
		factor = dailyMonthlyFactor
	}

	rng := SalaryRange{Min: values[0], Max: values[0]}
	for _, v := range values[1:] {
		if v < rng.Min {
			rng.Min = v
		}
		if v > rng.Max {
			rng.Max = v
		}
	}
	rng.Min *= factor
	rng.Max *= factor
	return rng
}

// CountVacancies sums every "<N> vagas" occurrence in the text, thousands
// separators included. Returns 0 when none match.
func CountVacancies(text string) int {
	total := 0
	for _, m := range vacancyRe.FindAllStringSubmatch(text, -1) {
		n := strings.ReplaceAll(m[1], ".", "")
		var v int
		if _, err := fmt.Sscanf(n, "%d", &v); err == nil {
			total += v
		}
	}
	return total
}

// parseAmount reads a pt-BR formatted number ("3.500,00") as a float.
func parseAmount(tok string) float64 {
	tok = strings.ReplaceAll(tok, ".", "")
	tok = strings.ReplaceAll(tok, ",", ".")
	var v float64
	if _, err := fmt.Sscanf(tok, "%f", &v); err != nil {
		return 0
	}
	return v
}

// formatAmount renders a value in two-decimal, thousands-grouped pt-BR style.
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	negative := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	out := grouped.String() + "," + decPart
	if negative {
		out = "-" + out
	}
	return out
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
