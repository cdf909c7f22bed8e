package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/concursohub/crawler/internal/domain"
	"github.com/concursohub/crawler/internal/normalize"
)

var (
	// municipalPrefixRe matches the "Prefeitura/Câmara/SAAE (Municipal) de
	// <city>" naming convention of municipal organs.
	municipalPrefixRe = regexp.MustCompile(`(?i)^(?:prefeitura|c[âa]mara|saae)(?:\s+municipal)?\s+de\s+(.+)$`)
	// municipalInfixRe is the unanchored variant for organization names that
	// embed the organ inside a longer phrase.
	municipalInfixRe = regexp.MustCompile(`(?i)(?:prefeitura|c[âa]mara|saae)(?:\s+municipal)?\s+de\s+(.+)$`)
	// dashSuffixRe captures everything after the first " - " separator.
	dashSuffixRe = regexp.MustCompile(`\s[-–]\s(.+)$`)
	// inCityRe captures an " em <city>" infix up to the next separator.
	inCityRe = regexp.MustCompile(`(?i)\bem\s+([^-–/|,;()]+)`)
	// trailingStateRe strips an "<city> - XX" or "<city>/XX" state suffix.
	trailingStateRe = regexp.MustCompile(`\s*[-–/]\s*([A-Z]{2})\s*$`)
	// continuationRe marks where a headline stops naming the organ and
	// starts describing what it did; everything from the verb on is cut.
	continuationRe = regexp.MustCompile(`(?i)\s\b(?:abre|abriu|divulga|anuncia|publica|lan[çc]a|retifica|prorroga|realiza|oferece|recebe|encerra|confirma|define|tem)\b`)
	// comCutRe ends an " em <city>" candidate at a "com" clause.
	comCutRe = regexp.MustCompile(`(?i)\s\bcom\b`)
)

// genericCityWords are candidates that name no municipality.
var genericCityWords = map[string]bool{
	"brasil":           true,
	"todo o brasil":    true,
	"nacional":         true,
	"federal":          true,
	"estado":           true,
	"interior":         true,
	"sede":             true,
	"varios":           true,
	"varias":           true,
	"diversos":         true,
	"diversas":         true,
	"varias cidades":   true,
	"diversas cidades": true,
}

// cityConnectors stay lowercase when title-casing, except as the first word.
var cityConnectors = map[string]bool{
	"de": true, "da": true, "do": true, "das": true, "dos": true, "e": true,
}

const (
	cityMinLength = 3
	cityMaxWords  = 5
)

// ExtractCity heuristically extracts the municipality a listing pertains to.
// Candidates are tried in priority order over the organization, title and raw
// location; the first one that survives cleaning and validation wins.
func ExtractCity(title, organization, rawLocation string) (string, bool) {
	candidates := []string{
		matchFirst(municipalPrefixRe, organization),
		matchFirst(municipalPrefixRe, title),
		matchFirst(dashSuffixRe, title),
		matchFirst(dashSuffixRe, organization),
		matchFirst(inCityRe, title),
		matchFirst(municipalInfixRe, organization),
		firstLocationSegment(rawLocation),
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if city, ok := cleanCityCandidate(candidate); ok {
			return city, true
		}
	}
	return "", false
}

func matchFirst(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
		return m[1]
	}
	return ""
}

// firstLocationSegment takes the first segment of the raw location field,
// unless that segment is itself a bare state code.
func firstLocationSegment(rawLocation string) string {
	segment := strings.FieldsFunc(rawLocation, func(r rune) bool {
		return r == '/' || r == ',' || r == '-' || r == '–'
	})
	if len(segment) == 0 {
		return ""
	}
	first := strings.TrimSpace(segment[0])
	if domain.StateCodes[strings.ToUpper(first)] {
		return ""
	}
	return first
}

// cleanCityCandidate normalizes a raw candidate and validates it.
func cleanCityCandidate(candidate string) (string, bool) {
	c := strings.Join(strings.Fields(candidate), " ")
	c = trailingStateRe.ReplaceAllString(c, "")
	c = strings.Trim(c, " .,;:()|")

	// Cut trailing continuation clauses ("... abre concurso com 20 vagas").
	if loc := continuationRe.FindStringIndex(c); loc != nil {
		c = c[:loc[0]]
	}
	if loc := comCutRe.FindStringIndex(c); loc != nil {
		c = c[:loc[0]]
	}
	c = strings.Trim(strings.TrimSpace(c), " .,;:-–()|")

	if c == "" || len([]rune(c)) < cityMinLength {
		return "", false
	}
	if genericCityWords[normalize.Fold(c)] {
		return "", false
	}
	if len(strings.Fields(c)) > cityMaxWords {
		return "", false
	}
	if domain.StateCodes[strings.ToUpper(c)] {
		return "", false
	}

	return titleCaseCity(c), true
}

// titleCaseCity capitalizes each word, keeping connector words lowercase
// except in first position.
func titleCaseCity(c string) string {
	words := strings.Fields(strings.ToLower(c))
	for i, w := range words {
		if i > 0 && cityConnectors[w] {
			continue
		}
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
