package extract

import (
	"sort"
	"strings"
	"unicode"

	"github.com/concursohub/crawler/internal/domain"
)

// DetectStates returns the state codes textually referenced in the combined
// organization/title/location text, sorted and deduplicated. Codes match
// case-sensitively (the word "se" is not Sergipe); full names match
// case-insensitively but keep their diacritics ("Pará" is a state, the
// preposition "para" is not).
func DetectStates(text string) []string {
	lowered := strings.ToLower(text)

	seen := make(map[string]bool)
	for _, st := range domain.States {
		if containsWord(text, st.Code) || containsWord(lowered, strings.ToLower(st.Name)) {
			seen[st.Code] = true
		}
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// containsWord reports whether needle occurs in haystack bounded by
// non-letter, non-digit runes on both sides.
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start

		before := rune(' ')
		if idx > 0 {
			runes := []rune(haystack[:idx])
			before = runes[len(runes)-1]
		}
		after := rune(' ')
		if end := idx + len(needle); end < len(haystack) {
			after = []rune(haystack[end:])[0]
		}

		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
		start = idx + len(needle)
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
