package extract

import (
	"sort"
	"strings"

	"github.com/concursohub/crawler/internal/normalize"
)

// educationLevelOrder fixes the display ordering of canonical levels.
var educationLevelOrder = []string{"Fundamental", "Médio", "Técnico", "Superior"}

// variousRolesPlaceholder is the catch-all token some sources use instead of
// naming the roles; it carries no information and is dropped.
const variousRolesPlaceholder = "varios cargos"

// RolesEducation is the result of splitting a roles/education field.
type RolesEducation struct {
	// EducationLevels holds canonical "Nível X" entries, deduplicated and
	// sorted by level order.
	EducationLevels []string
	// Roles holds the remaining tokens in their original order; duplicates
	// are retained.
	Roles []string
}

// SplitRolesEducation splits a slash/comma-delimited roles field into
// education levels and role names.
func SplitRolesEducation(field string) RolesEducation {
	var result RolesEducation

	levelSeen := make(map[string]bool)
	for _, token := range splitTokens(field) {
		folded := normalize.Fold(token)
		if folded == "" || folded == variousRolesPlaceholder {
			continue
		}

		if level := matchEducationLevel(folded); level != "" {
			if !levelSeen[level] {
				levelSeen[level] = true
				result.EducationLevels = append(result.EducationLevels, "Nível "+level)
			}
			continue
		}

		result.Roles = append(result.Roles, token)
	}

	sort.Slice(result.EducationLevels, func(i, j int) bool {
		return levelRank(result.EducationLevels[i]) < levelRank(result.EducationLevels[j])
	})

	return result
}

// splitTokens splits a field on slashes and commas and trims each token.
func splitTokens(field string) []string {
	raw := strings.FieldsFunc(field, func(r rune) bool {
		return r == '/' || r == ','
	})
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// matchEducationLevel returns the canonical level name when the folded token
// mentions one, or "" otherwise.
func matchEducationLevel(folded string) string {
	for _, level := range educationLevelOrder {
		if strings.Contains(folded, normalize.Fold(level)) {
			return level
		}
	}
	return ""
}

func levelRank(canonical string) int {
	for i, level := range educationLevelOrder {
		if canonical == "Nível "+level {
			return i
		}
	}
	return len(educationLevelOrder)
}
