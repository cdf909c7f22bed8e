package extract_test

import (
	"testing"

	"github.com/concursohub/crawler/internal/extract"
	"github.com/stretchr/testify/require"
)

func TestSplitRolesEducation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		field      string
		wantLevels []string
		wantRoles  []string
	}{
		{
			name:       "mixed levels and roles",
			field:      "Professor / Nível Superior / Médico",
			wantLevels: []string{"Nível Superior"},
			wantRoles:  []string{"Professor", "Médico"},
		},
		{
			name:       "levels come out in canonical order",
			field:      "superior, fundamental, médio",
			wantLevels: []string{"Nível Fundamental", "Nível Médio", "Nível Superior"},
			wantRoles:  nil,
		},
		{
			name:       "duplicate levels collapse",
			field:      "Nível Médio / Ensino Médio",
			wantLevels: []string{"Nível Médio"},
			wantRoles:  nil,
		},
		{
			name:       "duplicate roles are retained in order",
			field:      "Agente, Fiscal, Agente",
			wantLevels: nil,
			wantRoles:  []string{"Agente", "Fiscal", "Agente"},
		},
		{
			name:       "catch-all placeholder is dropped",
			field:      "Vários Cargos / Enfermeiro",
			wantLevels: nil,
			wantRoles:  []string{"Enfermeiro"},
		},
		{
			name:       "medico is not mistaken for medio",
			field:      "Médico",
			wantLevels: nil,
			wantRoles:  []string{"Médico"},
		},
		{
			name:       "technical level",
			field:      "Técnico",
			wantLevels: []string{"Nível Técnico"},
			wantRoles:  nil,
		},
		{
			name:       "empty field",
			field:      "",
			wantLevels: nil,
			wantRoles:  nil,
		},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := extract.SplitRolesEducation(test.field)
			require.Equal(t, test.wantLevels, got.EducationLevels)
			require.Equal(t, test.wantRoles, got.Roles)
		})
	}
}
