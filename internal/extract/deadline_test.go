package extract_test

import (
	"testing"
	"time"

	"github.com/concursohub/crawler/internal/extract"
	"github.com/stretchr/testify/require"
)

func TestParseDeadlineAt(t *testing.T) {
	t.Parallel()

	ref := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		text          string
		wantFormatted string
		wantDate      string // "2006-01-02", empty for nil
	}{
		{
			name:          "single date",
			text:          "15/01/2026",
			wantFormatted: "Até 15/01/2026",
			wantDate:      "2026-01-15",
		},
		{
			name:          "date range",
			text:          "02/01/2026 a 15/01/2026",
			wantFormatted: "De 02/01/2026 a 15/01/2026",
			wantDate:      "2026-01-15",
		},
		{
			name:          "range keeps latest date regardless of order",
			text:          "15/01/2026 a 02/01/2026",
			wantFormatted: "De 02/01/2026 a 15/01/2026",
			wantDate:      "2026-01-15",
		},
		{
			name:          "same date twice collapses",
			text:          "05/05/2026 05/05/2026",
			wantFormatted: "Até 05/05/2026",
			wantDate:      "2026-05-05",
		},
		{
			name:          "two-digit year",
			text:          "Até 15/03/26",
			wantFormatted: "Até 15/03/2026",
			wantDate:      "2026-03-15",
		},
		{
			name:          "year-less date takes the reference year",
			text:          "Inscrições até 20/04",
			wantFormatted: "Até 20/04/2026",
			wantDate:      "2026-04-20",
		},
		{
			name:          "bare extension marker becomes a prefix",
			text:          "Prorrogado 20/02/2026",
			wantFormatted: "Prorrogado: Até 20/02/2026",
			wantDate:      "2026-02-20",
		},
		{
			name:          "status text with extras trails as annotation",
			text:          "20/02/2026 (verificar no site)",
			wantFormatted: "Até 20/02/2026 (verificar no site)",
			wantDate:      "2026-02-20",
		},
		{
			name:          "no parseable date passes through",
			text:          "Verificar edital",
			wantFormatted: "Verificar edital",
		},
		{
			name:          "impossible date is rejected",
			text:          "31/02/2026",
			wantFormatted: "31/02/2026",
		},
		{
			name:          "whitespace is collapsed",
			text:          "  Até   15/01/2026  ",
			wantFormatted: "Até 15/01/2026",
			wantDate:      "2026-01-15",
		},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := extract.ParseDeadlineAt(test.text, ref)
			require.Equal(t, test.wantFormatted, got.Formatted)

			if test.wantDate == "" {
				require.Nil(t, got.Date)
				return
			}
			require.NotNil(t, got.Date)
			require.Equal(t, test.wantDate, got.Date.Format("2006-01-02"))
			require.Equal(t, time.UTC, got.Date.Location())
			require.Equal(t, 0, got.Date.Hour())
		})
	}
}
