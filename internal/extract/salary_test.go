package extract_test

import (
	"testing"

	"github.com/concursohub/crawler/internal/extract"
	"github.com/stretchr/testify/require"
)

func TestSplitSalaryVacancy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		details       string
		wantSalary    string
		wantVacancies string
	}{
		{
			name:          "vacancies then salary then CR",
			details:       "2 vagas / R$ 3.500,00 CR",
			wantSalary:    "R$ 3.500,00",
			wantVacancies: "2 vagas + Cadastro Reserva",
		},
		{
			name:          "salary only",
			details:       "R$ 1.850,50",
			wantSalary:    "R$ 1.850,50",
			wantVacancies: "Não informado",
		},
		{
			name:          "vacancies only",
			details:       "150 vagas",
			wantSalary:    "Não informado",
			wantVacancies: "150 vagas",
		},
		{
			name:          "thousand-separated vacancy count",
			details:       "1.200 vagas - R$ 2.000,00",
			wantSalary:    "R$ 2.000,00",
			wantVacancies: "1.200 vagas",
		},
		{
			name:          "reserve roster spelled out",
			details:       "Cadastro de reserva",
			wantSalary:    "Não informado",
			wantVacancies: "Cadastro Reserva",
		},
		{
			name:          "reserve marker repeated collapses to one",
			details:       "Cadastro de reserva / CR",
			wantSalary:    "Não informado",
			wantVacancies: "Cadastro Reserva",
		},
		{
			name:          "lowercase cr inside a word is not a reserve marker",
			details:       "10 vagas para escriturário",
			wantSalary:    "para escriturário",
			wantVacancies: "10 vagas",
		},
		{
			name:          "to be arranged",
			details:       "A Combinar",
			wantSalary:    "A combinar",
			wantVacancies: "Não informado",
		},
		{
			name:          "bare number reads as ceiling",
			details:       "2 vagas / 1.500",
			wantSalary:    "Até R$ 1.500,00",
			wantVacancies: "2 vagas",
		},
		{
			name:          "explicit until prefix",
			details:       "até 2.000",
			wantSalary:    "Até R$ 2.000,00",
			wantVacancies: "Não informado",
		},
		{
			name:          "currency amounts are regrouped",
			details:       "R$ 1200",
			wantSalary:    "R$ 1.200,00",
			wantVacancies: "Não informado",
		},
		{
			name:          "multiple vacancy groups are joined",
			details:       "2 vagas / 3 vagas / R$ 900,00",
			wantSalary:    "R$ 900,00",
			wantVacancies: "2 vagas + 3 vagas",
		},
		{
			name:          "empty input",
			details:       "",
			wantSalary:    "Não informado",
			wantVacancies: "Não informado",
		},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := extract.SplitSalaryVacancy(test.details)
			require.Equal(t, test.wantSalary, got.Salary)
			require.Equal(t, test.wantVacancies, got.Vacancies)
		})
	}
}

func TestParseSalaryRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		wantMin float64
		wantMax float64
	}{
		{
			name:    "single amount",
			text:    "R$ 3.500,00",
			wantMin: 3500,
			wantMax: 3500,
		},
		{
			name:    "explicit range",
			text:    "R$ 1.200,00 a R$ 2.000,00",
			wantMin: 1200,
			wantMax: 2000,
		},
		{
			name:    "stray split leftovers are dropped",
			text:    "2 e R$ 3.500,00",
			wantMin: 3500,
			wantMax: 3500,
		},
		{
			name:    "small amounts survive without a large anchor",
			text:    "R$ 12,00 a R$ 80,00",
			wantMin: 12,
			wantMax: 80,
		},
		{
			name:    "hourly rate scales to monthly",
			text:    "R$ 20,00 por hora",
			wantMin: 3520,
			wantMax: 3520,
		},
		{
			name:    "daily rate scales to monthly",
			text:    "R$ 100,00 por dia",
			wantMin: 2200,
			wantMax: 2200,
		},
		{
			name:    "not informed",
			text:    "Não informado",
			wantMin: 0,
			wantMax: 0,
		},
		{
			name:    "to be arranged",
			text:    "A combinar",
			wantMin: 0,
			wantMax: 0,
		},
		{
			name:    "no figures",
			text:    "conforme edital",
			wantMin: 0,
			wantMax: 0,
		},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := extract.ParseSalaryRange(test.text)
			require.InDelta(t, test.wantMin, got.Min, 0.001)
			require.InDelta(t, test.wantMax, got.Max, 0.001)
		})
	}
}

func TestCountVacancies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "single group", text: "42 vagas", want: 42},
		{name: "singular form", text: "1 vaga", want: 1},
		{name: "multiple groups sum", text: "2 vagas e 1.200 vagas", want: 1202},
		{name: "no groups", text: "Cadastro Reserva", want: 0},
		{name: "empty", text: "", want: 0},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, test.want, extract.CountVacancies(test.text))
		})
	}
}
