package domain

// State is a Brazilian federative unit.
type State struct {
	Code string
	Name string
}

// States lists the 27 federative units, used for mentioned-state detection.
var States = []State{
	{Code: "AC", Name: "Acre"},
	{Code: "AL", Name: "Alagoas"},
	{Code: "AP", Name: "Amapá"},
	{Code: "AM", Name: "Amazonas"},
	{Code: "BA", Name: "Bahia"},
	{Code: "CE", Name: "Ceará"},
	{Code: "DF", Name: "Distrito Federal"},
	{Code: "ES", Name: "Espírito Santo"},
	{Code: "GO", Name: "Goiás"},
	{Code: "MA", Name: "Maranhão"},
	{Code: "MT", Name: "Mato Grosso"},
	{Code: "MS", Name: "Mato Grosso do Sul"},
	{Code: "MG", Name: "Minas Gerais"},
	{Code: "PA", Name: "Pará"},
	{Code: "PB", Name: "Paraíba"},
	{Code: "PR", Name: "Paraná"},
	{Code: "PE", Name: "Pernambuco"},
	{Code: "PI", Name: "Piauí"},
	{Code: "RJ", Name: "Rio de Janeiro"},
	{Code: "RN", Name: "Rio Grande do Norte"},
	{Code: "RS", Name: "Rio Grande do Sul"},
	{Code: "RO", Name: "Rondônia"},
	{Code: "RR", Name: "Roraima"},
	{Code: "SC", Name: "Santa Catarina"},
	{Code: "SP", Name: "São Paulo"},
	{Code: "SE", Name: "Sergipe"},
	{Code: "TO", Name: "Tocantins"},
}

// StateCodes is the set of valid two-letter state codes.
var StateCodes = func() map[string]bool {
	m := make(map[string]bool, len(States))
	for _, s := range States {
		m[s.Code] = true
	}
	return m
}()
