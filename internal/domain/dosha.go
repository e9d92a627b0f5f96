package domain

// Dosha es una de las tres categorias constitucionales.
type Dosha string

const (
	Vata  Dosha = "Vata"
	Pitta Dosha = "Pitta"
	Kapha Dosha = "Kapha"
)

// Doshas lista las tres categorias en orden canonico.
var Doshas = []Dosha{Vata, Pitta, Kapha}

// ConstitutionProfile es el reparto porcentual de la constitucion del paciente.
type ConstitutionProfile struct {
	Vata        int    `json:"vata"`
	Pitta       int    `json:"pitta"`
	Kapha       int    `json:"kapha"`
	Dominant    Dosha  `json:"dominant"`
	Description string `json:"description"`
}

// Percent devuelve el porcentaje asignado a una dosha.
func (p ConstitutionProfile) Percent(d Dosha) int {
	switch d {
	case Vata:
		return p.Vata
	case Pitta:
		return p.Pitta
	case Kapha:
		return p.Kapha
	default:
		return 0
	}
}

// Total suma los tres porcentajes (100 salvo redondeo).
func (p ConstitutionProfile) Total() int {
	return p.Vata + p.Pitta + p.Kapha
}
