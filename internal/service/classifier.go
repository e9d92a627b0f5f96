package service

import (
	"math"

	"vaidya/internal/domain"
)

var doshaDescriptions = map[domain.Dosha]string{
	domain.Vata: "Vata predominates: air and space. Creative, quick and energetic, " +
		"prone to dryness, irregular digestion and anxiety when out of balance.",
	domain.Pitta: "Pitta predominates: fire and water. Focused, driven and sharp, " +
		"prone to heat, inflammation and irritability when out of balance.",
	domain.Kapha: "Kapha predominates: earth and water. Calm, steady and strong, " +
		"prone to heaviness, congestion and sluggishness when out of balance.",
}

// DoshaDescription devuelve el texto asociado a la dosha dominante.
func DoshaDescription(d domain.Dosha) string {
	return doshaDescriptions[d]
}

// ConstitutionClassifier interpreta una tabla de reglas y produce un perfil.
// Es una funcion pura: no guarda estado entre llamadas.
type ConstitutionClassifier struct{}

// DefaultClassifier permite uso directo sin instanciar.
var DefaultClassifier = ConstitutionClassifier{}

// Classification es el perfil junto con la traza de reglas que lo produjo.
type Classification struct {
	Profile   domain.ConstitutionProfile
	RawScores map[domain.Dosha]int
	Hits      []RuleHit
}

// ClassifyGeneral clasifica rasgos del cuestionario general.
func (c ConstitutionClassifier) ClassifyGeneral(f domain.GeneralFeatures) Classification {
	return classify(GeneralRules, f)
}

// ClassifyHairFall clasifica rasgos del cuestionario de caida de cabello.
func (c ConstitutionClassifier) ClassifyHairFall(f domain.HairFallFeatures) Classification {
	return classify(HairFallRules, f)
}

func classify[F any](rules RuleSet[F], features F) Classification {
	scores, hits := Evaluate(rules, features)
	return Classification{
		Profile:   ProfileFromScores(scores),
		RawScores: scores,
		Hits:      hits,
	}
}

// ProfileFromScores normaliza puntajes brutos y completa dominante y descripcion.
func ProfileFromScores(scores map[domain.Dosha]int) domain.ConstitutionProfile {
	v, p, k := NormalizeScores(scores[domain.Vata], scores[domain.Pitta], scores[domain.Kapha])
	dominant := DominantDosha(v, p, k)
	return domain.ConstitutionProfile{
		Vata:        v,
		Pitta:       p,
		Kapha:       k,
		Dominant:    dominant,
		Description: DoshaDescription(dominant),
	}
}

// NormalizeScores lleva los puntajes a porcentajes enteros (suma 100 +-1).
// Los puntajes negativos cuentan como 0; sin puntaje alguno el reparto es equilibrado.
func NormalizeScores(vata, pitta, kapha int) (int, int, int) {
	vata, pitta, kapha = max(vata, 0), max(pitta, 0), max(kapha, 0)
	total := vata + pitta + kapha
	if total == 0 {
		return 34, 33, 33
	}
	pct := func(x int) int {
		return int(math.Round(100 * float64(x) / float64(total)))
	}
	return pct(vata), pct(pitta), pct(kapha)
}

// DominantDosha elige la dosha dominante.
// Pitta y Kapha necesitan superar estrictamente a las otras dos; cualquier empate cae en Vata.
// NOTE: el desempate a favor de Vata no es un criterio clinico validado; se mantiene
// para no alterar perfiles ya emitidos.
func DominantDosha(vata, pitta, kapha int) domain.Dosha {
	if pitta > vata && pitta > kapha {
		return domain.Pitta
	}
	if kapha > vata && kapha > pitta {
		return domain.Kapha
	}
	return domain.Vata
}
