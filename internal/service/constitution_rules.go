package service

import "vaidya/internal/domain"

// Predicate devuelve cuantas veces se dispara una regla para los rasgos dados (0 = no aplica).
type Predicate[F any] func(F) int

// Rule es una entrada declarativa: si When se dispara n veces suma n*Weight a Dosha.
type Rule[F any] struct {
	Name   string
	Dosha  domain.Dosha
	Weight int
	When   Predicate[F]
}

// RuleSet es una tabla de reglas interpretada por Evaluate.
type RuleSet[F any] []Rule[F]

// RuleHit registra una regla disparada, util para trazas y pruebas.
type RuleHit struct {
	Rule  string       `json:"rule"`
	Dosha domain.Dosha `json:"dosha"`
	Score int          `json:"score"`
}

// Evaluate aplica todas las reglas y devuelve el puntaje bruto por dosha.
func Evaluate[F any](rules RuleSet[F], features F) (map[domain.Dosha]int, []RuleHit) {
	scores := map[domain.Dosha]int{
		domain.Vata:  0,
		domain.Pitta: 0,
		domain.Kapha: 0,
	}
	var hits []RuleHit
	for _, r := range rules {
		if r.When == nil {
			continue
		}
		n := r.When(features)
		if n <= 0 {
			continue
		}
		score := n * r.Weight
		scores[r.Dosha] += score
		hits = append(hits, RuleHit{Rule: r.Name, Dosha: r.Dosha, Score: score})
	}
	return scores, hits
}

func when[F any](cond func(F) bool) Predicate[F] {
	return func(f F) int {
		if cond(f) {
			return 1
		}
		return 0
	}
}

var (
	vataSymptomKeywords  = []string{"anxiety", "dry", "constipation"}
	pittaSymptomKeywords = []string{"acne", "anger", "inflammation"}
	kaphaSymptomKeywords = []string{"weight", "congestion", "sluggish"}
)

// symptomMatches cuenta los sintomas que contienen alguna palabra del grupo.
// Un sintoma suma una vez por grupo aunque coincida con varias palabras del mismo grupo.
func symptomMatches(keywords []string) Predicate[domain.GeneralFeatures] {
	return func(f domain.GeneralFeatures) int {
		n := 0
		for _, s := range f.Symptoms {
			if containsAny(normalizeText(s), keywords) {
				n++
			}
		}
		return n
	}
}

// GeneralRules es la tabla del cuestionario general.
var GeneralRules = RuleSet[domain.GeneralFeatures]{
	{Name: "age_under_30", Dosha: domain.Vata, Weight: 2, When: when(func(f domain.GeneralFeatures) bool { return f.Age < 30 })},
	{Name: "age_30_49", Dosha: domain.Pitta, Weight: 2, When: when(func(f domain.GeneralFeatures) bool { return f.Age >= 30 && f.Age < 50 })},
	{Name: "age_50_plus", Dosha: domain.Kapha, Weight: 2, When: when(func(f domain.GeneralFeatures) bool { return f.Age >= 50 })},

	{Name: "gender_female", Dosha: domain.Vata, Weight: 1, When: when(isFemale)},
	{Name: "gender_female", Dosha: domain.Kapha, Weight: 1, When: when(isFemale)},
	{Name: "gender_other", Dosha: domain.Pitta, Weight: 1, When: when(func(f domain.GeneralFeatures) bool { return !isFemale(f) })},

	{Name: "symptom_vata", Dosha: domain.Vata, Weight: 2, When: symptomMatches(vataSymptomKeywords)},
	{Name: "symptom_pitta", Dosha: domain.Pitta, Weight: 2, When: symptomMatches(pittaSymptomKeywords)},
	{Name: "symptom_kapha", Dosha: domain.Kapha, Weight: 2, When: symptomMatches(kaphaSymptomKeywords)},

	{Name: "stress_high", Dosha: domain.Vata, Weight: 2, When: when(func(f domain.GeneralFeatures) bool { return f.StressLevel >= 4 })},
	{Name: "stress_moderate", Dosha: domain.Pitta, Weight: 1, When: when(func(f domain.GeneralFeatures) bool { return f.StressLevel == 3 })},
}

func isFemale(f domain.GeneralFeatures) bool {
	return f.Gender == domain.GenderFemale
}

var hormonalKeywords = []string{"thyroid", "pcos", "pcod"}

func hasHormonalIssue(f domain.HairFallFeatures) bool {
	for _, h := range f.HormonalIssues {
		if containsAny(normalizeText(h), hormonalKeywords) {
			return true
		}
	}
	return false
}

func poorQuality(q domain.Quality) bool {
	return q == domain.QualityPoor || q == domain.QualityTerrible
}

func poorDiet(f domain.HairFallFeatures) bool { return poorQuality(f.DietQuality) }

// HairFallRules es la tabla del cuestionario de caida de cabello.
var HairFallRules = RuleSet[domain.HairFallFeatures]{
	{Name: "stress_high", Dosha: domain.Vata, Weight: 30, When: when(func(f domain.HairFallFeatures) bool { return f.StressLevel >= 7 })},
	{Name: "anxiety_frequent", Dosha: domain.Vata, Weight: 25, When: when(func(f domain.HairFallFeatures) bool {
		return f.AnxietyFrequency == domain.FrequencyOften || f.AnxietyFrequency == domain.FrequencyConstantly
	})},
	{Name: "sleep_poor", Dosha: domain.Vata, Weight: 20, When: when(func(f domain.HairFallFeatures) bool { return poorQuality(f.SleepQuality) })},

	{Name: "diet_poor", Dosha: domain.Vata, Weight: 15, When: when(poorDiet)},
	{Name: "diet_poor", Dosha: domain.Pitta, Weight: 10, When: when(poorDiet)},
	{Name: "diet_poor", Dosha: domain.Kapha, Weight: 5, When: when(poorDiet)},

	{Name: "exercise_rare", Dosha: domain.Kapha, Weight: 20, When: when(func(f domain.HairFallFeatures) bool { return f.ExerciseFrequency == domain.ExerciseRarely })},
	{Name: "exercise_daily", Dosha: domain.Kapha, Weight: -10, When: when(func(f domain.HairFallFeatures) bool { return f.ExerciseFrequency == domain.ExerciseDaily })},

	{Name: "hormonal_issue", Dosha: domain.Pitta, Weight: 25, When: when(hasHormonalIssue)},

	{Name: "scalp_oily", Dosha: domain.Kapha, Weight: 15, When: when(func(f domain.HairFallFeatures) bool { return f.ScalpCondition == domain.ScalpOily })},
	{Name: "scalp_dry", Dosha: domain.Vata, Weight: 15, When: when(func(f domain.HairFallFeatures) bool { return f.ScalpCondition == domain.ScalpDry })},
	{Name: "scalp_itchy", Dosha: domain.Pitta, Weight: 20, When: when(func(f domain.HairFallFeatures) bool { return f.ScalpCondition == domain.ScalpItchy })},

	{Name: "heat_styling", Dosha: domain.Pitta, Weight: 15, When: when(func(f domain.HairFallFeatures) bool {
		return f.HairCareRoutine == domain.HairCareFrequentHeatStyling
	})},
}
