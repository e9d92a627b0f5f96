package service

import "vaidya/internal/domain"

// hairHealthPenalty resta puntos al puntaje capilar por cada factor de riesgo.
type hairHealthPenalty struct {
	name    string
	points  int
	applies func(domain.HairFallFeatures) bool
}

var hairHealthPenalties = []hairHealthPenalty{
	{"stress_high", 20, func(f domain.HairFallFeatures) bool { return f.StressLevel >= 7 }},
	{"stress_moderate", 10, func(f domain.HairFallFeatures) bool { return f.StressLevel >= 4 && f.StressLevel < 7 }},
	{"anxiety_frequent", 10, func(f domain.HairFallFeatures) bool {
		return f.AnxietyFrequency == domain.FrequencyOften || f.AnxietyFrequency == domain.FrequencyConstantly
	}},
	{"sleep_poor", 10, func(f domain.HairFallFeatures) bool { return poorQuality(f.SleepQuality) }},
	{"diet_poor", 10, poorDiet},
	{"exercise_rare", 5, func(f domain.HairFallFeatures) bool { return f.ExerciseFrequency == domain.ExerciseRarely }},
	{"hormonal_issue", 10, hasHormonalIssue},
	{"scalp_condition", 10, func(f domain.HairFallFeatures) bool {
		return f.ScalpCondition != "" && f.ScalpCondition != domain.ScalpNormal
	}},
	{"heat_styling", 10, func(f domain.HairFallFeatures) bool {
		return f.HairCareRoutine == domain.HairCareFrequentHeatStyling
	}},
	{"family_history", 15, func(f domain.HairFallFeatures) bool { return f.FamilyHistory == domain.FamilyHistoryYes }},
}

// HairHealthScore parte de 100 y descuenta cada factor de riesgo presente; queda en [0, 100].
func HairHealthScore(f domain.HairFallFeatures) int {
	score := 100
	for _, p := range hairHealthPenalties {
		if p.applies(f) {
			score -= p.points
		}
	}
	return min(max(score, 0), 100)
}

// RiskLevelForScore traduce el puntaje capilar a un nivel de riesgo.
func RiskLevelForScore(score int) domain.RiskLevel {
	switch {
	case score >= 70:
		return domain.RiskLow
	case score >= 40:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}

// BuildHairFallReport arma el reporte completo a partir de rasgos ya normalizados.
func BuildHairFallReport(f domain.HairFallFeatures) domain.HairFallReport {
	profile := DefaultClassifier.ClassifyHairFall(f).Profile
	score := HairHealthScore(f)
	return domain.HairFallReport{
		DoshaAnalysis:   profile,
		DominantDosha:   profile.Dominant,
		Recommendations: DefaultSelector.SelectHairFallBundles(profile),
		RiskLevel:       RiskLevelForScore(score),
		HairHealthScore: score,
	}
}
