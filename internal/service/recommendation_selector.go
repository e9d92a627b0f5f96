package service

import "vaidya/internal/domain"

var therapiesByDosha = map[domain.Dosha][]domain.TherapyRecommendation{
	domain.Vata: {
		{
			Name:        "Abhyanga",
			Description: "Full-body massage with warm medicated sesame oil to ground and nourish the tissues.",
			Duration:    "60 minutes",
			Frequency:   "2-3 times per week",
			Benefits:    []string{"Calms the nervous system", "Improves circulation", "Relieves dryness of skin and joints"},
		},
		{
			Name:        "Shirodhara",
			Description: "A continuous stream of warm oil poured over the forehead.",
			Duration:    "45 minutes",
			Frequency:   "Once a week",
			Benefits:    []string{"Reduces anxiety and stress", "Improves sleep quality", "Promotes mental clarity"},
		},
	},
	domain.Pitta: {
		{
			Name:        "Sheetali Chikitsa",
			Description: "Cooling treatment with herbal pastes and cool oils applied to the body.",
			Duration:    "45 minutes",
			Frequency:   "Twice a week",
			Benefits:    []string{"Reduces excess body heat", "Soothes inflammation", "Calms irritability"},
		},
		{
			Name:        "Sheetali Pranayama",
			Description: "Cooling breath: inhale through a rolled tongue, exhale through the nose.",
			Duration:    "10 minutes",
			Frequency:   "Daily",
			Benefits:    []string{"Cools the body and mind", "Aids digestion", "Lowers stress"},
		},
	},
	domain.Kapha: {
		{
			Name:        "Udvartana",
			Description: "Invigorating dry-powder massage with herbal powders applied against hair growth.",
			Duration:    "45 minutes",
			Frequency:   "2-3 times per week",
			Benefits:    []string{"Stimulates metabolism", "Reduces heaviness", "Tones the skin"},
		},
		{
			Name:        "Vamana",
			Description: "Supervised therapeutic emesis to eliminate accumulated Kapha.",
			Duration:    "Single session after preparation",
			Frequency:   "Seasonal, as prescribed",
			Benefits:    []string{"Clears respiratory congestion", "Removes excess mucus", "Restores lightness"},
		},
	},
}

var universalTherapy = domain.TherapyRecommendation{
	Name:        "Daily Yoga & Meditation",
	Description: "A short daily practice of asanas, breathing and meditation.",
	Duration:    "30 minutes",
	Frequency:   "Daily",
	Benefits:    []string{"Balances all three doshas", "Improves flexibility", "Builds emotional resilience"},
}

// RecommendationSelector consulta el catalogo fijo de recomendaciones.
// Es determinista y no tiene estado.
type RecommendationSelector struct{}

// DefaultSelector permite uso directo sin instanciar.
var DefaultSelector = RecommendationSelector{}

// SelectTherapies devuelve las terapias de la dosha dominante seguidas de la practica universal.
// Una dosha desconocida solo recibe la practica universal.
func (RecommendationSelector) SelectTherapies(dominant domain.Dosha) []domain.TherapyRecommendation {
	base := therapiesByDosha[dominant]
	out := make([]domain.TherapyRecommendation, 0, len(base)+1)
	for _, t := range base {
		out = append(out, cloneRecommendation(t))
	}
	return append(out, cloneRecommendation(universalTherapy))
}

// HairFallBundleThreshold es el porcentaje que una dosha debe superar para recibir sus bundles.
const HairFallBundleThreshold = 40

var hairFallBundles = map[domain.Dosha][]domain.RecommendationBundle{
	domain.Vata: {
		{Category: domain.BundleCategoryDiet, Title: "Nourishing Vata diet", Items: []string{
			"Warm, cooked meals with ghee and healthy oils",
			"Soaked almonds and sesame seeds daily",
			"Avoid cold, dry and raw foods",
		}},
		{Category: domain.BundleCategoryLifestyle, Title: "Grounding routine", Items: []string{
			"Keep regular sleep and meal times",
			"Practice calming pranayama before bed",
			"Limit screen time in the evening",
		}},
		{Category: domain.BundleCategoryHairCare, Title: "Deep oiling", Items: []string{
			"Warm sesame or bhringraj oil massage twice a week",
			"Use mild, sulfate-free cleansers",
			"Avoid heat styling",
		}},
	},
	domain.Pitta: {
		{Category: domain.BundleCategoryDiet, Title: "Cooling Pitta diet", Items: []string{
			"Favor cucumber, coconut water and leafy greens",
			"Reduce spicy, fried and fermented foods",
			"Limit caffeine and alcohol",
		}},
		{Category: domain.BundleCategoryLifestyle, Title: "Cooling routine", Items: []string{
			"Avoid midday sun exposure",
			"Practice Sheetali pranayama daily",
			"Schedule regular breaks from intense work",
		}},
		{Category: domain.BundleCategoryHairCare, Title: "Scalp cooling", Items: []string{
			"Coconut or amla oil applications",
			"Wash with lukewarm, never hot, water",
			"Aloe vera scalp mask once a week",
		}},
	},
	domain.Kapha: {
		{Category: domain.BundleCategoryDiet, Title: "Light Kapha diet", Items: []string{
			"Favor light, warm and spiced foods",
			"Reduce dairy, sugar and heavy meals",
			"Add ginger and black pepper to meals",
		}},
		{Category: domain.BundleCategoryLifestyle, Title: "Energizing routine", Items: []string{
			"Exercise vigorously every day",
			"Wake up before sunrise",
			"Avoid daytime naps",
		}},
		{Category: domain.BundleCategoryHairCare, Title: "Scalp detox", Items: []string{
			"Wash hair regularly to control oil",
			"Use light oils like mustard sparingly",
			"Exfoliate the scalp with herbal powders",
		}},
	},
}

var balancedBundle = domain.RecommendationBundle{
	Category: domain.BundleCategoryLifestyle,
	Title:    "Balanced maintenance",
	Items: []string{
		"Keep a regular daily routine",
		"Eat fresh, seasonal whole foods",
		"Oil and massage the scalp weekly",
	},
}

// SelectHairFallBundles devuelve los bundles de cada dosha que supera el umbral, en orden
// Vata, Pitta, Kapha. Si ninguna lo supera devuelve el bundle equilibrado.
func (RecommendationSelector) SelectHairFallBundles(profile domain.ConstitutionProfile) []domain.RecommendationBundle {
	var out []domain.RecommendationBundle
	for _, d := range domain.Doshas {
		if profile.Percent(d) <= HairFallBundleThreshold {
			continue
		}
		for _, b := range hairFallBundles[d] {
			out = append(out, cloneBundle(b))
		}
	}
	if len(out) == 0 {
		out = append(out, cloneBundle(balancedBundle))
	}
	return out
}

func cloneRecommendation(t domain.TherapyRecommendation) domain.TherapyRecommendation {
	t.Benefits = append([]string(nil), t.Benefits...)
	return t
}

func cloneBundle(b domain.RecommendationBundle) domain.RecommendationBundle {
	b.Items = append([]string(nil), b.Items...)
	return b
}
