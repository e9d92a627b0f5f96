package domain

// TherapyRecommendation es una entrada del catalogo de terapias sugeridas.
type TherapyRecommendation struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Frequency   string   `json:"frequency"`
	Benefits    []string `json:"benefits"`
}

const (
	BundleCategoryDiet      = "diet"
	BundleCategoryLifestyle = "lifestyle"
	BundleCategoryHairCare  = "haircare"
)

// RecommendationBundle agrupa consejos por categoria (dieta, estilo de vida, cuidado capilar).
type RecommendationBundle struct {
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Items    []string `json:"items"`
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// HairFallReport es la salida del cuestionario de caida de cabello.
type HairFallReport struct {
	DoshaAnalysis   ConstitutionProfile    `json:"doshaAnalysis"`
	DominantDosha   Dosha                  `json:"dominantDosha"`
	Recommendations []RecommendationBundle `json:"recommendations"`
	RiskLevel       RiskLevel              `json:"riskLevel"`
	HairHealthScore int                    `json:"hairHealthScore"` // 0-100
}
