package domain

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// AssessmentVariant identifica el cuestionario usado.
type AssessmentVariant string

const (
	VariantGeneral  AssessmentVariant = "general"
	VariantHairFall AssessmentVariant = "hairfall"
)

// GeneralFeatures es la forma canonica del cuestionario general.
type GeneralFeatures struct {
	Name        string   `json:"name,omitempty"`
	Age         int      `json:"age"`
	Gender      Gender   `json:"gender"`
	HeightCm    float64  `json:"height,omitempty"`
	WeightKg    float64  `json:"weight,omitempty"`
	Symptoms    []string `json:"symptoms"`    // en minusculas
	StressLevel int      `json:"stressLevel"` // 1-5
}

type Frequency string

const (
	FrequencyNever      Frequency = "never"
	FrequencyRarely     Frequency = "rarely"
	FrequencySometimes  Frequency = "sometimes"
	FrequencyOften      Frequency = "often"
	FrequencyConstantly Frequency = "constantly"
)

type Quality string

const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityFair      Quality = "fair"
	QualityPoor      Quality = "poor"
	QualityTerrible  Quality = "terrible"
)

type ExerciseFrequency string

const (
	ExerciseDaily        ExerciseFrequency = "daily"
	ExerciseRegularly    ExerciseFrequency = "regularly"
	ExerciseOccasionally ExerciseFrequency = "occasionally"
	ExerciseRarely       ExerciseFrequency = "rarely"
)

type ScalpCondition string

const (
	ScalpNormal   ScalpCondition = "normal"
	ScalpOily     ScalpCondition = "oily"
	ScalpDry      ScalpCondition = "dry"
	ScalpItchy    ScalpCondition = "itchy"
	ScalpDandruff ScalpCondition = "dandruff"
)

type HairCareRoutine string

const (
	HairCareNatural             HairCareRoutine = "natural"
	HairCareModerate            HairCareRoutine = "moderate"
	HairCareFrequentHeatStyling HairCareRoutine = "frequent_heat_styling"
	HairCareChemicalTreatments  HairCareRoutine = "chemical_treatments"
)

type FamilyHistory string

const (
	FamilyHistoryYes    FamilyHistory = "yes"
	FamilyHistoryNo     FamilyHistory = "no"
	FamilyHistoryUnsure FamilyHistory = "unsure"
)

// HairFallFeatures es la forma canonica del cuestionario de caida de cabello.
type HairFallFeatures struct {
	StressLevel       int               `json:"stress_level"` // 1-10
	AnxietyFrequency  Frequency         `json:"anxiety_frequency"`
	SleepQuality      Quality           `json:"sleep_quality"`
	DietQuality       Quality           `json:"diet_quality"`
	ExerciseFrequency ExerciseFrequency `json:"exercise_frequency"`
	HormonalIssues    []string          `json:"hormonal_issues"` // en minusculas
	ScalpCondition    ScalpCondition    `json:"scalp_condition"`
	HairCareRoutine   HairCareRoutine   `json:"hair_care_routine"`
	FamilyHistory     FamilyHistory     `json:"family_history"`
}
