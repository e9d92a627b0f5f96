package service

import "vaidya/internal/domain"

// QuestionKind identifica la variante de pregunta.
type QuestionKind string

const (
	KindSingleChoice QuestionKind = "single_choice"
	KindMultiChoice  QuestionKind = "multi_choice"
	KindNumericScale QuestionKind = "numeric_scale"
)

// Question es una union etiquetada cerrada: solo los tres tipos de este archivo la implementan.
type Question interface {
	QuestionID() string
	Kind() QuestionKind
	isQuestion()
}

// SingleChoiceQuestion acepta exactamente una opcion.
type SingleChoiceQuestion struct {
	ID       string
	Prompt   string
	Options  []string
	Required bool
}

// MultiChoiceQuestion acepta una lista; sin Options acepta etiquetas libres.
type MultiChoiceQuestion struct {
	ID       string
	Prompt   string
	Options  []string
	Required bool
}

// NumericScaleQuestion acepta un numero dentro de [Min, Max].
type NumericScaleQuestion struct {
	ID       string
	Prompt   string
	Min      float64
	Max      float64
	Integer  bool
	Required bool
}

func (q SingleChoiceQuestion) QuestionID() string { return q.ID }
func (q MultiChoiceQuestion) QuestionID() string  { return q.ID }
func (q NumericScaleQuestion) QuestionID() string { return q.ID }

func (SingleChoiceQuestion) Kind() QuestionKind { return KindSingleChoice }
func (MultiChoiceQuestion) Kind() QuestionKind  { return KindMultiChoice }
func (NumericScaleQuestion) Kind() QuestionKind { return KindNumericScale }

func (SingleChoiceQuestion) isQuestion() {}
func (MultiChoiceQuestion) isQuestion()  {}
func (NumericScaleQuestion) isQuestion() {}

// Answer es el valor ya validado de una pregunta. Solo el campo de su tipo se completa.
type Answer struct {
	Kind    QuestionKind
	Present bool
	Choice  string
	Choices []string
	Number  float64
}

const (
	qName              = "name"
	qAge               = "age"
	qGender            = "gender"
	qHeight            = "height"
	qWeight            = "weight"
	qSymptoms          = "symptoms"
	qStressLevel       = "stressLevel"
	qHairStress        = "stress_level"
	qAnxietyFrequency  = "anxiety_frequency"
	qSleepQuality      = "sleep_quality"
	qDietQuality       = "diet_quality"
	qExerciseFrequency = "exercise_frequency"
	qHormonalIssues    = "hormonal_issues"
	qScalpCondition    = "scalp_condition"
	qHairCareRoutine   = "hair_care_routine"
	qFamilyHistory     = "family_history"
)

var qualityOptions = []string{
	string(domain.QualityExcellent),
	string(domain.QualityGood),
	string(domain.QualityFair),
	string(domain.QualityPoor),
	string(domain.QualityTerrible),
}

// GeneralQuestionnaire devuelve las preguntas del cuestionario general.
func GeneralQuestionnaire() []Question {
	return []Question{
		NumericScaleQuestion{ID: qAge, Prompt: "How old are you?", Min: 0, Max: 130, Integer: true, Required: true},
		SingleChoiceQuestion{
			ID:       qGender,
			Prompt:   "Gender",
			Options:  []string{string(domain.GenderMale), string(domain.GenderFemale), string(domain.GenderOther)},
			Required: true,
		},
		NumericScaleQuestion{ID: qHeight, Prompt: "Height (cm)", Min: 0, Max: 300},
		NumericScaleQuestion{ID: qWeight, Prompt: "Weight (kg)", Min: 0, Max: 500},
		MultiChoiceQuestion{ID: qSymptoms, Prompt: "Which symptoms do you experience?"},
		NumericScaleQuestion{ID: qStressLevel, Prompt: "How stressed do you feel? (1-5)", Min: 1, Max: 5, Integer: true, Required: true},
	}
}

// HairFallQuestionnaire devuelve las preguntas del cuestionario de caida de cabello.
func HairFallQuestionnaire() []Question {
	return []Question{
		NumericScaleQuestion{ID: qHairStress, Prompt: "Stress level (1-10)", Min: 1, Max: 10, Integer: true, Required: true},
		SingleChoiceQuestion{
			ID:     qAnxietyFrequency,
			Prompt: "How often do you feel anxious?",
			Options: []string{
				string(domain.FrequencyNever),
				string(domain.FrequencyRarely),
				string(domain.FrequencySometimes),
				string(domain.FrequencyOften),
				string(domain.FrequencyConstantly),
			},
			Required: true,
		},
		SingleChoiceQuestion{ID: qSleepQuality, Prompt: "How is your sleep?", Options: qualityOptions, Required: true},
		SingleChoiceQuestion{ID: qDietQuality, Prompt: "How is your diet?", Options: qualityOptions, Required: true},
		SingleChoiceQuestion{
			ID:     qExerciseFrequency,
			Prompt: "How often do you exercise?",
			Options: []string{
				string(domain.ExerciseDaily),
				string(domain.ExerciseRegularly),
				string(domain.ExerciseOccasionally),
				string(domain.ExerciseRarely),
			},
			Required: true,
		},
		MultiChoiceQuestion{ID: qHormonalIssues, Prompt: "Any hormonal conditions (thyroid, PCOS...)?"},
		SingleChoiceQuestion{
			ID:     qScalpCondition,
			Prompt: "Scalp condition",
			Options: []string{
				string(domain.ScalpNormal),
				string(domain.ScalpOily),
				string(domain.ScalpDry),
				string(domain.ScalpItchy),
				string(domain.ScalpDandruff),
			},
			Required: true,
		},
		SingleChoiceQuestion{
			ID:     qHairCareRoutine,
			Prompt: "Hair care routine",
			Options: []string{
				string(domain.HairCareNatural),
				string(domain.HairCareModerate),
				string(domain.HairCareFrequentHeatStyling),
				string(domain.HairCareChemicalTreatments),
			},
			Required: true,
		},
		SingleChoiceQuestion{
			ID:     qFamilyHistory,
			Prompt: "Family history of hair loss?",
			Options: []string{
				string(domain.FamilyHistoryYes),
				string(domain.FamilyHistoryNo),
				string(domain.FamilyHistoryUnsure),
			},
			Required: true,
		},
	}
}

// Questionnaire devuelve las preguntas de una variante; ok=false si no existe.
func Questionnaire(variant domain.AssessmentVariant) ([]Question, bool) {
	switch variant {
	case domain.VariantGeneral:
		return GeneralQuestionnaire(), true
	case domain.VariantHairFall:
		return HairFallQuestionnaire(), true
	default:
		return nil, false
	}
}

// QuestionView es la forma JSON de una pregunta.
type QuestionView struct {
	ID       string       `json:"id"`
	Type     QuestionKind `json:"type"`
	Prompt   string       `json:"prompt"`
	Options  []string     `json:"options,omitempty"`
	Min      *float64     `json:"min,omitempty"`
	Max      *float64     `json:"max,omitempty"`
	Required bool         `json:"required"`
}

// DescribeQuestions convierte la union a su vista JSON.
func DescribeQuestions(questions []Question) []QuestionView {
	out := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		switch v := q.(type) {
		case SingleChoiceQuestion:
			out = append(out, QuestionView{ID: v.ID, Type: v.Kind(), Prompt: v.Prompt, Options: v.Options, Required: v.Required})
		case MultiChoiceQuestion:
			out = append(out, QuestionView{ID: v.ID, Type: v.Kind(), Prompt: v.Prompt, Options: v.Options, Required: v.Required})
		case NumericScaleQuestion:
			minV, maxV := v.Min, v.Max
			out = append(out, QuestionView{ID: v.ID, Type: v.Kind(), Prompt: v.Prompt, Min: &minV, Max: &maxV, Required: v.Required})
		}
	}
	return out
}
