package service

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"vaidya/internal/domain"
)

// IntakeNormalizer valida y convierte un intake sin tipos en un conjunto de rasgos canonico.
// No tiene estado ni efectos secundarios.
type IntakeNormalizer struct{}

// DefaultIntakeNormalizer permite uso directo sin instanciar.
var DefaultIntakeNormalizer = IntakeNormalizer{}

// NormalizeGeneral produce GeneralFeatures o un *domain.InvalidIntakeError.
func (n IntakeNormalizer) NormalizeGeneral(raw map[string]any) (domain.GeneralFeatures, error) {
	answers, err := n.Validate(GeneralQuestionnaire(), raw)
	if err != nil {
		return domain.GeneralFeatures{}, err
	}

	name, _ := lookupField(raw, qName)
	nameStr, _ := name.(string)

	return domain.GeneralFeatures{
		Name:        strings.TrimSpace(nameStr),
		Age:         int(answers[qAge].Number),
		Gender:      domain.Gender(answers[qGender].Choice),
		HeightCm:    answers[qHeight].Number,
		WeightKg:    answers[qWeight].Number,
		Symptoms:    nonNilTags(answers[qSymptoms].Choices),
		StressLevel: int(answers[qStressLevel].Number),
	}, nil
}

// NormalizeHairFall produce HairFallFeatures o un *domain.InvalidIntakeError.
func (n IntakeNormalizer) NormalizeHairFall(raw map[string]any) (domain.HairFallFeatures, error) {
	answers, err := n.Validate(HairFallQuestionnaire(), raw)
	if err != nil {
		return domain.HairFallFeatures{}, err
	}

	return domain.HairFallFeatures{
		StressLevel:       int(answers[qHairStress].Number),
		AnxietyFrequency:  domain.Frequency(answers[qAnxietyFrequency].Choice),
		SleepQuality:      domain.Quality(answers[qSleepQuality].Choice),
		DietQuality:       domain.Quality(answers[qDietQuality].Choice),
		ExerciseFrequency: domain.ExerciseFrequency(answers[qExerciseFrequency].Choice),
		HormonalIssues:    nonNilTags(answers[qHormonalIssues].Choices),
		ScalpCondition:    domain.ScalpCondition(answers[qScalpCondition].Choice),
		HairCareRoutine:   domain.HairCareRoutine(answers[qHairCareRoutine].Choice),
		FamilyHistory:     domain.FamilyHistory(answers[qFamilyHistory].Choice),
	}, nil
}

// Validate recorre el cuestionario y valida cada respuesta segun el tipo de pregunta.
func (IntakeNormalizer) Validate(questions []Question, raw map[string]any) (map[string]Answer, error) {
	answers := make(map[string]Answer, len(questions))
	for _, q := range questions {
		value, _ := lookupField(raw, q.QuestionID())

		var (
			ans Answer
			err error
		)
		switch v := q.(type) {
		case SingleChoiceQuestion:
			ans, err = validateSingleChoice(v, value)
		case MultiChoiceQuestion:
			ans, err = validateMultiChoice(v, value)
		case NumericScaleQuestion:
			ans, err = validateNumericScale(v, value)
		default:
			err = &domain.InvalidIntakeError{Field: q.QuestionID(), Reason: "unsupported question kind"}
		}
		if err != nil {
			return nil, err
		}
		answers[q.QuestionID()] = ans
	}
	return answers, nil
}

func validateSingleChoice(q SingleChoiceQuestion, value any) (Answer, error) {
	ans := Answer{Kind: KindSingleChoice}
	if isBlank(value) {
		if q.Required {
			return ans, &domain.InvalidIntakeError{Field: q.ID, Reason: "is required"}
		}
		return ans, nil
	}
	s, ok := value.(string)
	if !ok {
		return ans, &domain.InvalidIntakeError{Field: q.ID, Reason: "must be a string"}
	}
	choice := normalizeChoice(s)
	if len(q.Options) > 0 && !containsExact(q.Options, choice) {
		return ans, &domain.InvalidIntakeError{
			Field:  q.ID,
			Reason: fmt.Sprintf("must be one of %s", strings.Join(q.Options, ", ")),
		}
	}
	ans.Present = true
	ans.Choice = choice
	return ans, nil
}

func validateMultiChoice(q MultiChoiceQuestion, value any) (Answer, error) {
	ans := Answer{Kind: KindMultiChoice}
	var rawTags []string
	switch v := value.(type) {
	case nil:
	case string:
		rawTags = strings.Split(v, ",")
	case []string:
		rawTags = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return ans, &domain.InvalidIntakeError{Field: q.ID, Reason: "must contain only strings"}
			}
			rawTags = append(rawTags, s)
		}
	default:
		return ans, &domain.InvalidIntakeError{Field: q.ID, Reason: "must be a list of strings"}
	}

	tags := make([]string, 0, len(rawTags))
	for _, t := range rawTags {
		tag := normalizeText(strings.TrimSpace(t))
		if tag == "" {
			continue
		}
		if len(q.Options) > 0 && !containsExact(q.Options, normalizeChoice(tag)) {
			return ans, &domain.InvalidIntakeError{Field: q.ID, Reason: fmt.Sprintf("unknown option %q", tag)}
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 && q.Required {
		return ans, &domain.InvalidIntakeError{Field: q.ID, Reason: "is required"}
	}
	ans.Present = len(tags) > 0
	ans.Choices = tags
	return ans, nil
}

func validateNumericScale(q NumericScaleQuestion, value any) (Answer, error) {
	ans := Answer{Kind: KindNumericScale}
	if isBlank(value) {
		if q.Required {
			return ans, &domain.InvalidIntakeError{Field: q.ID, Reason: "is required"}
		}
		return ans, nil
	}
	num, err := coerceNumber(value)
	if err != nil {
		return ans, &domain.InvalidIntakeError{Field: q.ID, Reason: "must be numeric"}
	}
	if q.Integer && num != math.Trunc(num) {
		return ans, &domain.InvalidIntakeError{Field: q.ID, Reason: "must be a whole number"}
	}
	if num < q.Min || num > q.Max {
		return ans, &domain.InvalidIntakeError{
			Field:  q.ID,
			Reason: fmt.Sprintf("must be between %s and %s", formatBound(q.Min), formatBound(q.Max)),
		}
	}
	ans.Present = true
	ans.Number = num
	return ans, nil
}

// coerceNumber acepta numeros JSON y strings numericos ("22", " 4.5 ").
func coerceNumber(value any) (float64, error) {
	var num float64
	switch v := value.(type) {
	case float64:
		num = v
	case float32:
		num = float64(v)
	case int:
		num = float64(v)
	case int32:
		num = float64(v)
	case int64:
		num = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, err
		}
		num = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, err
		}
		num = f
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", value)
	}
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, fmt.Errorf("non-finite number")
	}
	return num, nil
}

// lookupField busca la clave exacta y, si no existe, ignorando mayusculas, "_" y "-".
// Si varias claves coinciden al plegarlas gana la primera en orden lexicografico.
func lookupField(raw map[string]any, key string) (any, bool) {
	if raw == nil {
		return nil, false
	}
	if v, ok := raw[key]; ok {
		return v, true
	}
	want := foldKey(key)
	var matches []string
	for k := range raw {
		if foldKey(k) == want {
			matches = append(matches, k)
		}
	}
	if len(matches) == 0 {
		return nil, false
	}
	sort.Strings(matches)
	return raw[matches[0]], true
}

func foldKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(k)
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

// normalizeChoice: "Frequent heat-styling" -> "frequent_heat_styling".
func normalizeChoice(s string) string {
	s = normalizeText(strings.TrimSpace(s))
	s = strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
	return s
}

// normalizeText baja a minusculas y elimina diacriticos ("Ansiedád" -> "ansiedad").
func normalizeText(s string) string {
	s = strings.ToLower(s)
	// transform.Chain guarda estado: se crea uno por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func containsAny(s string, list []string) bool {
	for _, x := range list {
		if strings.Contains(s, x) {
			return true
		}
	}
	return false
}

func containsExact(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
