package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vaidya/internal/domain"
	"vaidya/internal/repository"
)

// AssessmentService orquesta normalizacion, clasificacion y recomendaciones.
// El repositorio es opcional: sin el, los resultados no se guardan.
type AssessmentService struct {
	normalizer IntakeNormalizer
	classifier ConstitutionClassifier
	selector   RecommendationSelector
	repo       repository.AssessmentRepository
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

var (
	ErrAssessmentServiceNotConfigured = errors.New("assessment service not configured")
	ErrAssessmentStoreNotConfigured   = errors.New("assessment store not configured")
)

func NewAssessmentService(repo repository.AssessmentRepository, logger *zap.Logger) *AssessmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{
		normalizer: DefaultIntakeNormalizer,
		classifier: DefaultClassifier,
		selector:   DefaultSelector,
		repo:       repo,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      func() string { return uuid.NewString() },
	}
}

type GeneralAssessmentResult struct {
	AssessmentID string                         `json:"assessmentId,omitempty"`
	Profile      domain.ConstitutionProfile     `json:"profile"`
	Therapies    []domain.TherapyRecommendation `json:"therapies"`
}

type HairFallAssessmentResult struct {
	AssessmentID string `json:"assessmentId,omitempty"`
	domain.HairFallReport
}

// AssessGeneral procesa el cuestionario general.
// Un intake invalido devuelve *domain.InvalidIntakeError antes de clasificar.
func (s *AssessmentService) AssessGeneral(ctx context.Context, userID string, raw map[string]any) (GeneralAssessmentResult, error) {
	if s == nil {
		return GeneralAssessmentResult{}, ErrAssessmentServiceNotConfigured
	}
	features, err := s.normalizer.NormalizeGeneral(raw)
	if err != nil {
		return GeneralAssessmentResult{}, err
	}

	result := s.classifier.ClassifyGeneral(features)
	s.logger.Debug("general assessment classified",
		zap.Int("vata_raw", result.RawScores[domain.Vata]),
		zap.Int("pitta_raw", result.RawScores[domain.Pitta]),
		zap.Int("kapha_raw", result.RawScores[domain.Kapha]),
		zap.Int("rules_fired", len(result.Hits)),
	)

	id, err := s.persist(ctx, userID, domain.VariantGeneral, result.Profile)
	if err != nil {
		return GeneralAssessmentResult{}, err
	}
	return GeneralAssessmentResult{
		AssessmentID: id,
		Profile:      result.Profile,
		Therapies:    s.selector.SelectTherapies(result.Profile.Dominant),
	}, nil
}

// AssessHairFall procesa el cuestionario de caida de cabello.
func (s *AssessmentService) AssessHairFall(ctx context.Context, userID string, raw map[string]any) (HairFallAssessmentResult, error) {
	if s == nil {
		return HairFallAssessmentResult{}, ErrAssessmentServiceNotConfigured
	}
	features, err := s.normalizer.NormalizeHairFall(raw)
	if err != nil {
		return HairFallAssessmentResult{}, err
	}

	report := BuildHairFallReport(features)
	id, err := s.persist(ctx, userID, domain.VariantHairFall, report.DoshaAnalysis)
	if err != nil {
		return HairFallAssessmentResult{}, err
	}
	return HairFallAssessmentResult{AssessmentID: id, HairFallReport: report}, nil
}

func (s *AssessmentService) Get(ctx context.Context, id string) (domain.AssessmentRecord, error) {
	if s == nil || s.repo == nil {
		return domain.AssessmentRecord{}, ErrAssessmentStoreNotConfigured
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.AssessmentRecord{}, domain.ErrAssessmentNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *AssessmentService) persist(ctx context.Context, userID string, variant domain.AssessmentVariant, profile domain.ConstitutionProfile) (string, error) {
	if s.repo == nil {
		return "", nil
	}
	record := domain.AssessmentRecord{
		ID:        s.newID(),
		UserID:    strings.TrimSpace(userID),
		Variant:   variant,
		Profile:   profile,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("failed to store assessment", zap.String("variant", string(variant)), zap.Error(err))
		return "", err
	}
	return record.ID, nil
}
