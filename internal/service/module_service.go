package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"vaidya/internal/domain"
	"vaidya/internal/repository"
)

// ModuleService crea y consulta modulos de terapia por reserva.
type ModuleService struct {
	factory *TherapyModuleFactory
	repo    repository.ModuleRepository
	logger  *zap.Logger
}

var (
	ErrModuleServiceNotConfigured = errors.New("module service not configured")
	ErrModuleInvalidInput         = errors.New("module invalid input")
	ErrUnknownTemplate            = errors.New("unknown therapy template")
)

func NewModuleService(factory *TherapyModuleFactory, repo repository.ModuleRepository, logger *zap.Logger) *ModuleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModuleService{factory: factory, repo: repo, logger: logger}
}

type CreateModuleInput struct {
	TemplateID    string
	ClinicName    string
	ScheduledDate string
	ScheduledTime string
	BookingID     *string
	PatientID     string
}

// Create instancia y guarda un modulo. Si ya existe uno para la misma reserva lo devuelve
// con created=false, de modo que reenviar la confirmacion no pisa el progreso.
func (s *ModuleService) Create(ctx context.Context, in CreateModuleInput) (module domain.TherapyModule, created bool, err error) {
	if s == nil || s.factory == nil || s.repo == nil {
		return domain.TherapyModule{}, false, ErrModuleServiceNotConfigured
	}

	in.TemplateID = strings.TrimSpace(in.TemplateID)
	in.ClinicName = strings.TrimSpace(in.ClinicName)
	if in.TemplateID == "" || in.ClinicName == "" {
		return domain.TherapyModule{}, false, ErrModuleInvalidInput
	}
	if in.BookingID != nil {
		id := strings.TrimSpace(*in.BookingID)
		if id == "" {
			in.BookingID = nil
		} else {
			in.BookingID = &id
		}
	}

	if in.BookingID != nil {
		existing, err := s.repo.Get(ctx, *in.BookingID)
		switch {
		case err == nil:
			return existing, false, nil
		case !errors.Is(err, domain.ErrModuleNotFound):
			return domain.TherapyModule{}, false, err
		}
	}

	instance, ok := s.factory.Instantiate(in.TemplateID, in.ClinicName, in.ScheduledDate, in.ScheduledTime, in.BookingID)
	if !ok {
		s.logger.Warn("unknown therapy template", zap.String("template_id", in.TemplateID))
		return domain.TherapyModule{}, false, ErrUnknownTemplate
	}

	instance.PatientID = strings.TrimSpace(in.PatientID)

	key := instance.Key()
	stored, err := s.repo.Put(ctx, key, *instance)
	if errors.Is(err, domain.ErrModuleVersionConflict) && in.BookingID != nil {
		// Otra confirmacion de la misma reserva gano la carrera.
		existing, getErr := s.repo.Get(ctx, key)
		if getErr != nil {
			return domain.TherapyModule{}, false, getErr
		}
		return existing, false, nil
	}
	if err != nil {
		return domain.TherapyModule{}, false, err
	}

	s.logger.Info("therapy module created",
		zap.String("module_id", stored.ID),
		zap.String("module_key", key),
		zap.String("template_id", stored.TemplateID),
	)
	return stored, true, nil
}

func (s *ModuleService) Get(ctx context.Context, key string) (domain.TherapyModule, error) {
	if s == nil || s.repo == nil {
		return domain.TherapyModule{}, ErrModuleServiceNotConfigured
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.TherapyModule{}, domain.ErrModuleNotFound
	}
	return s.repo.Get(ctx, key)
}

// GetForPatient devuelve el modulo solo si pertenece al paciente. Un modulo de otro
// paciente se informa como inexistente. patientID vacio no filtra.
func (s *ModuleService) GetForPatient(ctx context.Context, key, patientID string) (domain.TherapyModule, error) {
	module, err := s.Get(ctx, key)
	if err != nil {
		return domain.TherapyModule{}, err
	}
	if patientID != "" && module.PatientID != "" && module.PatientID != patientID {
		s.logger.Warn("module access denied",
			zap.String("module_key", key),
			zap.String("patient_id", patientID),
		)
		return domain.TherapyModule{}, domain.ErrModuleNotFound
	}
	return module, nil
}
