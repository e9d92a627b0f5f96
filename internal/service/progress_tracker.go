package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"vaidya/internal/domain"
	"vaidya/internal/repository"
)

var ErrProgressTrackerNotConfigured = errors.New("progress tracker not configured")

// ComputeProgress recalcula round(100*completadas/total) sobre todas las secciones.
// Un modulo sin instrucciones tiene progreso 0.
func ComputeProgress(m domain.TherapyModule) int {
	completed, total := m.InstructionCount()
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// ToggleInstruction invierte el estado de una instruccion y recalcula el progreso.
// No modifica el modulo recibido: devuelve una copia actualizada.
func ToggleInstruction(m domain.TherapyModule, sectionID, instructionID string) (domain.TherapyModule, error) {
	out := m.Clone()
	for si := range out.Sections {
		if out.Sections[si].ID != sectionID {
			continue
		}
		for ii := range out.Sections[si].Instructions {
			ins := &out.Sections[si].Instructions[ii]
			if ins.ID != instructionID {
				continue
			}
			ins.Completed = !ins.Completed
			out.OverallProgress = ComputeProgress(out)
			return out, nil
		}
		return m, &domain.InstructionNotFoundError{SectionID: sectionID, InstructionID: instructionID}
	}
	return m, &domain.InstructionNotFoundError{SectionID: sectionID}
}

// ProgressTracker aplica toggles sobre modulos guardados: lee, modifica y escribe.
// No guarda estado entre llamadas; la consistencia la asegura la version del repositorio.
type ProgressTracker struct {
	repo   repository.ModuleRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewProgressTracker(repo repository.ModuleRepository, logger *zap.Logger) *ProgressTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressTracker{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Toggle invierte una instruccion del modulo guardado bajo key.
// Ante un conflicto de version devuelve domain.ErrModuleVersionConflict sin reintentar.
func (t *ProgressTracker) Toggle(ctx context.Context, key, sectionID, instructionID string) (domain.TherapyModule, error) {
	if t == nil || t.repo == nil {
		return domain.TherapyModule{}, ErrProgressTrackerNotConfigured
	}

	module, err := t.repo.Get(ctx, key)
	if err != nil {
		return domain.TherapyModule{}, err
	}

	updated, err := ToggleInstruction(module, sectionID, instructionID)
	if err != nil {
		t.logger.Error("module structure mismatch",
			zap.String("module_key", key),
			zap.String("module_id", module.ID),
			zap.String("template_id", module.TemplateID),
			zap.Error(err),
		)
		return domain.TherapyModule{}, err
	}
	updated.UpdatedAt = t.now()

	stored, err := t.repo.Put(ctx, key, updated)
	if err != nil {
		if errors.Is(err, domain.ErrModuleVersionConflict) {
			t.logger.Warn("concurrent module update rejected",
				zap.String("module_key", key),
				zap.Int("version", module.Version),
			)
		}
		return domain.TherapyModule{}, fmt.Errorf("save module: %w", err)
	}

	t.logger.Debug("instruction toggled",
		zap.String("module_key", key),
		zap.String("section_id", sectionID),
		zap.String("instruction_id", instructionID),
		zap.Int("overall_progress", stored.OverallProgress),
	)
	return stored, nil
}
