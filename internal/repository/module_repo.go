package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vaidya/internal/domain"
)

// ModuleRepository persiste modulos de terapia por clave (reserva o id de modulo).
//
// Put aplica versionado optimista: solo escribe si la version guardada coincide con
// module.Version (0 = no debe existir registro). Devuelve el modulo con la version nueva.
type ModuleRepository interface {
	Get(ctx context.Context, key string) (domain.TherapyModule, error)
	Put(ctx context.Context, key string, module domain.TherapyModule) (domain.TherapyModule, error)
}

type PgModuleRepository struct {
	pool *pgxpool.Pool
}

func NewPgModuleRepository(pool *pgxpool.Pool) *PgModuleRepository {
	return &PgModuleRepository{pool: pool}
}

func (r *PgModuleRepository) Get(ctx context.Context, key string) (domain.TherapyModule, error) {
	const query = `
		SELECT id, template_id, name, description, clinic_name, scheduled_date, scheduled_time,
		       booking_id, patient_id, sections, overall_progress, version, created_at, updated_at
		FROM therapy_modules
		WHERE module_key = $1
	`
	var (
		m        domain.TherapyModule
		sections []byte
	)
	err := r.pool.QueryRow(ctx, query, key).Scan(
		&m.ID,
		&m.TemplateID,
		&m.Name,
		&m.Description,
		&m.ClinicName,
		&m.ScheduledDate,
		&m.ScheduledTime,
		&m.BookingID,
		&m.PatientID,
		&sections,
		&m.OverallProgress,
		&m.Version,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.TherapyModule{}, domain.ErrModuleNotFound
	}
	if err != nil {
		return domain.TherapyModule{}, err
	}
	if err := json.Unmarshal(sections, &m.Sections); err != nil {
		return domain.TherapyModule{}, fmt.Errorf("decode module sections: %w", err)
	}
	return m, nil
}

func (r *PgModuleRepository) Put(ctx context.Context, key string, module domain.TherapyModule) (domain.TherapyModule, error) {
	sections, err := json.Marshal(module.Sections)
	if err != nil {
		return domain.TherapyModule{}, fmt.Errorf("encode module sections: %w", err)
	}

	var query string
	if module.Version == 0 {
		query = `
			INSERT INTO therapy_modules (
				module_key, id, template_id, name, description, clinic_name, scheduled_date, scheduled_time,
				booking_id, sections, overall_progress, version, created_at, updated_at, patient_id
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12 + 1, $13, $14, $15)
			ON CONFLICT (module_key) DO NOTHING
			RETURNING version
		`
	} else {
		query = `
			UPDATE therapy_modules
			SET id = $2, template_id = $3, name = $4, description = $5, clinic_name = $6,
			    scheduled_date = $7, scheduled_time = $8, booking_id = $9, sections = $10,
			    overall_progress = $11, version = version + 1, created_at = $13, updated_at = $14,
			    patient_id = $15
			WHERE module_key = $1 AND version = $12
			RETURNING version
		`
	}

	var version int
	err = r.pool.QueryRow(ctx, query,
		key,
		module.ID,
		module.TemplateID,
		module.Name,
		module.Description,
		module.ClinicName,
		module.ScheduledDate,
		module.ScheduledTime,
		module.BookingID,
		string(sections),
		module.OverallProgress,
		module.Version,
		module.CreatedAt,
		module.UpdatedAt,
		module.PatientID,
	).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.TherapyModule{}, domain.ErrModuleVersionConflict
	}
	if err != nil {
		return domain.TherapyModule{}, err
	}

	stored := module.Clone()
	stored.Version = version
	return stored, nil
}
