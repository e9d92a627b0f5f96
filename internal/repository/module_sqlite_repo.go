package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"vaidya/internal/domain"
)

// SQLiteModuleRepository es el almacen de un solo nodo (CLI, desarrollo local).
type SQLiteModuleRepository struct {
	db *sql.DB
}

func NewSQLiteModuleRepository(dbPath string) (*SQLiteModuleRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Una sola conexion: ":memory:" crea una base distinta por conexion.
	db.SetMaxOpenConns(1)

	repo := &SQLiteModuleRepository{db: db}
	if err := repo.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return repo, nil
}

func (r *SQLiteModuleRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteModuleRepository) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS therapy_modules (
        module_key TEXT PRIMARY KEY,
        id TEXT NOT NULL,
        template_id TEXT NOT NULL,
        name TEXT NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        clinic_name TEXT NOT NULL,
        scheduled_date TEXT NOT NULL,
        scheduled_time TEXT NOT NULL,
        booking_id TEXT,
        patient_id TEXT NOT NULL DEFAULT '',
        sections TEXT NOT NULL,
        overall_progress INTEGER NOT NULL,
        version INTEGER NOT NULL,
        created_at TEXT NOT NULL,
        updated_at TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_therapy_modules_id ON therapy_modules(id);
    `
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (r *SQLiteModuleRepository) Get(ctx context.Context, key string) (domain.TherapyModule, error) {
	const query = `
		SELECT id, template_id, name, description, clinic_name, scheduled_date, scheduled_time,
		       booking_id, patient_id, sections, overall_progress, version, created_at, updated_at
		FROM therapy_modules
		WHERE module_key = ?
	`
	var (
		m                    domain.TherapyModule
		bookingID            sql.NullString
		sections             string
		createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&m.ID,
		&m.TemplateID,
		&m.Name,
		&m.Description,
		&m.ClinicName,
		&m.ScheduledDate,
		&m.ScheduledTime,
		&bookingID,
		&m.PatientID,
		&sections,
		&m.OverallProgress,
		&m.Version,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TherapyModule{}, domain.ErrModuleNotFound
	}
	if err != nil {
		return domain.TherapyModule{}, err
	}

	if bookingID.Valid {
		id := bookingID.String
		m.BookingID = &id
	}
	if err := json.Unmarshal([]byte(sections), &m.Sections); err != nil {
		return domain.TherapyModule{}, fmt.Errorf("decode module sections: %w", err)
	}
	if m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return domain.TherapyModule{}, fmt.Errorf("parse created_at: %w", err)
	}
	if m.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return domain.TherapyModule{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return m, nil
}

func (r *SQLiteModuleRepository) Put(ctx context.Context, key string, module domain.TherapyModule) (domain.TherapyModule, error) {
	sections, err := json.Marshal(module.Sections)
	if err != nil {
		return domain.TherapyModule{}, fmt.Errorf("encode module sections: %w", err)
	}

	var bookingID sql.NullString
	if module.BookingID != nil {
		bookingID = sql.NullString{String: *module.BookingID, Valid: true}
	}

	args := []any{
		module.ID,
		module.TemplateID,
		module.Name,
		module.Description,
		module.ClinicName,
		module.ScheduledDate,
		module.ScheduledTime,
		bookingID,
		module.PatientID,
		string(sections),
		module.OverallProgress,
		module.CreatedAt.UTC().Format(time.RFC3339Nano),
		module.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}

	var res sql.Result
	if module.Version == 0 {
		const query = `
			INSERT INTO therapy_modules (
				id, template_id, name, description, clinic_name, scheduled_date, scheduled_time,
				booking_id, patient_id, sections, overall_progress, created_at, updated_at, module_key, version
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
			ON CONFLICT(module_key) DO NOTHING
		`
		res, err = r.db.ExecContext(ctx, query, append(args, key)...)
	} else {
		const query = `
			UPDATE therapy_modules
			SET id = ?, template_id = ?, name = ?, description = ?, clinic_name = ?,
			    scheduled_date = ?, scheduled_time = ?, booking_id = ?, patient_id = ?, sections = ?,
			    overall_progress = ?, created_at = ?, updated_at = ?, version = version + 1
			WHERE module_key = ? AND version = ?
		`
		res, err = r.db.ExecContext(ctx, query, append(args, key, module.Version)...)
	}
	if err != nil {
		return domain.TherapyModule{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.TherapyModule{}, err
	}
	if n == 0 {
		return domain.TherapyModule{}, domain.ErrModuleVersionConflict
	}

	stored := module.Clone()
	stored.Version = module.Version + 1
	return stored, nil
}
