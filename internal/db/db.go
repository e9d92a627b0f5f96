package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"vaidya/internal/config"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

const schema = `
CREATE TABLE IF NOT EXISTS therapy_modules (
	module_key       TEXT PRIMARY KEY,
	id               TEXT NOT NULL,
	template_id      TEXT NOT NULL,
	name             TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	clinic_name      TEXT NOT NULL,
	scheduled_date   TEXT NOT NULL,
	scheduled_time   TEXT NOT NULL,
	booking_id       TEXT,
	patient_id       TEXT NOT NULL DEFAULT '',
	sections         JSONB NOT NULL,
	overall_progress INTEGER NOT NULL CHECK (overall_progress BETWEEN 0 AND 100),
	version          INTEGER NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_therapy_modules_id ON therapy_modules (id);
ALTER TABLE therapy_modules ADD COLUMN IF NOT EXISTS patient_id TEXT NOT NULL DEFAULT '';
CREATE INDEX IF NOT EXISTS idx_therapy_modules_patient_id ON therapy_modules (patient_id);

CREATE TABLE IF NOT EXISTS assessments (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL DEFAULT '',
	variant     TEXT NOT NULL,
	vata        INTEGER NOT NULL,
	pitta       INTEGER NOT NULL,
	kapha       INTEGER NOT NULL,
	dominant    TEXT NOT NULL,
	description TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_assessments_user_id ON assessments (user_id);
`

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
