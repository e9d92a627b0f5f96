package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vaidya/internal/domain"
)

type AssessmentRepository interface {
	Create(ctx context.Context, record domain.AssessmentRecord) error
	GetByID(ctx context.Context, id string) (domain.AssessmentRecord, error)
}

type PgAssessmentRepository struct {
	pool *pgxpool.Pool
}

func NewPgAssessmentRepository(pool *pgxpool.Pool) *PgAssessmentRepository {
	return &PgAssessmentRepository{pool: pool}
}

func (r *PgAssessmentRepository) Create(ctx context.Context, record domain.AssessmentRecord) error {
	const query = `
		INSERT INTO assessments (id, user_id, variant, vata, pitta, kapha, dominant, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.UserID,
		string(record.Variant),
		record.Profile.Vata,
		record.Profile.Pitta,
		record.Profile.Kapha,
		string(record.Profile.Dominant),
		record.Profile.Description,
		record.CreatedAt,
	)
	return err
}

func (r *PgAssessmentRepository) GetByID(ctx context.Context, id string) (domain.AssessmentRecord, error) {
	const query = `
		SELECT id, user_id, variant, vata, pitta, kapha, dominant, description, created_at
		FROM assessments
		WHERE id = $1
	`
	var (
		record   domain.AssessmentRecord
		variant  string
		dominant string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.UserID,
		&variant,
		&record.Profile.Vata,
		&record.Profile.Pitta,
		&record.Profile.Kapha,
		&dominant,
		&record.Profile.Description,
		&record.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AssessmentRecord{}, domain.ErrAssessmentNotFound
	}
	if err != nil {
		return domain.AssessmentRecord{}, err
	}
	record.Variant = domain.AssessmentVariant(variant)
	record.Profile.Dominant = domain.Dosha(dominant)
	return record, nil
}

type MemoryAssessmentRepository struct {
	mu      sync.RWMutex
	records map[string]domain.AssessmentRecord
}

func NewMemoryAssessmentRepository() *MemoryAssessmentRepository {
	return &MemoryAssessmentRepository{records: make(map[string]domain.AssessmentRecord)}
}

func (r *MemoryAssessmentRepository) Create(_ context.Context, record domain.AssessmentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = record
	return nil
}

func (r *MemoryAssessmentRepository) GetByID(_ context.Context, id string) (domain.AssessmentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return domain.AssessmentRecord{}, domain.ErrAssessmentNotFound
	}
	return record, nil
}
