package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"vaidya/internal/domain"
	"vaidya/internal/repository"
)

type failingAssessmentRepo struct{}

func (failingAssessmentRepo) Create(context.Context, domain.AssessmentRecord) error {
	return errors.New("db down")
}

func (failingAssessmentRepo) GetByID(context.Context, string) (domain.AssessmentRecord, error) {
	return domain.AssessmentRecord{}, errors.New("db down")
}

func TestAssessmentService_AssessGeneralPersists(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryAssessmentRepository()
	svc := NewAssessmentService(repo, nil)
	svc.newID = func() string { return "assessment-1" }
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	res, err := svc.AssessGeneral(ctx, "user-1", map[string]any{
		"age": 22, "gender": "Female", "symptoms": []any{"anxiety", "dry skin"}, "stressLevel": 4,
	})
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if res.AssessmentID != "assessment-1" || res.Profile.Vata != 90 || res.Profile.Dominant != domain.Vata {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.Therapies) != 3 || res.Therapies[0].Name != "Abhyanga" {
		t.Fatalf("unexpected therapies %+v", res.Therapies)
	}

	rec, err := svc.Get(ctx, "assessment-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.UserID != "user-1" || rec.Variant != domain.VariantGeneral || rec.Profile != res.Profile {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestAssessmentService_InvalidIntakeStopsBeforeClassification(t *testing.T) {
	repo := repository.NewMemoryAssessmentRepository()
	svc := NewAssessmentService(repo, nil)
	svc.newID = func() string { return "should-not-exist" }

	_, err := svc.AssessGeneral(context.Background(), "", map[string]any{"gender": "male", "stressLevel": 2})
	var invalid *domain.InvalidIntakeError
	if !errors.As(err, &invalid) || invalid.Field != "age" {
		t.Fatalf("expected InvalidIntakeError on age, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "should-not-exist"); !errors.Is(err, domain.ErrAssessmentNotFound) {
		t.Fatalf("invalid intake must not be stored")
	}
}

func TestAssessmentService_AssessHairFallWithoutStore(t *testing.T) {
	svc := NewAssessmentService(nil, nil)
	res, err := svc.AssessHairFall(context.Background(), "", validHairFallIntake())
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if res.AssessmentID != "" {
		t.Fatalf("expected no assessment id without store, got %q", res.AssessmentID)
	}
	if res.DoshaAnalysis.Total() < 99 || res.DoshaAnalysis.Total() > 101 || len(res.Recommendations) == 0 {
		t.Fatalf("unexpected report %+v", res.HairFallReport)
	}
	if _, err := svc.Get(context.Background(), "x"); !errors.Is(err, ErrAssessmentStoreNotConfigured) {
		t.Fatalf("expected ErrAssessmentStoreNotConfigured, got %v", err)
	}
}

func TestAssessmentService_StoreFailure(t *testing.T) {
	svc := NewAssessmentService(failingAssessmentRepo{}, nil)
	_, err := svc.AssessHairFall(context.Background(), "u", validHairFallIntake())
	if err == nil {
		t.Fatalf("expected store error")
	}
}
