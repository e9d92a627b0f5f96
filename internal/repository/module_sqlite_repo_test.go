package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaidya/internal/domain"
)

func newTestSQLiteRepo(t *testing.T) *SQLiteModuleRepository {
	t.Helper()
	repo, err := NewSQLiteModuleRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSQLiteModuleRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLiteRepo(t)

	_, err := repo.Get(ctx, "bk-9")
	assert.ErrorIs(t, err, domain.ErrModuleNotFound)

	m := sampleModule("bk-9")
	m.Sections[0].Instructions[1].Completed = true
	m.OverallProgress = 50
	m.PatientID = "patient-3"

	stored, err := repo.Put(ctx, m.Key(), m)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Version)

	got, err := repo.Get(ctx, "bk-9")
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, "vata-basti", got.TemplateID)
	require.NotNil(t, got.BookingID)
	assert.Equal(t, "bk-9", *got.BookingID)
	assert.Equal(t, 50, got.OverallProgress)
	assert.Equal(t, "patient-3", got.PatientID)
	assert.Equal(t, 1, got.Version)
	assert.True(t, got.CreatedAt.Equal(m.CreatedAt))
	assert.Equal(t, m.Sections, got.Sections)
}

func TestSQLiteModuleRepository_OptimisticVersioning(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLiteRepo(t)
	m := sampleModule("")

	_, err := repo.Put(ctx, m.Key(), m)
	require.NoError(t, err)

	// Segundo alta con la misma clave.
	_, err = repo.Put(ctx, m.Key(), m)
	assert.ErrorIs(t, err, domain.ErrModuleVersionConflict)

	loaded, err := repo.Get(ctx, m.Key())
	require.NoError(t, err)
	assert.Nil(t, loaded.BookingID)

	a := loaded.Clone()
	b := loaded.Clone()
	a.OverallProgress = 50
	b.OverallProgress = 100

	_, err = repo.Put(ctx, m.Key(), a)
	require.NoError(t, err)
	_, err = repo.Put(ctx, m.Key(), b)
	assert.ErrorIs(t, err, domain.ErrModuleVersionConflict)

	final, err := repo.Get(ctx, m.Key())
	require.NoError(t, err)
	assert.Equal(t, 50, final.OverallProgress)
	assert.Equal(t, 2, final.Version)
}
