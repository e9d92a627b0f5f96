package repository

import (
	"context"
	"sync"

	"vaidya/internal/domain"
)

// MemoryModuleRepository guarda copias de los modulos en memoria del proceso.
type MemoryModuleRepository struct {
	mu      sync.Mutex
	modules map[string]domain.TherapyModule
}

func NewMemoryModuleRepository() *MemoryModuleRepository {
	return &MemoryModuleRepository{
		modules: make(map[string]domain.TherapyModule),
	}
}

func (r *MemoryModuleRepository) Get(_ context.Context, key string) (domain.TherapyModule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.modules[key]
	if !ok {
		return domain.TherapyModule{}, domain.ErrModuleNotFound
	}
	return m.Clone(), nil
}

func (r *MemoryModuleRepository) Put(_ context.Context, key string, module domain.TherapyModule) (domain.TherapyModule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, exists := r.modules[key]
	switch {
	case !exists && module.Version != 0:
		return domain.TherapyModule{}, domain.ErrModuleVersionConflict
	case exists && current.Version != module.Version:
		return domain.TherapyModule{}, domain.ErrModuleVersionConflict
	}
	stored := module.Clone()
	stored.Version = module.Version + 1
	r.modules[key] = stored
	return stored.Clone(), nil
}
