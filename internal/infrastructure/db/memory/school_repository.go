// Package memory provides the in-memory repository backend. Each collection
// is a mutex-guarded map; the lock is held only while the map is inspected or
// mutated, never across external calls.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/edupay/tuition-system/internal/core/domain"
)

// SchoolRepository stores tenant accounts. The username index shares the
// collection lock so the uniqueness check and the insert are one atomic step.
type SchoolRepository struct {
	mu         sync.Mutex
	byID       map[uuid.UUID]*domain.School
	byUsername map[string]uuid.UUID
}

func NewSchoolRepository() *SchoolRepository {
	return &SchoolRepository{
		byID:       make(map[uuid.UUID]*domain.School),
		byUsername: make(map[string]uuid.UUID),
	}
}

func (r *SchoolRepository) Create(_ context.Context, school *domain.School) (*domain.School, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[school.Username]; exists {
		return nil, domain.ErrSchoolExists
	}

	stored := *school
	r.byID[stored.ID] = &stored
	r.byUsername[stored.Username] = stored.ID

	out := stored
	return &out, nil
}

func (r *SchoolRepository) FindByUsername(_ context.Context, username string) (*domain.School, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrSchoolNotFound
	}

	out := *r.byID[id]
	return &out, nil
}
