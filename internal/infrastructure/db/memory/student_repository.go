package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/edupay/tuition-system/internal/core/domain"
)

// StudentRepository stores student records. byReference is a secondary index
// from payment reference to student id, maintained under the same lock as the
// primary map, so MarkPaidByReference is a constant-time lookup instead of a
// scan across all tenants.
type StudentRepository struct {
	mu          sync.Mutex
	byID        map[uuid.UUID]*domain.Student
	byReference map[string]uuid.UUID
}

func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		byID:        make(map[uuid.UUID]*domain.Student),
		byReference: make(map[string]uuid.UUID),
	}
}

func (r *StudentRepository) Create(_ context.Context, student *domain.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *student
	r.byID[stored.ID] = &stored
	if stored.PaymentReference != "" {
		r.byReference[stored.PaymentReference] = stored.ID
	}
	return nil
}

func (r *StudentRepository) ListByOwner(_ context.Context, schoolID uuid.UUID) ([]*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Student
	for _, st := range r.byID {
		if st.SchoolID == schoolID {
			clone := *st
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *StudentRepository) FindByID(_ context.Context, schoolID, id uuid.UUID) (*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, err := r.owned(schoolID, id)
	if err != nil {
		return nil, err
	}
	clone := *st
	return &clone, nil
}

func (r *StudentRepository) Delete(_ context.Context, schoolID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, err := r.owned(schoolID, id)
	if err != nil {
		return err
	}
	delete(r.byID, id)
	if st.PaymentReference != "" {
		delete(r.byReference, st.PaymentReference)
	}
	return nil
}

func (r *StudentRepository) SetPaymentReference(_ context.Context, schoolID, id uuid.UUID, reference string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, err := r.owned(schoolID, id)
	if err != nil {
		return err
	}
	if st.PaymentReference != "" {
		delete(r.byReference, st.PaymentReference)
	}
	st.PaymentReference = reference
	r.byReference[reference] = id
	return nil
}

func (r *StudentRepository) MarkPaidByReference(_ context.Context, reference string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byReference[reference]
	if !ok {
		return domain.ErrStudentNotFound
	}
	st := r.byID[id]

	// Paid is terminal; redelivery of the same confirmation is a no-op.
	if st.Status == domain.StatusPaid {
		return nil
	}
	if !st.Status.CanTransitionTo(domain.StatusPaid) {
		return domain.ErrInvalidTransition
	}
	st.Status = domain.StatusPaid
	return nil
}

// owned resolves a student by id under the caller's tenant. A mismatched
// school id behaves exactly like a missing record.
func (r *StudentRepository) owned(schoolID, id uuid.UUID) (*domain.Student, error) {
	st, ok := r.byID[id]
	if !ok || st.SchoolID != schoolID {
		return nil, domain.ErrStudentNotFound
	}
	return st, nil
}
