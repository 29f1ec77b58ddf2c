package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/edupay/tuition-system/internal/core/domain"
)

// CreateStudentInput carries all data needed to create a new student record.
type CreateStudentInput struct {
	FirstName  string
	LastName   string
	Email      string
	Department string
}

// StudentService defines the tenant-scoped use-case operations for students.
type StudentService interface {
	Create(ctx context.Context, schoolID uuid.UUID, input CreateStudentInput) (*domain.Student, error)
	List(ctx context.Context, schoolID uuid.UUID) ([]*domain.Student, error)
	Get(ctx context.Context, schoolID, id uuid.UUID) (*domain.Student, error)
	Delete(ctx context.Context, schoolID, id uuid.UUID) error
}
