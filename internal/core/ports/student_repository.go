package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/edupay/tuition-system/internal/core/domain"
)

// StudentRepository defines persistence operations for student records.
// Every operation except MarkPaidByReference is scoped by the owning school:
// an id that exists under a different school behaves exactly like a missing
// id (domain.ErrStudentNotFound), so a foreign tenant can never learn of the
// record's existence.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	ListByOwner(ctx context.Context, schoolID uuid.UUID) ([]*domain.Student, error)
	FindByID(ctx context.Context, schoolID, id uuid.UUID) (*domain.Student, error)
	Delete(ctx context.Context, schoolID, id uuid.UUID) error
	// SetPaymentReference overwrites any prior reference unconditionally
	// (last write wins).
	SetPaymentReference(ctx context.Context, schoolID, id uuid.UUID, reference string) error
	// MarkPaidByReference is the only tenant-unscoped operation: the webhook
	// caller does not know which school issued the reference. Pending moves
	// to paid; an already-paid student is a success no-op; an unknown
	// reference is domain.ErrStudentNotFound.
	MarkPaidByReference(ctx context.Context, reference string) error
}
