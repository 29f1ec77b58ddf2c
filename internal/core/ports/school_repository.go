package ports

import (
	"context"

	"github.com/edupay/tuition-system/internal/core/domain"
)

// SchoolRepository defines persistence operations for tenant accounts.
// Create must enforce username uniqueness atomically with the insert.
type SchoolRepository interface {
	Create(ctx context.Context, school *domain.School) (*domain.School, error)
	// FindByUsername is used only by the login flow; it is never exposed
	// as a public lookup.
	FindByUsername(ctx context.Context, username string) (*domain.School, error)
}
