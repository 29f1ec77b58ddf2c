package ports

import (
	"context"

	"github.com/edupay/tuition-system/internal/core/domain"
)

type AuthService interface {
	// Register creates a new school account with a bcrypt-hashed password.
	Register(ctx context.Context, name, username, password string) (*domain.School, error)
	// Login verifies the credentials and returns a signed bearer token plus
	// the matching school. Every failure mode is domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.School, error)
}
