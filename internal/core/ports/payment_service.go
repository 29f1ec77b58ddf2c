package ports

import (
	"context"

	"github.com/google/uuid"
)

// PaymentInitResult is returned by Initiate: the URL the payer is redirected
// to and the reference the asynchronous confirmation will carry.
type PaymentInitResult struct {
	AuthorizationURL string
	Reference        string
}

// PaymentService opens gateway transactions for students.
type PaymentService interface {
	Initiate(ctx context.Context, schoolID, studentID uuid.UUID) (*PaymentInitResult, error)
}
