package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the tuition payment state of a student.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "pending"
	StatusPaid    PaymentStatus = "paid"
)

// validTransitions defines the allowed state machine transitions.
// Paid is terminal: nothing transitions out of it.
var validTransitions = map[PaymentStatus][]PaymentStatus{
	StatusPending: {StatusPaid},
}

var ErrStudentNotFound = errors.New("student not found")
var ErrInvalidTransition = errors.New("invalid payment status transition")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Student is the core aggregate. SchoolID binds the record to exactly one
// tenant at creation and is never reassigned. PaymentReference correlates a
// locally-initiated gateway transaction with its asynchronous confirmation.
type Student struct {
	ID               uuid.UUID     `json:"id"`
	SchoolID         uuid.UUID     `json:"school_id"`
	FirstName        string        `json:"first_name"`
	LastName         string        `json:"last_name"`
	Email            string        `json:"email"`
	Department       string        `json:"department"`
	Status           PaymentStatus `json:"status"`
	PaymentReference string        `json:"payment_reference,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
}
