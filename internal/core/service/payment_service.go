package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edupay/tuition-system/internal/core/domain"
	"github.com/edupay/tuition-system/internal/core/ports"
)

// referencePrefix marks references issued by this service. The uuid suffix
// makes every reference unique for the lifetime of the process.
const referencePrefix = "TUI-"

// PaymentService opens gateway transactions for students and records the
// resulting reference on the student record.
type PaymentService struct {
	students    ports.StudentRepository
	gateway     ports.PaymentGateway
	amountMinor int64
	log         zerolog.Logger
}

func NewPaymentService(students ports.StudentRepository, gateway ports.PaymentGateway, amountMinor int64, log zerolog.Logger) *PaymentService {
	return &PaymentService{students: students, gateway: gateway, amountMinor: amountMinor, log: log}
}

// Initiate resolves the student under the caller's tenant, opens a gateway
// transaction, and stores the gateway's reference on the student. The student
// lock is not held across the gateway call: a concurrent delete between the
// read and the reference write makes the write a silent no-op (accepted lost
// update), so the reference write is best-effort.
func (s *PaymentService) Initiate(ctx context.Context, schoolID, studentID uuid.UUID) (*ports.PaymentInitResult, error) {
	student, err := s.students.FindByID(ctx, schoolID, studentID)
	if err != nil {
		return nil, err
	}

	reference := referencePrefix + uuid.NewString()

	res, err := s.gateway.InitializeTransaction(ctx, ports.InitializeTransactionInput{
		Email:       student.Email,
		AmountMinor: s.amountMinor,
		Reference:   reference,
	})
	if err != nil {
		s.log.Error().Err(err).
			Str("student_id", studentID.String()).
			Str("reference", reference).
			Msg("gateway transaction failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentGateway, err)
	}

	// The gateway's echo of the reference is authoritative.
	if err := s.students.SetPaymentReference(ctx, schoolID, studentID, res.Reference); err != nil {
		s.log.Warn().Err(err).
			Str("student_id", studentID.String()).
			Str("reference", res.Reference).
			Msg("payment opened but reference not recorded")
	}

	s.log.Info().
		Str("student_id", studentID.String()).
		Str("reference", res.Reference).
		Int64("amount_minor", s.amountMinor).
		Msg("payment initiated")

	return &ports.PaymentInitResult{
		AuthorizationURL: res.AuthorizationURL,
		Reference:        res.Reference,
	}, nil
}
