package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edupay/tuition-system/internal/core/domain"
	"github.com/edupay/tuition-system/internal/core/ports"
	"github.com/edupay/tuition-system/internal/infrastructure/db/memory"
)

type stubGateway struct {
	err      error
	lastIn   ports.InitializeTransactionInput
	override string // when set, returned instead of the sent reference
	calls    int
}

func (g *stubGateway) InitializeTransaction(_ context.Context, in ports.InitializeTransactionInput) (*ports.InitializeTransactionResult, error) {
	g.calls++
	g.lastIn = in
	if g.err != nil {
		return nil, g.err
	}
	ref := in.Reference
	if g.override != "" {
		ref = g.override
	}
	return &ports.InitializeTransactionResult{
		AuthorizationURL: "https://checkout.example.com/" + ref,
		Reference:        ref,
	}, nil
}

func seedStudent(t *testing.T, repo *memory.StudentRepository, owner uuid.UUID) *domain.Student {
	t.Helper()
	st := &domain.Student{
		ID:       uuid.New(),
		SchoolID: owner,
		Email:    "pay@example.com",
		Status:   domain.StatusPending,
	}
	if err := repo.Create(context.Background(), st); err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return st
}

func TestPaymentService_Initiate_Success(t *testing.T) {
	repo := memory.NewStudentRepository()
	owner := uuid.New()
	st := seedStudent(t, repo, owner)
	gw := &stubGateway{}

	svc := NewPaymentService(repo, gw, 500000, zerolog.Nop())
	res, err := svc.Initiate(context.Background(), owner, st.ID)
	if err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	if res.Reference == "" || !strings.HasPrefix(res.Reference, "TUI-") {
		t.Fatalf("unexpected reference: %q", res.Reference)
	}
	if res.AuthorizationURL == "" {
		t.Fatalf("expected authorization url")
	}
	if gw.lastIn.Email != "pay@example.com" || gw.lastIn.AmountMinor != 500000 {
		t.Fatalf("unexpected gateway input: %+v", gw.lastIn)
	}

	stored, err := repo.FindByID(context.Background(), owner, st.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.PaymentReference != res.Reference {
		t.Fatalf("reference not recorded: %q vs %q", stored.PaymentReference, res.Reference)
	}
	if stored.Status != domain.StatusPending {
		t.Fatalf("initiate must not change status, got %s", stored.Status)
	}
}

func TestPaymentService_Initiate_UniqueReferences(t *testing.T) {
	repo := memory.NewStudentRepository()
	owner := uuid.New()
	st := seedStudent(t, repo, owner)
	gw := &stubGateway{}
	svc := NewPaymentService(repo, gw, 500000, zerolog.Nop())

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		res, err := svc.Initiate(context.Background(), owner, st.ID)
		if err != nil {
			t.Fatalf("initiate %d failed: %v", i, err)
		}
		if seen[res.Reference] {
			t.Fatalf("reference %q issued twice", res.Reference)
		}
		seen[res.Reference] = true
	}

	// Last write wins on the student record.
	stored, _ := repo.FindByID(context.Background(), owner, st.ID)
	if !seen[stored.PaymentReference] {
		t.Fatalf("stored reference %q was never issued", stored.PaymentReference)
	}
}

func TestPaymentService_Initiate_GatewayReferenceAuthoritative(t *testing.T) {
	repo := memory.NewStudentRepository()
	owner := uuid.New()
	st := seedStudent(t, repo, owner)
	gw := &stubGateway{override: "GW-REWRITTEN"}
	svc := NewPaymentService(repo, gw, 500000, zerolog.Nop())

	res, err := svc.Initiate(context.Background(), owner, st.ID)
	if err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	if res.Reference != "GW-REWRITTEN" {
		t.Fatalf("expected gateway reference, got %q", res.Reference)
	}
	stored, _ := repo.FindByID(context.Background(), owner, st.ID)
	if stored.PaymentReference != "GW-REWRITTEN" {
		t.Fatalf("stored reference %q, want gateway value", stored.PaymentReference)
	}
}

func TestPaymentService_Initiate_StudentNotFound(t *testing.T) {
	repo := memory.NewStudentRepository()
	gw := &stubGateway{}
	svc := NewPaymentService(repo, gw, 500000, zerolog.Nop())

	_, err := svc.Initiate(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, domain.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatalf("gateway must not be called for a missing student")
	}
}

func TestPaymentService_Initiate_ForeignTenant(t *testing.T) {
	repo := memory.NewStudentRepository()
	st := seedStudent(t, repo, uuid.New())
	gw := &stubGateway{}
	svc := NewPaymentService(repo, gw, 500000, zerolog.Nop())

	_, err := svc.Initiate(context.Background(), uuid.New(), st.ID)
	if !errors.Is(err, domain.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound for foreign tenant, got %v", err)
	}
}

func TestPaymentService_Initiate_GatewayFailure(t *testing.T) {
	repo := memory.NewStudentRepository()
	owner := uuid.New()
	st := seedStudent(t, repo, owner)
	gw := &stubGateway{err: errors.New("connection refused")}
	svc := NewPaymentService(repo, gw, 500000, zerolog.Nop())

	_, err := svc.Initiate(context.Background(), owner, st.ID)
	if !errors.Is(err, domain.ErrPaymentGateway) {
		t.Fatalf("expected ErrPaymentGateway, got %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), owner, st.ID)
	if stored.PaymentReference != "" {
		t.Fatalf("reference must not be recorded on gateway failure")
	}
}

func TestPaymentService_Initiate_DeleteRaceStillReturnsURL(t *testing.T) {
	repo := memory.NewStudentRepository()
	owner := uuid.New()
	st := seedStudent(t, repo, owner)

	// Simulate a concurrent delete landing between the student read and the
	// reference write by deleting from inside the gateway call.
	gw := &deletingGateway{repo: repo, owner: owner, studentID: st.ID}
	svc := NewPaymentService(repo, gw, 500000, zerolog.Nop())

	res, err := svc.Initiate(context.Background(), owner, st.ID)
	if err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	if res.AuthorizationURL == "" {
		t.Fatalf("caller must still receive the checkout URL")
	}
}

type deletingGateway struct {
	repo      *memory.StudentRepository
	owner     uuid.UUID
	studentID uuid.UUID
}

func (g *deletingGateway) InitializeTransaction(ctx context.Context, in ports.InitializeTransactionInput) (*ports.InitializeTransactionResult, error) {
	_ = g.repo.Delete(ctx, g.owner, g.studentID)
	return &ports.InitializeTransactionResult{
		AuthorizationURL: "https://checkout.example.com/" + in.Reference,
		Reference:        in.Reference,
	}, nil
}
