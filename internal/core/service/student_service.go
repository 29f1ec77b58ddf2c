package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edupay/tuition-system/internal/core/domain"
	"github.com/edupay/tuition-system/internal/core/ports"
)

// StudentService implements the tenant-scoped student operations. Ownership
// enforcement lives in the repository; the service only shapes records and
// logs.
type StudentService struct {
	repo ports.StudentRepository
	log  zerolog.Logger
}

func NewStudentService(repo ports.StudentRepository, log zerolog.Logger) *StudentService {
	return &StudentService{repo: repo, log: log}
}

func (s *StudentService) Create(ctx context.Context, schoolID uuid.UUID, input ports.CreateStudentInput) (*domain.Student, error) {
	student := &domain.Student{
		ID:         uuid.New(),
		SchoolID:   schoolID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Department: input.Department,
		Status:     domain.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, student); err != nil {
		s.log.Error().Err(err).Str("school_id", schoolID.String()).Msg("failed to create student")
		return nil, err
	}

	s.log.Info().
		Str("student_id", student.ID.String()).
		Str("school_id", schoolID.String()).
		Str("department", student.Department).
		Msg("student created")

	return student, nil
}

func (s *StudentService) List(ctx context.Context, schoolID uuid.UUID) ([]*domain.Student, error) {
	return s.repo.ListByOwner(ctx, schoolID)
}

func (s *StudentService) Get(ctx context.Context, schoolID, id uuid.UUID) (*domain.Student, error) {
	return s.repo.FindByID(ctx, schoolID, id)
}

func (s *StudentService) Delete(ctx context.Context, schoolID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, schoolID, id); err != nil {
		return err
	}
	s.log.Info().
		Str("student_id", id.String()).
		Str("school_id", schoolID.String()).
		Msg("student deleted")
	return nil
}
