package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/edupay/tuition-system/internal/core/domain"
	"github.com/edupay/tuition-system/internal/core/ports"
)

// AuthService implements school registration and login.
type AuthService struct {
	repo      ports.SchoolRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.SchoolRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, name, username, password string) (*domain.School, error) {
	if name == "" || username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	school := &domain.School{
		ID:           uuid.New(),
		Name:         name,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, school)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies the credentials and issues a signed token. An unknown
// username, a wrong password, and a malformed stored hash all collapse into
// ErrInvalidCredentials so the response never reveals which check failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.School, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	school, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrSchoolNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(school.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(school)
	if err != nil {
		return "", nil, err
	}

	return token, school, nil
}

func (s *AuthService) generateToken(school *domain.School) (string, error) {
	claims := jwt.MapClaims{
		"school_id": school.ID.String(),
		"username":  school.Username,
		"exp":       time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
