package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/edupay/tuition-system/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, name, username, password string) (*domain.School, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.School, error)
}

func (s *stubAuthService) Register(ctx context.Context, name, username, password string) (*domain.School, error) {
	return s.registerFn(ctx, name, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.School, error) {
	return s.loginFn(ctx, username, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, username, password string) (*domain.School, error) {
			if name != "Springfield High" || username != "springfield" {
				t.Fatalf("unexpected args: %s %s", name, username)
			}
			return &domain.School{ID: uuid.New(), Name: name, Username: username}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"name":"Springfield High","username":"springfield","password":"s3cret-pass"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	school, ok := resp["school"].(map[string]any)
	if !ok {
		t.Fatalf("expected school in response")
	}
	if school["username"] != "springfield" || school["name"] != "Springfield High" {
		t.Fatalf("unexpected school payload: %+v", school)
	}
	if _, leaked := school["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Register_SchoolExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, username, password string) (*domain.School, error) {
			return nil, domain.ErrSchoolExists
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"name":"Springfield High","username":"springfield","password":"s3cret-pass"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Register(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, username, password string) (*domain.School, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("not-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, username, password string) (*domain.School, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	// Password shorter than the 8 character minimum.
	body := strings.NewReader(`{"name":"Springfield High","username":"springfield","password":"short"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Register(c)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.School, error) {
			return "signed.jwt.token", &domain.School{ID: uuid.New(), Username: username}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"springfield","password":"s3cret-pass"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed.jwt.token" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.School, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"springfield","password":"wrong-pass"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "invalid credentials" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}
}
