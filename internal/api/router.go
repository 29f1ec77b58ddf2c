package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/edupay/tuition-system/internal/api/handler"
	"github.com/edupay/tuition-system/internal/api/middleware"
	"github.com/edupay/tuition-system/internal/core/ports"
	"github.com/edupay/tuition-system/internal/core/service"
	"github.com/edupay/tuition-system/internal/pkg/config"
)

// Dependencies carries the wired infrastructure the router composes into
// services and handlers. Repositories arrive as ports so the store backend
// stays swappable.
type Dependencies struct {
	Schools  ports.SchoolRepository
	Students ports.StudentRepository
	Gateway  ports.PaymentGateway
	// Dedup may be nil; webhook deliveries then skip the replay cache.
	Dedup  service.DeliveryDedup
	Checks map[string]handler.ReadinessCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tuition"))

	// --- Services ---
	authService := service.NewAuthService(deps.Schools, cfg.JWTSecret, 24*time.Hour)
	studentService := service.NewStudentService(deps.Students, log)
	paymentService := service.NewPaymentService(deps.Students, deps.Gateway, cfg.Paystack.AmountKobo, log)
	webhookService := service.NewWebhookService(deps.Students, cfg.Paystack.WebhookSecret, deps.Dedup, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	studentHandler := handler.NewStudentHandler(studentService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	webhookHandler := handler.NewWebhookHandler(webhookService, log)
	healthHandler := handler.NewHealthHandler(deps.Checks)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/webhook/paystack", webhookHandler.Receive)

	e.GET("/health", healthHandler.Live)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Ready) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Protected routes ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))
	v1.POST("/students", studentHandler.Create)
	v1.GET("/students", studentHandler.List)
	v1.GET("/students/:id", studentHandler.Get)
	v1.DELETE("/students/:id", studentHandler.Delete)
	v1.POST("/students/:id/pay", paymentHandler.Initiate)

	return e
}
