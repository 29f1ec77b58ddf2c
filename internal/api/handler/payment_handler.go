package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/edupay/tuition-system/internal/api/metrics"
	"github.com/edupay/tuition-system/internal/core/domain"
	"github.com/edupay/tuition-system/internal/core/ports"
)

// PaymentHandler exposes tuition payment initiation for students owned by the
// authenticated school.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Initiate handles POST /v1/students/:id/pay.
//
// @Summary      Initiate a tuition payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Student id"
// @Success      200  {object}  initiatePaymentResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /v1/students/{id}/pay [post]
func (h *PaymentHandler) Initiate(c echo.Context) error {
	schoolID, _, err := ctxSchool(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid student id"})
	}

	start := time.Now()
	result, err := h.service.Initiate(c.Request().Context(), schoolID, id)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrStudentNotFound):
			metrics.PaymentsInitiatedTotal.WithLabelValues("not_found").Inc()
			return c.JSON(http.StatusNotFound, map[string]string{"error": "student not found"})
		case errors.Is(err, domain.ErrPaymentGateway):
			metrics.PaymentsInitiatedTotal.WithLabelValues("gateway_error").Inc()
			metrics.PaymentInitiateDuration.WithLabelValues("gateway_error").Observe(elapsed)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "payment gateway unavailable"})
		default:
			return err
		}
	}

	metrics.PaymentsInitiatedTotal.WithLabelValues("ok").Inc()
	metrics.PaymentInitiateDuration.WithLabelValues("ok").Observe(elapsed)
	return c.JSON(http.StatusOK, initiatePaymentResponse{
		AuthorizationURL: result.AuthorizationURL,
		Reference:        result.Reference,
	})
}
