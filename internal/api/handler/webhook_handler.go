package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/edupay/tuition-system/internal/api/metrics"
	"github.com/edupay/tuition-system/internal/core/domain"
	"github.com/edupay/tuition-system/internal/core/ports"
)

const signatureHeader = "x-paystack-signature"

// WebhookHandler receives gateway delivery callbacks. It is mounted on the
// public router because Paystack cannot present a bearer token; authenticity
// comes from the HMAC signature instead.
type WebhookHandler struct {
	service ports.WebhookService
	log     zerolog.Logger
}

func NewWebhookHandler(service ports.WebhookService, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{service: service, log: log}
}

// Receive handles POST /webhook/paystack.
//
// @Summary      Receive a Paystack webhook delivery
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        x-paystack-signature  header    string  true  "HMAC-SHA512 signature of the raw body"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /webhook/paystack [post]
func (h *WebhookHandler) Receive(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable body"})
	}

	outcome, err := h.service.HandleDelivery(c.Request().Context(), body, c.Request().Header.Get(signatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSignature):
			metrics.WebhookDeliveriesTotal.WithLabelValues("invalid_signature").Inc()
			h.log.Warn().Str("remote", c.RealIP()).Msg("webhook delivery rejected: bad signature")
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid signature"})
		case errors.Is(err, domain.ErrBadPayload):
			metrics.WebhookDeliveriesTotal.WithLabelValues("bad_payload").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed payload"})
		default:
			return err
		}
	}

	metrics.WebhookDeliveriesTotal.WithLabelValues(string(outcome)).Inc()
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
