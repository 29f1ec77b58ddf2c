package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edupay/tuition-system/internal/core/domain"
	"github.com/edupay/tuition-system/internal/core/ports"
)

// eventChargeSuccess is the provider's successful-charge event name.
const eventChargeSuccess = "charge.success"

// DeliveryDedup abstracts the webhook delivery dedup store (Redis). Keys are
// the delivery's hex signature, which covers the exact body bytes.
type DeliveryDedup interface {
	Seen(ctx context.Context, signature string) (bool, error)
	Mark(ctx context.Context, signature string) error
}

type webhookService struct {
	students ports.StudentRepository
	secret   []byte
	dedup    DeliveryDedup // optional
	log      zerolog.Logger
}

// NewWebhookService returns a WebhookService that verifies deliveries with
// HMAC-SHA512 under secret. dedup may be nil, in which case the paid-is-
// terminal transition is the only redelivery safety net.
func NewWebhookService(students ports.StudentRepository, secret string, dedup DeliveryDedup, log zerolog.Logger) ports.WebhookService {
	return &webhookService{
		students: students,
		secret:   []byte(secret),
		dedup:    dedup,
		log:      log,
	}
}

// chargeEvent is the generic event envelope decoded from a verified body.
type chargeEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

func (s *webhookService) HandleDelivery(ctx context.Context, body []byte, signature string) (ports.DeliveryOutcome, error) {
	// Nothing is parsed or acted upon before the signature verifies.
	if !s.verifySignature(body, signature) {
		return "", domain.ErrInvalidSignature
	}

	var ev chargeEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrBadPayload, err)
	}

	// Redelivery check, best-effort: a failed lookup is logged and the
	// delivery is processed anyway (MarkPaidByReference is idempotent).
	sig := strings.ToLower(strings.TrimSpace(signature))
	if s.dedup != nil {
		seen, err := s.dedup.Seen(ctx, sig)
		if err != nil {
			s.log.Warn().Err(err).Msg("dedup check failed, processing anyway")
		} else if seen {
			s.log.Debug().Str("event", ev.Event).Msg("duplicate delivery skipped")
			return ports.DeliveryDuplicate, nil
		}
		if err := s.dedup.Mark(ctx, sig); err != nil {
			s.log.Warn().Err(err).Msg("failed to set dedup key")
		}
	}

	if ev.Event != eventChargeSuccess || ev.Data.Reference == "" {
		s.log.Debug().Str("event", ev.Event).Msg("delivery ignored")
		return ports.DeliveryIgnored, nil
	}

	// Store errors are swallowed after logging: acknowledgment to the
	// provider takes precedence over surfacing internal failures.
	if err := s.students.MarkPaidByReference(ctx, ev.Data.Reference); err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			s.log.Warn().
				Str("reference", ev.Data.Reference).
				Msg("charge confirmed for unknown reference")
			return ports.DeliveryUnknownReference, nil
		}
		s.log.Error().Err(err).
			Str("reference", ev.Data.Reference).
			Msg("failed to reconcile charge")
		return ports.DeliveryIgnored, nil
	}

	s.log.Info().
		Str("reference", ev.Data.Reference).
		Msg("charge reconciled")

	return ports.DeliveryProcessed, nil
}

// verifySignature compares the hex HMAC-SHA512 of body against the supplied
// header value in constant time. A missing header and a mismatch are
// indistinguishable to the caller.
func (s *webhookService) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha512.New, s.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	given := strings.ToLower(strings.TrimSpace(signature))
	if len(given) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(given)) == 1
}
