package ports

import "context"

// DeliveryOutcome classifies what a verified webhook delivery did.
type DeliveryOutcome string

const (
	DeliveryProcessed        DeliveryOutcome = "processed"
	DeliveryIgnored          DeliveryOutcome = "ignored"
	DeliveryDuplicate        DeliveryOutcome = "duplicate"
	DeliveryUnknownReference DeliveryOutcome = "unknown_reference"
)

// WebhookService processes signed deliveries from the payment provider.
// HandleDelivery returns an error only when the signature does not verify
// (domain.ErrInvalidSignature) or the verified body does not parse
// (domain.ErrBadPayload); every other outcome is acknowledged to stop the
// provider's retry loop.
type WebhookService interface {
	HandleDelivery(ctx context.Context, body []byte, signature string) (DeliveryOutcome, error)
}
