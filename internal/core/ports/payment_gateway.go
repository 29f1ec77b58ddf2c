package ports

import "context"

// InitializeTransactionInput is the request sent to the payment provider to
// open a transaction. Amount is in minor currency units (kobo) to avoid
// fractional rounding.
type InitializeTransactionInput struct {
	Email       string
	AmountMinor int64
	Reference   string
}

// InitializeTransactionResult carries the provider's checkout URL and its
// echo of the transaction reference. The provider's reference value is
// authoritative.
type InitializeTransactionResult struct {
	AuthorizationURL string
	Reference        string
}

// PaymentGateway abstracts the external payment provider's transaction API.
type PaymentGateway interface {
	InitializeTransaction(ctx context.Context, in InitializeTransactionInput) (*InitializeTransactionResult, error)
}
