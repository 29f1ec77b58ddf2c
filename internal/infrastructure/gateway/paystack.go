// Package gateway implements the Paystack payment gateway client.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edupay/tuition-system/internal/core/ports"
)

const defaultBaseURL = "https://api.paystack.co"

// Client calls the Paystack transaction API over an authenticated channel.
// No client-level timeout is set; a hung call is bounded only by the request
// context.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	log        zerolog.Logger
}

// NewClient creates a Paystack client. baseURL may be empty, in which case
// the production endpoint is used; tests point it at a local server.
func NewClient(secretKey, baseURL string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		log:        log,
	}
}

type initializeRequest struct {
	Email     string `json:"email"`
	Amount    int64  `json:"amount"` // minor units (kobo)
	Reference string `json:"reference"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// InitializeTransaction opens a transaction and returns the checkout URL plus
// the provider's echo of the reference. A transport failure, a non-success
// response, or an undecodable body are all reported as errors; the caller
// maps them to its gateway error kind.
func (c *Client) InitializeTransaction(ctx context.Context, in ports.InitializeTransactionInput) (*ports.InitializeTransactionResult, error) {
	payload, err := json.Marshal(initializeRequest{
		Email:     in.Email,
		Amount:    in.AmountMinor,
		Reference: in.Reference,
	})
	if err != nil {
		return nil, fmt.Errorf("paystack initialize: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/initialize", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("paystack initialize: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack initialize: %w", err)
	}
	defer resp.Body.Close()

	var parsed initializeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("paystack initialize: decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !parsed.Status {
		c.log.Warn().
			Int("http_status", resp.StatusCode).
			Str("message", parsed.Message).
			Str("reference", in.Reference).
			Msg("paystack rejected the transaction")
		return nil, fmt.Errorf("paystack initialize: rejected (status %d): %s", resp.StatusCode, parsed.Message)
	}

	return &ports.InitializeTransactionResult{
		AuthorizationURL: parsed.Data.AuthorizationURL,
		Reference:        parsed.Data.Reference,
	}, nil
}
