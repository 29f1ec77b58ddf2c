package handler

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/edupay/tuition-system/internal/core/domain"
	"github.com/edupay/tuition-system/internal/core/ports"
)

type stubWebhookService struct {
	handleFn func(ctx context.Context, body []byte, signature string) (ports.DeliveryOutcome, error)
}

func (s *stubWebhookService) HandleDelivery(ctx context.Context, body []byte, signature string) (ports.DeliveryOutcome, error) {
	return s.handleFn(ctx, body, signature)
}

func testLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).Level(zerolog.Disabled)
}

func TestWebhookHandler_Receive_Processed(t *testing.T) {
	e := newTestEcho()
	body := []byte(`{"event":"charge.success","data":{"reference":"TUI-abc"}}`)
	mac := hmac.New(sha512.New, []byte("whsec"))
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	stub := &stubWebhookService{
		handleFn: func(ctx context.Context, gotBody []byte, gotSig string) (ports.DeliveryOutcome, error) {
			if !bytes.Equal(gotBody, body) {
				t.Fatalf("body altered before reaching service: %q", gotBody)
			}
			if gotSig != signature {
				t.Fatalf("signature header not forwarded: %q", gotSig)
			}
			return ports.DeliveryProcessed, nil
		},
	}
	handler := NewWebhookHandler(stub, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewReader(body))
	req.Header.Set("x-paystack-signature", signature)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Receive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "ok" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestWebhookHandler_Receive_InvalidSignature(t *testing.T) {
	e := newTestEcho()
	stub := &stubWebhookService{
		handleFn: func(ctx context.Context, body []byte, signature string) (ports.DeliveryOutcome, error) {
			return "", domain.ErrInvalidSignature
		},
	}
	handler := NewWebhookHandler(stub, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("x-paystack-signature", "deadbeef")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Receive(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestWebhookHandler_Receive_BadPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubWebhookService{
		handleFn: func(ctx context.Context, body []byte, signature string) (ports.DeliveryOutcome, error) {
			return "", domain.ErrBadPayload
		},
	}
	handler := NewWebhookHandler(stub, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewReader([]byte("not-json")))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Receive(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWebhookHandler_Receive_UnknownReferenceStillAcknowledged(t *testing.T) {
	e := newTestEcho()
	stub := &stubWebhookService{
		handleFn: func(ctx context.Context, body []byte, signature string) (ports.DeliveryOutcome, error) {
			return ports.DeliveryUnknownReference, nil
		},
	}
	handler := NewWebhookHandler(stub, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Receive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 to stop provider retries, got %d", rec.Code)
	}
}

func TestWebhookHandler_Receive_MissingSignatureHeader(t *testing.T) {
	e := newTestEcho()
	stub := &stubWebhookService{
		handleFn: func(ctx context.Context, body []byte, signature string) (ports.DeliveryOutcome, error) {
			if signature != "" {
				t.Fatalf("expected empty signature, got %q", signature)
			}
			return "", domain.ErrInvalidSignature
		},
	}
	handler := NewWebhookHandler(stub, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Receive(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
