package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/valoris-se/valoris-api/internal/application"
	"github.com/valoris-se/valoris-api/internal/payment"
)

type stubProvider struct {
	event    *payment.Event
	parseErr error
	lastSig  string
}

func (s *stubProvider) CreateIntent(ctx context.Context, p payment.IntentParams) (*payment.Intent, error) {
	return nil, errors.New("not used")
}

func (s *stubProvider) ParseEvent(payload []byte, sigHeader string) (*payment.Event, error) {
	s.lastSig = sigHeader
	if s.parseErr != nil {
		return nil, s.parseErr
	}
	return s.event, nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func postWebhook(t *testing.T, provider payment.Provider, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := testLogger()
	svc := application.NewOnboardingService(nil, nil, provider, nil, nil, "", "", logger)
	h := NewWebhookHandler(svc, provider, logger)

	r := gin.New()
	r.POST("/webhooks/stripe", h.HandleStripe)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewBufferString(body))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookBadSignature(t *testing.T) {
	provider := &stubProvider{parseErr: payment.ErrBadSignature}
	w := postWebhook(t, provider, `{}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["ok"] != false {
		t.Errorf("body = %v", body)
	}
	if provider.lastSig != "t=1,v1=abc" {
		t.Errorf("signature header not forwarded: %q", provider.lastSig)
	}
}

func TestWebhookIgnoredEventAck(t *testing.T) {
	provider := &stubProvider{event: &payment.Event{Kind: payment.EventIgnored, Type: "charge.updated"}}
	w := postWebhook(t, provider, `{}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["ok"] != true || body["received"] != true {
		t.Errorf("body = %v", body)
	}
}

func TestWebhookUnparseablePayloadAck(t *testing.T) {
	// Verified but undecodable payloads are acknowledged, not retried.
	provider := &stubProvider{parseErr: errors.New("unexpected payload shape")}
	w := postWebhook(t, provider, `{"broken":`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
