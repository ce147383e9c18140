package payment

import (
	"context"
	"errors"
)

// ErrBadSignature is returned by ParseEvent when the webhook payload
// cannot be verified against the shared secret. It is the only webhook
// failure that surfaces as a hard rejection.
var ErrBadSignature = errors.New("webhook signature verification failed")

// IntentParams describes a payment intent to create. Amount is in the
// currency's minor unit (öre for SEK).
type IntentParams struct {
	Amount      int64
	Currency    string
	Description string
	Ref         string
	Email       string
	Role        string
}

// Intent is the subset of the processor's payment intent the API exposes.
type Intent struct {
	ID           string
	ClientSecret string
}

type EventKind int

const (
	EventIgnored EventKind = iota
	EventPaymentSucceeded
	EventPaymentFailed
	EventCheckoutCompleted
)

// Event is a processor webhook event normalized to what account
// provisioning needs. Ref is empty when the event carried no onboarding
// reference.
type Event struct {
	Kind     EventKind
	Type     string
	Ref      string
	Email    string
	IntentID string
}

// Provider is the payment processor boundary: create an intent, verify
// and read a webhook event.
type Provider interface {
	CreateIntent(ctx context.Context, p IntentParams) (*Intent, error)
	// ParseEvent verifies sigHeader against the raw payload and returns
	// the normalized event. Verification failure yields ErrBadSignature.
	ParseEvent(payload []byte, sigHeader string) (*Event, error)
}
