package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/valoris-se/valoris-api/internal/application"
	"github.com/valoris-se/valoris-api/internal/payment"
	"github.com/valoris-se/valoris-api/pkg/response"
)

type WebhookHandler struct {
	Onboarding *application.OnboardingService
	Payments   payment.Provider
	Logger     *logrus.Logger
}

func NewWebhookHandler(o *application.OnboardingService, p payment.Provider, logger *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{Onboarding: o, Payments: p, Logger: logger}
}

// HandleStripe verifies and processes one webhook delivery. A bad
// signature is the only rejection; every verified event is acknowledged
// with 200 regardless of business outcome so the processor never retries
// deliveries we have already classified.
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "unreadable body")
		return
	}

	evt, err := h.Payments.ParseEvent(body, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, payment.ErrBadSignature) {
			h.Logger.WithError(err).Warn("webhook signature verification failed")
			response.Fail(c, http.StatusBadRequest, "invalid signature")
			return
		}
		// Verified but unparseable payloads are acknowledged; retrying
		// will not make them parseable.
		h.Logger.WithError(err).Warn("webhook payload not understood")
		response.OK(c, gin.H{"received": true})
		return
	}

	h.Onboarding.HandleEvent(c.Request.Context(), evt)
	response.OK(c, gin.H{"received": true})
}
