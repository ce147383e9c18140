package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/valoris-se/valoris-api/internal/container"
	handlers "github.com/valoris-se/valoris-api/internal/interface/http"
	"github.com/valoris-se/valoris-api/internal/interface/middleware"
)

type OnboardingModule struct {
	Handler *handlers.OnboardingHandler
	Webhook *handlers.WebhookHandler
}

func NewOnboardingModule(h *handlers.OnboardingHandler, w *handlers.WebhookHandler) *OnboardingModule {
	return &OnboardingModule{Handler: h, Webhook: w}
}

func (m *OnboardingModule) Register(rg *gin.RouterGroup) {
	// Public signup intent with IP-based rate limit
	intentLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/onboard/creator/create-intent", intentLimiter, m.Handler.CreateIntent)

	// Webhook deliveries are signature-verified, not rate limited; the
	// processor controls the retry cadence.
	rg.POST("/webhooks/stripe", m.Webhook.HandleStripe)
}
