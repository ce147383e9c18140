package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/valoris-se/valoris-api/internal/application"
	"github.com/valoris-se/valoris-api/pkg/response"
	"github.com/valoris-se/valoris-api/pkg/validation"
)

type OnboardingHandler struct {
	Onboarding *application.OnboardingService
	Logger     *logrus.Logger
}

func NewOnboardingHandler(o *application.OnboardingService, logger *logrus.Logger) *OnboardingHandler {
	return &OnboardingHandler{Onboarding: o, Logger: logger}
}

type createIntentRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// CreateIntent opens a pending creator signup and returns the payment
// client secret the frontend needs to collect the fee.
func (h *OnboardingHandler) CreateIntent(c *gin.Context) {
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	res, err := h.Onboarding.CreateIntent(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"clientSecret": res.ClientSecret, "ref": res.Ref})
}
