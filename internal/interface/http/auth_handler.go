package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/valoris-se/valoris-api/internal/application"
	"github.com/valoris-se/valoris-api/internal/interface/middleware"
	"github.com/valoris-se/valoris-api/pkg/response"
	"github.com/valoris-se/valoris-api/pkg/validation"
)

type AuthHandler struct {
	Auth   *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	res, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{
		"token":     res.Token,
		"role":      res.Role,
		"expiresAt": res.ExpiresAt.Format(time.RFC3339),
	})
}

// Me echoes the authenticated claims back to the caller.
func (h *AuthHandler) Me(c *gin.Context) {
	response.OK(c, gin.H{
		"userId": c.GetString(middleware.CtxUserIDKey),
		"role":   c.GetString(middleware.CtxUserRoleKey),
		"email":  c.GetString(middleware.CtxUserEmailKey),
	})
}

func (h *AuthHandler) Health(c *gin.Context) {
	response.OK(c, gin.H{"app": "Valoris API"})
}

// CreateTestUser inserts a throwaway account. The route is only
// registered outside production.
func (h *AuthHandler) CreateTestUser(c *gin.Context) {
	u, err := h.Auth.CreateDevUser(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Logger.WithField("email", u.Email).Info("test user created")
	response.OK(c, gin.H{"user": gin.H{
		"_id":   u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}})
}
