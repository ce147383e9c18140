package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/valoris-se/valoris-api/internal/container"
	handlers "github.com/valoris-se/valoris-api/internal/interface/http"
	"github.com/valoris-se/valoris-api/internal/interface/middleware"
	"github.com/valoris-se/valoris-api/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Env     string
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, env string) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Env: env}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Handler.Health)

	// Public login with IP-based rate limit; internal callers bypass it
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.BearerAuth(m.JWT))
	{
		auth.GET("/me", m.Handler.Me)
	}

	// Throwaway account factory, never exposed in production.
	if m.Env != "production" {
		rg.POST("/test/create-user", m.Handler.CreateTestUser)
	}
}
