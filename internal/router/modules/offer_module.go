package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/valoris-se/valoris-api/internal/container"
	handlers "github.com/valoris-se/valoris-api/internal/interface/http"
	"github.com/valoris-se/valoris-api/internal/interface/middleware"
	"github.com/valoris-se/valoris-api/pkg/helpers"
)

type OfferModule struct {
	Handler *handlers.OfferHandler
	JWT     *helpers.JWTManager
}

func NewOfferModule(h *handlers.OfferHandler, jwt *helpers.JWTManager) *OfferModule {
	return &OfferModule{Handler: h, JWT: jwt}
}

func (m *OfferModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.BearerAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/offers", m.Handler.AddItem)
		auth.GET("/offers/:valuationId", m.Handler.Get)
	}
}
