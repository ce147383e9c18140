package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/valoris-se/valoris-api/internal/container"
	handlers "github.com/valoris-se/valoris-api/internal/interface/http"
	"github.com/valoris-se/valoris-api/internal/interface/middleware"
	"github.com/valoris-se/valoris-api/pkg/helpers"
)

type ValuationModule struct {
	Handler *handlers.ValuationHandler
	JWT     *helpers.JWTManager
}

func NewValuationModule(h *handlers.ValuationHandler, jwt *helpers.JWTManager) *ValuationModule {
	return &ValuationModule{Handler: h, JWT: jwt}
}

func (m *ValuationModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.BearerAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/valuations", m.Handler.Create)
		auth.GET("/valuations/mine", m.Handler.ListMine)
		auth.GET("/valuations/:id", m.Handler.Get)
		auth.PATCH("/valuations/:id/features", m.Handler.UpdateFeatures)
	}
}
