package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
	handlers "github.com/valoris-se/valoris-api/internal/interface/http"
	"github.com/valoris-se/valoris-api/internal/interface/middleware"
	"github.com/valoris-se/valoris-api/pkg/helpers"
)

type ExtrasModule struct {
	Handler *handlers.ExtrasHandler
	JWT     *helpers.JWTManager
}

func NewExtrasModule(h *handlers.ExtrasHandler, jwt *helpers.JWTManager) *ExtrasModule {
	return &ExtrasModule{Handler: h, JWT: jwt}
}

func (m *ExtrasModule) Register(rg *gin.RouterGroup) {
	// The whole extras surface is staff-only.
	staff := rg.Group("/")
	staff.Use(middleware.BearerAuth(m.JWT))
	staff.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleCreator))
	{
		staff.GET("/extras/admin/all", m.Handler.ListAll)
		staff.PATCH("/extras/admin/:id", m.Handler.Update)
		staff.GET("/extras/:valuationId", m.Handler.ListForValuation)
	}
}
