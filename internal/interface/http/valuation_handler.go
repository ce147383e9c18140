package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/valoris-se/valoris-api/internal/application"
	"github.com/valoris-se/valoris-api/internal/domain/entity"
	"github.com/valoris-se/valoris-api/internal/interface/middleware"
	"github.com/valoris-se/valoris-api/pkg/response"
	"github.com/valoris-se/valoris-api/pkg/validation"
)

type ValuationHandler struct {
	Valuations *application.ValuationService
	Logger     *logrus.Logger
}

func NewValuationHandler(v *application.ValuationService, logger *logrus.Logger) *ValuationHandler {
	return &ValuationHandler{Valuations: v, Logger: logger}
}

type createValuationRequest struct {
	Address      string          `json:"address" binding:"required"`
	City         string          `json:"city"`
	PropertyType string          `json:"propertyType" binding:"required,oneof=apartment house"`
	LivingArea   float64         `json:"livingArea" binding:"required,gt=0"`
	Rooms        int             `json:"rooms"`
	YearBuilt    *int            `json:"yearBuilt"`
	Features     entity.Features `json:"features"`
}

// featuresRequest binds a feature patch; keys outside the known set are
// dropped by the decoder.
type featuresRequest struct {
	Features entity.Features `json:"features"`
}

type valuationView struct {
	ID           string          `json:"_id"`
	UserID       string          `json:"userId"`
	Address      string          `json:"address"`
	City         string          `json:"city,omitempty"`
	PropertyType string          `json:"propertyType"`
	LivingArea   float64         `json:"livingArea"`
	Rooms        int             `json:"rooms"`
	YearBuilt    *int            `json:"yearBuilt,omitempty"`
	Features     entity.Features `json:"features"`
	EstimateSek  int64           `json:"estimateSek"`
	LowSek       int64           `json:"lowSek"`
	HighSek      int64           `json:"highSek"`
	Confidence   int             `json:"confidence"`
	Status       string          `json:"status"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

func projectValuation(v *entity.Valuation) valuationView {
	return valuationView{
		ID:           v.ID,
		UserID:       v.UserID,
		Address:      v.Address,
		City:         v.City,
		PropertyType: string(v.PropertyType),
		LivingArea:   v.LivingArea,
		Rooms:        v.Rooms,
		YearBuilt:    v.YearBuilt,
		Features:     v.Features,
		EstimateSek:  v.EstimateSek,
		LowSek:       v.LowSek,
		HighSek:      v.HighSek,
		Confidence:   v.Confidence,
		Status:       string(v.Status),
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    v.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *ValuationHandler) Create(c *gin.Context) {
	var req createValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	v, err := h.Valuations.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.CreateValuationInput{
		Address:      req.Address,
		City:         req.City,
		PropertyType: entity.PropertyType(req.PropertyType),
		LivingArea:   req.LivingArea,
		Rooms:        req.Rooms,
		YearBuilt:    req.YearBuilt,
		Features:     req.Features,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"valuation": projectValuation(v)})
}

func (h *ValuationHandler) UpdateFeatures(c *gin.Context) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		response.Fail(c, http.StatusBadRequest, "invalid valuation id")
		return
	}

	var req featuresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	v, err := h.Valuations.UpdateFeatures(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), id, req.Features)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"valuation": projectValuation(v)})
}

func (h *ValuationHandler) ListMine(c *gin.Context) {
	list, err := h.Valuations.ListMine(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	views := make([]valuationView, 0, len(list))
	for _, v := range list {
		views = append(views, projectValuation(v))
	}
	response.OK(c, gin.H{"valuations": views})
}

func (h *ValuationHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		response.Fail(c, http.StatusBadRequest, "invalid valuation id")
		return
	}

	v, err := h.Valuations.Get(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"valuation": projectValuation(v)})
}
