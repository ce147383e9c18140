package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/valoris-se/valoris-api/internal/application"
	"github.com/valoris-se/valoris-api/internal/domain/entity"
	repo "github.com/valoris-se/valoris-api/internal/domain/repository"
	"github.com/valoris-se/valoris-api/pkg/localized"
	"github.com/valoris-se/valoris-api/pkg/response"
	"github.com/valoris-se/valoris-api/pkg/validation"
)

type ExtrasHandler struct {
	Extras *application.ExtrasService
	Logger *logrus.Logger
}

func NewExtrasHandler(e *application.ExtrasService, logger *logrus.Logger) *ExtrasHandler {
	return &ExtrasHandler{Extras: e, Logger: logger}
}

// ListForValuation returns the valuation's extras projected for ?lang=,
// seeding the default catalog on first read.
func (h *ExtrasHandler) ListForValuation(c *gin.Context) {
	valuationID := c.Param("valuationId")
	if uuid.Validate(valuationID) != nil {
		response.Fail(c, http.StatusBadRequest, "invalid valuation id")
		return
	}

	lang := localized.Parse(c.Query("lang"))
	views, err := h.Extras.ListForValuation(c.Request.Context(), valuationID, lang)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"extras": views})
}

// extraAdminView exposes the raw stored record, legacy fields included.
type extraAdminView struct {
	ID            string `json:"_id"`
	ValuationID   string `json:"valuationId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	TitleSv       string `json:"titleSv"`
	TitleEn       string `json:"titleEn"`
	DescriptionSv string `json:"descriptionSv"`
	DescriptionEn string `json:"descriptionEn"`
	PriceSek      int64  `json:"priceSek"`
	PropertyType  string `json:"propertyType"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func projectExtraAdmin(e *entity.ExtraService) extraAdminView {
	return extraAdminView{
		ID:            e.ID,
		ValuationID:   e.ValuationID,
		Title:         e.Title,
		Description:   e.Description,
		TitleSv:       e.TitleSv,
		TitleEn:       e.TitleEn,
		DescriptionSv: e.DescriptionSv,
		DescriptionEn: e.DescriptionEn,
		PriceSek:      e.PriceSek,
		PropertyType:  string(e.PropertyType),
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     e.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *ExtrasHandler) ListAll(c *gin.Context) {
	extras, err := h.Extras.ListAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	views := make([]extraAdminView, 0, len(extras))
	for _, e := range extras {
		views = append(views, projectExtraAdmin(e))
	}
	response.OK(c, gin.H{"extras": views})
}

type updateExtraRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	TitleSv       *string `json:"titleSv"`
	TitleEn       *string `json:"titleEn"`
	DescriptionSv *string `json:"descriptionSv"`
	DescriptionEn *string `json:"descriptionEn"`
	PriceSek      *int64  `json:"priceSek"`
	PropertyType  *string `json:"propertyType"`
}

func (h *ExtrasHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		response.Fail(c, http.StatusBadRequest, "invalid extra id")
		return
	}

	var req updateExtraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	patch := repo.ExtraPatch{
		Title:         req.Title,
		Description:   req.Description,
		TitleSv:       req.TitleSv,
		TitleEn:       req.TitleEn,
		DescriptionSv: req.DescriptionSv,
		DescriptionEn: req.DescriptionEn,
		PriceSek:      req.PriceSek,
	}
	if req.PropertyType != nil {
		pt := entity.ExtraPropertyType(*req.PropertyType)
		patch.PropertyType = &pt
	}

	e, err := h.Extras.UpdateOne(c.Request.Context(), id, patch)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"extra": projectExtraAdmin(e)})
}
