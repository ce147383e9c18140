package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/valoris-se/valoris-api/internal/application"
	"github.com/valoris-se/valoris-api/internal/interface/middleware"
	"github.com/valoris-se/valoris-api/pkg/localized"
	"github.com/valoris-se/valoris-api/pkg/response"
	"github.com/valoris-se/valoris-api/pkg/validation"
)

type OfferHandler struct {
	Offers *application.OfferService
	Logger *logrus.Logger
}

func NewOfferHandler(o *application.OfferService, logger *logrus.Logger) *OfferHandler {
	return &OfferHandler{Offers: o, Logger: logger}
}

type addOfferItemRequest struct {
	ValuationID string `json:"valuationId" binding:"required"`
	Item        *struct {
		Title    string `json:"title"`
		TitleSv  string `json:"titleSv"`
		TitleEn  string `json:"titleEn"`
		PriceSek *int64 `json:"priceSek"`
	} `json:"item" binding:"required"`
}

// AddItem appends one item to the caller's offer for the valuation,
// creating the offer on first use.
func (h *OfferHandler) AddItem(c *gin.Context) {
	var req addOfferItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	if uuid.Validate(req.ValuationID) != nil {
		response.Fail(c, http.StatusBadRequest, "invalid valuation id")
		return
	}

	lang := localized.Parse(c.Query("lang"))
	offer, err := h.Offers.AddItem(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.ValuationID, application.OfferItemInput{
		Title:    req.Item.Title,
		TitleSv:  req.Item.TitleSv,
		TitleEn:  req.Item.TitleEn,
		PriceSek: req.Item.PriceSek,
	}, lang)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"offer": offer})
}

// Get returns the caller's offer for the valuation, or offer:null when
// none exists yet.
func (h *OfferHandler) Get(c *gin.Context) {
	valuationID := c.Param("valuationId")
	if uuid.Validate(valuationID) != nil {
		response.Fail(c, http.StatusBadRequest, "invalid valuation id")
		return
	}

	lang := localized.Parse(c.Query("lang"))
	view, err := h.Offers.Get(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), valuationID, lang)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if view == nil {
		response.OK(c, gin.H{"offer": nil})
		return
	}
	response.OK(c, gin.H{"offer": view})
}
