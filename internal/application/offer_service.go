package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
	repo "github.com/valoris-se/valoris-api/internal/domain/repository"
	"github.com/valoris-se/valoris-api/pkg/localized"
)

type OfferService struct {
	Repo   repo.OfferRepository
	Logger *logrus.Logger
}

func NewOfferService(r repo.OfferRepository, logger *logrus.Logger) *OfferService {
	return &OfferService{Repo: r, Logger: logger}
}

type OfferItemInput struct {
	Title    string
	TitleSv  string
	TitleEn  string
	PriceSek *int64
}

// AddItem appends an item to the caller's offer for the valuation,
// creating the offer on first use. The repository applies the append and
// the total increment atomically.
func (s *OfferService) AddItem(ctx context.Context, userID, valuationID string, in OfferItemInput, lang localized.Lang) (*OfferView, error) {
	if valuationID == "" || in.PriceSek == nil {
		return nil, entity.Validationf("missing data (valuationId, item, item.priceSek)")
	}
	title := localized.Text{Sv: in.TitleSv, En: in.TitleEn, Legacy: in.Title}
	if title.Empty() {
		return nil, entity.Validationf("missing data (item.titleSv/titleEn/title)")
	}

	n := title.Normalize()
	item := entity.OfferItem{
		Title:    n.Legacy,
		TitleSv:  n.Sv,
		TitleEn:  n.En,
		PriceSek: *in.PriceSek,
	}
	offer, err := s.Repo.AppendItem(ctx, valuationID, userID, item)
	if err != nil {
		return nil, err
	}
	return projectOffer(offer, lang), nil
}

type OfferItemView struct {
	Title    string `json:"title"`
	TitleSv  string `json:"titleSv"`
	TitleEn  string `json:"titleEn"`
	PriceSek int64  `json:"priceSek"`
}

type OfferView struct {
	ID          string          `json:"_id"`
	ValuationID string          `json:"valuationId"`
	UserID      string          `json:"userId"`
	TotalSek    int64           `json:"totalSek"`
	Items       []OfferItemView `json:"items"`
}

// Get returns the caller's offer for the valuation with items projected
// for lang, or nil when no offer exists yet.
func (s *OfferService) Get(ctx context.Context, userID, valuationID string, lang localized.Lang) (*OfferView, error) {
	offer, err := s.Repo.GetByValuationAndUser(ctx, valuationID, userID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return projectOffer(offer, lang), nil
}

func projectOffer(o *entity.Offer, lang localized.Lang) *OfferView {
	items := make([]OfferItemView, 0, len(o.Items))
	for _, it := range o.Items {
		title := localized.Text{Sv: it.TitleSv, En: it.TitleEn, Legacy: it.Title}
		items = append(items, OfferItemView{
			Title:    title.Resolve(lang),
			TitleSv:  it.TitleSv,
			TitleEn:  it.TitleEn,
			PriceSek: it.PriceSek,
		})
	}
	return &OfferView{
		ID:          o.ID,
		ValuationID: o.ValuationID,
		UserID:      o.UserID,
		TotalSek:    o.TotalSek,
		Items:       items,
	}
}
