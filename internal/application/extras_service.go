package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
	repo "github.com/valoris-se/valoris-api/internal/domain/repository"
	"github.com/valoris-se/valoris-api/pkg/localized"
)

type ExtrasService struct {
	Repo   repo.ExtraRepository
	Logger *logrus.Logger
}

func NewExtrasService(r repo.ExtraRepository, logger *logrus.Logger) *ExtrasService {
	return &ExtrasService{Repo: r, Logger: logger}
}

// ExtraView is the language-projected output shape. Title and
// Description are resolved for the requested language; the raw sv/en
// fields are always included so clients can persist them (e.g. when
// copying an extra into an offer item).
type ExtraView struct {
	ID            string                   `json:"_id"`
	ValuationID   string                   `json:"valuationId"`
	PriceSek      int64                    `json:"priceSek"`
	PropertyType  entity.ExtraPropertyType `json:"propertyType"`
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	TitleSv       string                   `json:"titleSv"`
	TitleEn       string                   `json:"titleEn"`
	DescriptionSv string                   `json:"descriptionSv"`
	DescriptionEn string                   `json:"descriptionEn"`
}

// ListForValuation returns the valuation's extras, seeding the three
// default services on the first read. Two concurrent first-reads can
// both observe an empty set and both seed; tolerated, see the seeding
// notes in DESIGN.md.
func (s *ExtrasService) ListForValuation(ctx context.Context, valuationID string, lang localized.Lang) ([]ExtraView, error) {
	extras, err := s.Repo.ListByValuation(ctx, valuationID)
	if err != nil {
		return nil, err
	}

	if len(extras) == 0 {
		extras = defaultExtras(valuationID)
		if err := s.Repo.CreateBatch(ctx, extras); err != nil {
			return nil, err
		}
		s.Logger.WithField("valuation_id", valuationID).Info("seeded default extras")
	}

	views := make([]ExtraView, 0, len(extras))
	for _, e := range extras {
		views = append(views, projectExtra(e, lang))
	}
	return views, nil
}

// ListAll returns the raw catalog for admin/creator management, most
// recently updated first.
func (s *ExtrasService) ListAll(ctx context.Context) ([]*entity.ExtraService, error) {
	return s.Repo.ListAll(ctx)
}

func (s *ExtrasService) UpdateOne(ctx context.Context, id string, patch repo.ExtraPatch) (*entity.ExtraService, error) {
	if patch.PropertyType != nil && !patch.PropertyType.Valid() {
		return nil, entity.Validationf("invalid propertyType")
	}
	return s.Repo.Update(ctx, id, patch)
}

func projectExtra(e *entity.ExtraService, lang localized.Lang) ExtraView {
	title := localized.Text{Sv: e.TitleSv, En: e.TitleEn, Legacy: e.Title}
	desc := localized.Text{Sv: e.DescriptionSv, En: e.DescriptionEn, Legacy: e.Description}
	return ExtraView{
		ID:            e.ID,
		ValuationID:   e.ValuationID,
		PriceSek:      e.PriceSek,
		PropertyType:  e.PropertyType,
		Title:         title.Resolve(lang),
		Description:   desc.Resolve(lang),
		TitleSv:       title.RawSv(),
		TitleEn:       title.RawEn(),
		DescriptionSv: desc.RawSv(),
		DescriptionEn: desc.RawEn(),
	}
}

// defaultExtras are the three fixed services every valuation starts
// with. The legacy title/description duplicate the Swedish text.
func defaultExtras(valuationID string) []*entity.ExtraService {
	return []*entity.ExtraService{
		{
			ValuationID:   valuationID,
			Title:         "Homestyling",
			Description:   "Förbered bostaden för visning (möblering + styling).",
			TitleSv:       "Homestyling",
			TitleEn:       "Home staging",
			DescriptionSv: "Förbered bostaden för visning (möblering + styling).",
			DescriptionEn: "Prepare the home for viewings (furnishing + styling).",
			PriceSek:      15000,
			PropertyType:  entity.ExtraBoth,
		},
		{
			ValuationID:   valuationID,
			Title:         "Proffsfoto",
			Description:   "Fotograf + redigering för bättre annons.",
			TitleSv:       "Proffsfoto",
			TitleEn:       "Professional photos",
			DescriptionSv: "Fotograf + redigering för bättre annons.",
			DescriptionEn: "Photographer + editing for a better listing.",
			PriceSek:      4500,
			PropertyType:  entity.ExtraBoth,
		},
		{
			ValuationID:   valuationID,
			Title:         "3D / Planritning",
			Description:   "Planritning / 3D-visning för annons.",
			TitleSv:       "3D / Planritning",
			TitleEn:       "3D / Floor plan",
			DescriptionSv: "Planritning / 3D-visning för annons.",
			DescriptionEn: "Floor plan / 3D viewing for the listing.",
			PriceSek:      3500,
			PropertyType:  entity.ExtraBoth,
		},
	}
}
