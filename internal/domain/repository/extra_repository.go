package repository

import (
	"context"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
)

// ExtraPatch carries a partial update; nil fields are left untouched.
type ExtraPatch struct {
	Title         *string
	Description   *string
	TitleSv       *string
	TitleEn       *string
	DescriptionSv *string
	DescriptionEn *string
	PriceSek      *int64
	PropertyType  *entity.ExtraPropertyType
}

type ExtraRepository interface {
	// ListByValuation returns the valuation's extras in creation order.
	ListByValuation(ctx context.Context, valuationID string) ([]*entity.ExtraService, error)
	// CreateBatch inserts the given extras in one transaction.
	CreateBatch(ctx context.Context, extras []*entity.ExtraService) error
	// ListAll returns every extra, most recently updated first.
	ListAll(ctx context.Context) ([]*entity.ExtraService, error)
	Update(ctx context.Context, id string, patch ExtraPatch) (*entity.ExtraService, error)
}
