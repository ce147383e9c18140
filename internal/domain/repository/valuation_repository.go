package repository

import (
	"context"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
)

type ValuationRepository interface {
	Create(ctx context.Context, v *entity.Valuation) error
	GetByID(ctx context.Context, id string) (*entity.Valuation, error)
	// ListByUser returns the user's valuations, newest first.
	ListByUser(ctx context.Context, userID string) ([]*entity.Valuation, error)
	// UpdateFeatures persists the feature set together with the rederived
	// estimate fields.
	UpdateFeatures(ctx context.Context, v *entity.Valuation) error
}
