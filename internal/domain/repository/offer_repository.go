package repository

import (
	"context"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
)

type OfferRepository interface {
	// GetByValuationAndUser returns entity.ErrNotFound when the pair has
	// no offer yet.
	GetByValuationAndUser(ctx context.Context, valuationID, userID string) (*entity.Offer, error)
	// AppendItem creates the offer on first use, appends the item and adds
	// its price to the running total in one atomic read-modify-write.
	// Concurrent appends for the same (valuation, user) serialize.
	AppendItem(ctx context.Context, valuationID, userID string, item entity.OfferItem) (*entity.Offer, error)
}
