package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
	"github.com/valoris-se/valoris-api/internal/domain/repository"
)

type OfferRepository struct {
	pool *pgxpool.Pool
}

func NewOfferRepository(pool *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{pool: pool}
}

func (r *OfferRepository) GetByValuationAndUser(ctx context.Context, valuationID, userID string) (*entity.Offer, error) {
	o := &entity.Offer{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, valuation_id, user_id, total_sek, created_at, updated_at
		FROM offers
		WHERE valuation_id = $1 AND user_id = $2
	`, valuationID, userID)

	if err := row.Scan(&o.ID, &o.ValuationID, &o.UserID, &o.TotalSek,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	items, err := r.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// AppendItem upserts the caller's offer for the valuation, appends the item
// at the next position and bumps the running total, all in one transaction.
// The row lock on the offer serializes concurrent appends so the total stays
// equal to the sum of item prices.
func (r *OfferRepository) AppendItem(ctx context.Context, valuationID, userID string, item entity.OfferItem) (*entity.Offer, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO offers (valuation_id, user_id, total_sek)
		VALUES ($1, $2, 0)
		ON CONFLICT (valuation_id, user_id) DO NOTHING
	`, valuationID, userID)
	if err != nil {
		// FK violation: the valuation does not exist.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	var offerID string
	err = tx.QueryRow(ctx, `
		SELECT id FROM offers
		WHERE valuation_id = $1 AND user_id = $2
		FOR UPDATE
	`, valuationID, userID).Scan(&offerID)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO offer_items
			(offer_id, position, title, title_sv, title_en, price_sek)
		VALUES ($1,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM offer_items WHERE offer_id = $1),
			$2, $3, $4, $5)
	`, offerID, item.Title, item.TitleSv, item.TitleEn, item.PriceSek)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE offers
		SET total_sek = total_sek + $2, updated_at = now()
		WHERE id = $1
	`, offerID, item.PriceSek)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByValuationAndUser(ctx, valuationID, userID)
}

func (r *OfferRepository) listItems(ctx context.Context, offerID string) ([]entity.OfferItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, title_sv, title_en, price_sek
		FROM offer_items
		WHERE offer_id = $1
		ORDER BY position
	`, offerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entity.OfferItem, 0)
	for rows.Next() {
		var it entity.OfferItem
		if err := rows.Scan(&it.ID, &it.Title, &it.TitleSv, &it.TitleEn, &it.PriceSek); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

var _ repository.OfferRepository = (*OfferRepository)(nil)
