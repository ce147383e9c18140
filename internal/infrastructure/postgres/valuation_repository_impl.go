package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
	"github.com/valoris-se/valoris-api/internal/domain/repository"
)

type ValuationRepository struct {
	pool *pgxpool.Pool
}

func NewValuationRepository(pool *pgxpool.Pool) *ValuationRepository {
	return &ValuationRepository{pool: pool}
}

func (r *ValuationRepository) Create(ctx context.Context, v *entity.Valuation) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO valuations
			(user_id, address, city, property_type, living_area, rooms, year_built,
			 features, estimate_sek, low_sek, high_sek, confidence, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`, v.UserID, v.Address, v.City, v.PropertyType, v.LivingArea, v.Rooms, v.YearBuilt,
		v.Features, v.EstimateSek, v.LowSek, v.HighSek, v.Confidence, v.Status)

	return row.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (r *ValuationRepository) GetByID(ctx context.Context, id string) (*entity.Valuation, error) {
	row := r.pool.QueryRow(ctx, valuationColumns+` WHERE id = $1`, id)
	return scanValuation(row)
}

func (r *ValuationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Valuation, error) {
	rows, err := r.pool.Query(ctx, valuationColumns+`
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Valuation, 0)
	for rows.Next() {
		v, err := scanValuation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *ValuationRepository) UpdateFeatures(ctx context.Context, v *entity.Valuation) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE valuations
		SET features = $2, estimate_sek = $3, low_sek = $4, high_sek = $5,
		    confidence = $6, updated_at = now()
		WHERE id = $1
	`, v.ID, v.Features, v.EstimateSek, v.LowSek, v.HighSek, v.Confidence)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrNotFound
	}
	return nil
}

const valuationColumns = `
	SELECT id, user_id, address, city, property_type, living_area, rooms, year_built,
	       features, estimate_sek, low_sek, high_sek, confidence, status,
	       created_at, updated_at
	FROM valuations`

func scanValuation(row pgx.Row) (*entity.Valuation, error) {
	v := &entity.Valuation{}
	if err := row.Scan(&v.ID, &v.UserID, &v.Address, &v.City, &v.PropertyType,
		&v.LivingArea, &v.Rooms, &v.YearBuilt, &v.Features,
		&v.EstimateSek, &v.LowSek, &v.HighSek, &v.Confidence, &v.Status,
		&v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

var _ repository.ValuationRepository = (*ValuationRepository)(nil)
