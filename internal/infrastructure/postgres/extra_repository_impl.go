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

type ExtraRepository struct {
	pool *pgxpool.Pool
}

func NewExtraRepository(pool *pgxpool.Pool) *ExtraRepository {
	return &ExtraRepository{pool: pool}
}

const extraColumns = `
	SELECT id, valuation_id, title, description, title_sv, title_en,
	       description_sv, description_en, price_sek, property_type,
	       created_at, updated_at
	FROM extra_services`

func (r *ExtraRepository) ListByValuation(ctx context.Context, valuationID string) ([]*entity.ExtraService, error) {
	rows, err := r.pool.Query(ctx, extraColumns+`
		WHERE valuation_id = $1
		ORDER BY created_at
	`, valuationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExtras(rows)
}

func (r *ExtraRepository) ListAll(ctx context.Context) ([]*entity.ExtraService, error) {
	rows, err := r.pool.Query(ctx, extraColumns+` ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExtras(rows)
}

func (r *ExtraRepository) CreateBatch(ctx context.Context, extras []*entity.ExtraService) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, e := range extras {
		row := tx.QueryRow(ctx, `
			INSERT INTO extra_services
				(valuation_id, title, description, title_sv, title_en,
				 description_sv, description_en, price_sek, property_type)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at, updated_at
		`, e.ValuationID, e.Title, e.Description, e.TitleSv, e.TitleEn,
			e.DescriptionSv, e.DescriptionEn, e.PriceSek, e.PropertyType)
		if err := row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			// FK violation: the valuation does not exist.
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return entity.ErrNotFound
			}
			return err
		}
	}
	return tx.Commit(ctx)
}

// Update applies only the non-nil patch fields.
func (r *ExtraRepository) Update(ctx context.Context, id string, patch repository.ExtraPatch) (*entity.ExtraService, error) {
	e := &entity.ExtraService{}
	row := r.pool.QueryRow(ctx, `
		UPDATE extra_services
		SET title          = COALESCE($2, title),
		    description    = COALESCE($3, description),
		    title_sv       = COALESCE($4, title_sv),
		    title_en       = COALESCE($5, title_en),
		    description_sv = COALESCE($6, description_sv),
		    description_en = COALESCE($7, description_en),
		    price_sek      = COALESCE($8, price_sek),
		    property_type  = COALESCE($9, property_type),
		    updated_at     = now()
		WHERE id = $1
		RETURNING id, valuation_id, title, description, title_sv, title_en,
		          description_sv, description_en, price_sek, property_type,
		          created_at, updated_at
	`, id, patch.Title, patch.Description, patch.TitleSv, patch.TitleEn,
		patch.DescriptionSv, patch.DescriptionEn, patch.PriceSek, patch.PropertyType)

	if err := scanExtraInto(row, e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func collectExtras(rows pgx.Rows) ([]*entity.ExtraService, error) {
	out := make([]*entity.ExtraService, 0)
	for rows.Next() {
		e := &entity.ExtraService{}
		if err := scanExtraInto(rows, e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanExtraInto(row pgx.Row, e *entity.ExtraService) error {
	return row.Scan(&e.ID, &e.ValuationID, &e.Title, &e.Description,
		&e.TitleSv, &e.TitleEn, &e.DescriptionSv, &e.DescriptionEn,
		&e.PriceSek, &e.PropertyType, &e.CreatedAt, &e.UpdatedAt)
}

var _ repository.ExtraRepository = (*ExtraRepository)(nil)
