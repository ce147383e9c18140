package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
	"github.com/valoris-se/valoris-api/internal/domain/repository"
)

type OnboardingRepository struct {
	pool *pgxpool.Pool
}

func NewOnboardingRepository(pool *pgxpool.Pool) *OnboardingRepository {
	return &OnboardingRepository{pool: pool}
}

func (r *OnboardingRepository) Create(ctx context.Context, s *entity.OnboardingSession) error {
	// Opportunistic purge; expired rows carry no value and GetByID filters
	// them out anyway.
	_, _ = r.pool.Exec(ctx, `DELETE FROM onboarding_sessions WHERE expires_at < now()`)

	row := r.pool.QueryRow(ctx, `
		INSERT INTO onboarding_sessions (name, email, password_hash, role, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, s.Name, s.Email, s.PasswordHash, s.Role, s.ExpiresAt)

	return row.Scan(&s.ID, &s.CreatedAt)
}

func (r *OnboardingRepository) GetByID(ctx context.Context, id string) (*entity.OnboardingSession, error) {
	s := &entity.OnboardingSession{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, used_at, expires_at, created_at
		FROM onboarding_sessions
		WHERE id = $1 AND expires_at > now()
	`, id)

	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.Role,
		&s.UsedAt, &s.ExpiresAt, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// MarkUsed flips used_at exactly once; concurrent callers race on the
// used_at IS NULL guard and only one wins.
func (r *OnboardingRepository) MarkUsed(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE onboarding_sessions
		SET used_at = now()
		WHERE id = $1 AND used_at IS NULL
	`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

var _ repository.OnboardingRepository = (*OnboardingRepository)(nil)
