package repository

import (
	"context"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
)

// OnboardingRepository stores pending creator signups. Expiry is a
// storage-layer concern: GetByID must treat sessions past their
// ExpiresAt as not found.
type OnboardingRepository interface {
	Create(ctx context.Context, s *entity.OnboardingSession) error
	GetByID(ctx context.Context, id string) (*entity.OnboardingSession, error)
	// MarkUsed sets used_at only when it is still null. won reports
	// whether this caller performed the transition; a duplicate webhook
	// delivery gets won=false.
	MarkUsed(ctx context.Context, id string) (won bool, err error)
}
