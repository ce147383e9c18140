package repository

import (
	"context"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
)

// UserRepository defines the interface for identity-store operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	// CreateIfAbsent inserts the user unless the email is already taken.
	// created is false when another row owns the email; concurrent callers
	// racing on the same email see at most one created=true.
	CreateIfAbsent(ctx context.Context, u *entity.User) (created bool, err error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
