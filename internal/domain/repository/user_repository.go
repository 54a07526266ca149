package repository

import (
	"context"

	"sosmed-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Lookups return (nil, nil) when no row matches so callers can distinguish
// absence from datastore failure.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetByEmailOrUsername serves the combined duplicate check at
	// registration with a single round-trip.
	GetByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error)
	SearchByUsername(ctx context.Context, username string) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
