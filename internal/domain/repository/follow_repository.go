package repository

import (
	"context"

	"sosmed-api/internal/domain/entity"
)

// FollowRepository persists directed follow edges.
// There is no delete; unfollow is not part of the product yet.
type FollowRepository interface {
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	Create(ctx context.Context, f *entity.Follow) error
}
