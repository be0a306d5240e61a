package usecase

import (
	"context"

	"tripspot/internal/domain/entity"
)

// TokenVerifier resolves an ID token to the caller's identity.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*entity.Identity, error)
}

// LikeCounter applies atomic deltas to a place's like count.
type LikeCounter interface {
	IncrementLikes(ctx context.Context, id string) error
	DecrementLikes(ctx context.Context, id string) error
}
