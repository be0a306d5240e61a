package repository

import (
	"context"

	"tripspot/internal/domain/entity"
)

type ReviewRepository interface {
	// ListByPlace returns reviews newest first.
	ListByPlace(ctx context.Context, placeID string) ([]*entity.Review, error)
	// Create writes the review and bumps the place's review count atomically.
	Create(ctx context.Context, review *entity.Review) error
}
