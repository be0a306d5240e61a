package repository

import (
	"context"
	"time"

	"tripspot/internal/domain/entity"
)

type PlaceRepository interface {
	// List returns every place matching the filter, in store order.
	List(ctx context.Context, filter entity.PlaceFilter) ([]*entity.Place, error)
	GetByID(ctx context.Context, id string) (*entity.Place, error)
	CreateEmpty(ctx context.Context) (string, error)
	Update(ctx context.Context, id string, fields entity.PlaceFields) error
	// AdjustLikes applies an atomic delta to stats.likes.
	AdjustLikes(ctx context.Context, id string, delta int64) error
	// Keywords returns the keyword sets of all places.
	Keywords(ctx context.Context) ([][]string, error)
	ListDraftsBefore(ctx context.Context, cutoff time.Time) ([]*entity.Place, error)
	Delete(ctx context.Context, id string) error
}
