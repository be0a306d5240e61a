package repository

import (
	"context"

	"tripspot/internal/domain/entity"
)

type FileMetadataRepository interface {
	Create(ctx context.Context, metadata *entity.FileMetadata) error
	ListByPlace(ctx context.Context, placeID string) ([]*entity.FileMetadata, error)
	Delete(ctx context.Context, id string) error
}
