package repository

import (
	"context"

	"tripspot/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// CreateIfAbsent reports whether a new document was written.
	CreateIfAbsent(ctx context.Context, user *entity.User) (bool, error)

	GetWishlist(ctx context.Context, uid string) ([]string, error)
	// SetWishlistMember adds or removes placeID in one transaction over the
	// user document and reports whether membership changed.
	SetWishlistMember(ctx context.Context, uid, placeID string, member bool) (bool, error)
	// WatchWishlist calls fn with the full wishlist on every change to the
	// user document. It blocks until ctx is done or the stream fails.
	WatchWishlist(ctx context.Context, uid string, fn func([]string)) error
}
