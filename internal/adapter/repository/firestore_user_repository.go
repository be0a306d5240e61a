package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tripspot/internal/domain/entity"
	"tripspot/internal/domain/repository"
	"tripspot/pkg/errors"
	"tripspot/pkg/logger"
)

const usersCollection = "users"

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	if user.ID == "" {
		user.ID = doc.Ref.ID
	}
	if user.Wishlist == nil {
		user.Wishlist = []string{}
	}

	return &user, nil
}

func (r *firestoreUserRepository) CreateIfAbsent(ctx context.Context, user *entity.User) (bool, error) {
	if user.Wishlist == nil {
		user.Wishlist = []string{}
	}

	_, err := r.client.Collection(usersCollection).Doc(user.ID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return false, nil
		}
		return false, errors.Internal("Failed to create user", err)
	}

	logger.Info("Created user document for %s", user.ID)
	return true, nil
}

// GetWishlist returns an empty list when the user document does not exist.
func (r *firestoreUserRepository) GetWishlist(ctx context.Context, uid string) ([]string, error) {
	doc, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return []string{}, nil
		}
		return nil, errors.Internal("Failed to get wishlist", err)
	}

	return wishlistFromDoc(doc), nil
}

// SetWishlistMember reads the wishlist inside the transaction, so of two
// concurrent likes only one observes a change.
func (r *firestoreUserRepository) SetWishlistMember(ctx context.Context, uid, placeID string, member bool) (bool, error) {
	ref := r.client.Collection(usersCollection).Doc(uid)

	var changed bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		changed = false
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		if containsID(wishlistFromDoc(doc), placeID) == member {
			return nil
		}

		var value interface{} = firestore.ArrayUnion(placeID)
		if !member {
			value = firestore.ArrayRemove(placeID)
		}
		changed = true
		return tx.Update(ref, []firestore.Update{
			{Path: "wishlist", Value: value},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, errors.NotFound("User", err)
		}
		return false, errors.Internal("Failed to update wishlist", err)
	}

	return changed, nil
}

func (r *firestoreUserRepository) WatchWishlist(ctx context.Context, uid string, fn func([]string)) error {
	iter := r.client.Collection(usersCollection).Doc(uid).Snapshots(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done || ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return nil
			}
			return errors.Internal("Wishlist subscription failed", err)
		}

		if !doc.Exists() {
			fn([]string{})
			continue
		}
		fn(wishlistFromDoc(doc))
	}
}

func wishlistFromDoc(doc *firestore.DocumentSnapshot) []string {
	raw, err := doc.DataAt("wishlist")
	if err != nil {
		return []string{}
	}

	values, ok := raw.([]interface{})
	if !ok {
		return []string{}
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
