package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tripspot/internal/domain/entity"
	"tripspot/internal/domain/repository"
	"tripspot/pkg/errors"
)

const reviewsCollection = "reviews"

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) ListByPlace(ctx context.Context, placeID string) ([]*entity.Review, error) {
	iter := r.client.Collection(reviewsCollection).
		Where("placeId", "==", placeID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	reviews := []*entity.Review{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate reviews", err)
		}

		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, errors.Internal("Failed to parse review data", err)
		}
		review.ID = doc.Ref.ID
		reviews = append(reviews, &review)
	}

	return reviews, nil
}

// Create writes the review and increments stats.reviewCount in one
// transaction. The place must exist.
func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	placeRef := r.client.Collection(placesCollection).Doc(review.PlaceID)
	reviewRef := r.client.Collection(reviewsCollection).NewDoc()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(placeRef); err != nil {
			return err
		}

		if err := tx.Create(reviewRef, review); err != nil {
			return err
		}

		return tx.Update(placeRef, []firestore.Update{
			{Path: "stats.reviewCount", Value: firestore.Increment(1)},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Place", err)
		}
		return errors.Internal("Failed to create review", err)
	}

	review.ID = reviewRef.ID
	return nil
}
