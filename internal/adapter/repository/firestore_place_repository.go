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
	"tripspot/pkg/logger"
)

const placesCollection = "places"

type firestorePlaceRepository struct {
	client *firestore.Client
}

func NewFirestorePlaceRepository(client *firestore.Client) repository.PlaceRepository {
	return &firestorePlaceRepository{
		client: client,
	}
}

func (r *firestorePlaceRepository) List(ctx context.Context, filter entity.PlaceFilter) ([]*entity.Place, error) {
	query := applyPredicates(r.client.Collection(placesCollection).Query, BuildPlacePredicates(filter))

	iter := query.Documents(ctx)
	defer iter.Stop()

	var places []*entity.Place
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate places", err)
		}

		place, err := placeFromDoc(doc)
		if err != nil {
			logger.Error("Failed to parse place %s: %v", doc.Ref.ID, err)
			continue
		}
		places = append(places, place)
	}

	return places, nil
}

func (r *firestorePlaceRepository) GetByID(ctx context.Context, id string) (*entity.Place, error) {
	doc, err := r.client.Collection(placesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Place", err)
		}
		return nil, errors.Internal("Failed to get place", err)
	}

	place, err := placeFromDoc(doc)
	if err != nil {
		return nil, errors.Internal("Failed to parse place data", err)
	}

	return place, nil
}

// CreateEmpty inserts the phase-one placeholder and returns its ID.
func (r *firestorePlaceRepository) CreateEmpty(ctx context.Context) (string, error) {
	ref, _, err := r.client.Collection(placesCollection).Add(ctx, map[string]interface{}{
		"stats": map[string]interface{}{
			"likes":       0,
			"reviewCount": 0,
		},
		"createdAt": firestore.ServerTimestamp,
		"draft":     true,
	})
	if err != nil {
		return "", errors.Internal("Failed to create place", err)
	}

	return ref.ID, nil
}

func (r *firestorePlaceRepository) Update(ctx context.Context, id string, fields entity.PlaceFields) error {
	updates := placeUpdates(fields)
	if len(updates) == 0 {
		return nil
	}

	_, err := r.client.Collection(placesCollection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Place", err)
		}
		return errors.Internal("Failed to update place", err)
	}

	return nil
}

func (r *firestorePlaceRepository) AdjustLikes(ctx context.Context, id string, delta int64) error {
	_, err := r.client.Collection(placesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "stats.likes", Value: firestore.Increment(delta)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Place", err)
		}
		return errors.Internal("Failed to update place likes", err)
	}

	return nil
}

func (r *firestorePlaceRepository) Keywords(ctx context.Context) ([][]string, error) {
	iter := r.client.Collection(placesCollection).Select("keywords").Documents(ctx)
	defer iter.Stop()

	var sets [][]string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate place keywords", err)
		}

		var data struct {
			Keywords []string `firestore:"keywords"`
		}
		if err := doc.DataTo(&data); err != nil {
			continue
		}
		if len(data.Keywords) > 0 {
			sets = append(sets, data.Keywords)
		}
	}

	return sets, nil
}

func (r *firestorePlaceRepository) ListDraftsBefore(ctx context.Context, cutoff time.Time) ([]*entity.Place, error) {
	iter := r.client.Collection(placesCollection).
		Where("draft", "==", true).
		Where("createdAt", "<", cutoff).
		Documents(ctx)
	defer iter.Stop()

	var places []*entity.Place
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate draft places", err)
		}

		place, err := placeFromDoc(doc)
		if err != nil {
			logger.Error("Failed to parse draft place %s: %v", doc.Ref.ID, err)
			continue
		}
		places = append(places, place)
	}

	return places, nil
}

func (r *firestorePlaceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(placesCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete place", err)
	}

	return nil
}

func placeFromDoc(doc *firestore.DocumentSnapshot) (*entity.Place, error) {
	var place entity.Place
	if err := doc.DataTo(&place); err != nil {
		return nil, err
	}
	place.ID = doc.Ref.ID
	return &place, nil
}
