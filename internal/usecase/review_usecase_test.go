package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripspot/internal/infrastructure/notify"
	"tripspot/pkg/errors"
)

func TestAddReview(t *testing.T) {
	reviews := &fakeReviewRepo{}
	c := newMapCache()
	uc := NewReviewUseCase(reviews, newTestGateway(newFakePlaceRepo(newPlace("p1", "A")), c))

	q := notify.NewQueue()
	ctx := notify.WithNotifier(context.Background(), q)

	review, err := uc.AddReview(ctx, "u1", "p1", ReviewInput{
		Content: "  바다가 정말 아름다웠어요  ",
		Tags:    []string{"풍경이 좋아요", "풍경이 좋아요", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "바다가 정말 아름다웠어요", review.Content)
	assert.Equal(t, []string{"풍경이 좋아요"}, review.UserTags)
	assert.Equal(t, 1, c.invalidated)

	notices := q.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, "후기가 등록되었습니다", notices[0].Title)

	list, err := uc.ListByPlace(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAddReviewValidation(t *testing.T) {
	uc := NewReviewUseCase(&fakeReviewRepo{}, newTestGateway(newFakePlaceRepo(), nil))
	ctx := context.Background()

	_, err := uc.AddReview(ctx, "", "p1", ReviewInput{Content: strings.Repeat("좋", 20)})
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	_, err = uc.AddReview(ctx, "u1", "p1", ReviewInput{Content: "짧아요"})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	_, err = uc.AddReview(ctx, "u1", "p1", ReviewInput{Content: strings.Repeat("가", 1001)})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	_, err = uc.AddReview(ctx, "u1", "p1", ReviewInput{
		Content: strings.Repeat("가", 10),
		Tags:    []string{"a", "b", "c", "d", "e", "f"},
	})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}
