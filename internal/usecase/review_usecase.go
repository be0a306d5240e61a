package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"tripspot/internal/domain/entity"
	"tripspot/internal/domain/repository"
	"tripspot/internal/infrastructure/notify"
	"tripspot/pkg/errors"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	gateway    *PlaceGateway
}

func NewReviewUseCase(reviewRepo repository.ReviewRepository, gateway *PlaceGateway) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		gateway:    gateway,
	}
}

type ReviewInput struct {
	Content string
	Tags    []string
}

func (uc *ReviewUseCase) ListByPlace(ctx context.Context, placeID string) ([]*entity.Review, error) {
	if placeID == "" {
		return nil, errors.BadRequest("placeId is required", nil)
	}
	return uc.reviewRepo.ListByPlace(ctx, placeID)
}

// AddReview validates and stores a review. The review and the place's review
// count are written in one transaction.
func (uc *ReviewUseCase) AddReview(ctx context.Context, uid, placeID string, input ReviewInput) (*entity.Review, error) {
	if uid == "" {
		return nil, errors.Unauthorized("로그인 후 이용해주세요.", nil)
	}

	content := strings.TrimSpace(input.Content)
	tags := normalizeTags(input.Tags)
	if fields := validateReview(content, tags); len(fields) > 0 {
		return nil, errors.Validation(fields)
	}

	review := &entity.Review{
		PlaceID:  placeID,
		Content:  content,
		UserTags: tags,
		UserID:   uid,
	}
	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	uc.gateway.Invalidate(ctx)
	notify.Success(ctx, "후기가 등록되었습니다", "소중한 후기를 남겨주셔서 감사합니다!")
	return review, nil
}

func validateReview(content string, tags []string) []errors.FieldError {
	var fields []errors.FieldError

	length := utf8.RuneCountInString(content)
	switch {
	case length < entity.ReviewMinLength:
		fields = append(fields, errors.FieldError{Field: "content", Message: "후기는 최소 10자 이상 작성해주세요."})
	case length > entity.ReviewMaxLength:
		fields = append(fields, errors.FieldError{Field: "content", Message: "후기는 최대 1000자까지 작성할 수 있습니다."})
	}

	if len(tags) > entity.ReviewMaxTags {
		fields = append(fields, errors.FieldError{Field: "tags", Message: "태그는 최대 5개까지 선택할 수 있습니다."})
	}

	return fields
}

// normalizeTags trims, drops empties and removes duplicates, keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
