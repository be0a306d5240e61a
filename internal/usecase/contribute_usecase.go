package usecase

import (
	"context"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"tripspot/internal/domain/entity"
	"tripspot/internal/domain/repository"
	"tripspot/internal/domain/service"
	"tripspot/internal/infrastructure/notify"
	"tripspot/pkg/errors"
	"tripspot/pkg/logger"
)

const (
	MaxImageSize = 5 * 1024 * 1024

	msgRequiredField      = "필수 입력입니다."
	msgSeasonRequired     = "최소 1개의 계절을 선택해주세요."
	msgKeywordRequired    = "최소 1개의 키워드를 입력해주세요."
	msgKeywordTooLong     = "키워드는 20자 이내로 입력해주세요."
	msgImageRequired      = "최소 1개의 이미지를 업로드해주세요."
	msgImageCountExceeded = "최대 5개의 이미지만 업로드할 수 있습니다."
	msgImageType          = "JPG, PNG, GIF, WEBP 이미지만 업로드할 수 있습니다."
	msgImageSize          = "이미지는 5MB 이하만 업로드할 수 있습니다."
	msgInvalidOption      = "올바른 값을 선택해주세요."
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ContributeInput carries the structural rules as validate tags. Enum values
// and image content are checked by the use case.
type ContributeInput struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description"`
	Region      string `form:"region" validate:"required"`
	District    string `form:"district"`
	// RegionType accepts the URL class (domestic/abroad) or the stored label.
	RegionType string        `form:"regionType" validate:"required"`
	Seasons    []string      `form:"seasons" validate:"min=1"`
	Budget     string        `form:"budget" validate:"required"`
	Keywords   []string      `form:"keywords" validate:"min=1,dive,max=20"`
	Images     []ImageUpload `form:"images" validate:"min=1,max=5"`
}

var contributeValidator = newContributeValidator()

func newContributeValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	})
	return v
}

type ContributeUseCase struct {
	gateway     *PlaceGateway
	places      repository.PlaceRepository
	files       repository.FileMetadataRepository
	uploader    service.FileUploadService
	suggestions *SuggestionUseCase
	orphanTTL   time.Duration
}

func NewContributeUseCase(
	gateway *PlaceGateway,
	places repository.PlaceRepository,
	files repository.FileMetadataRepository,
	uploader service.FileUploadService,
	suggestions *SuggestionUseCase,
	orphanTTL time.Duration,
) *ContributeUseCase {
	if orphanTTL <= 0 {
		orphanTTL = 24 * time.Hour
	}
	return &ContributeUseCase{
		gateway:     gateway,
		places:      places,
		files:       files,
		uploader:    uploader,
		suggestions: suggestions,
		orphanTTL:   orphanTTL,
	}
}

// Contribute creates a place in two phases: an empty draft first, so the
// images can live under its id, then the populated record.
func (uc *ContributeUseCase) Contribute(ctx context.Context, uid string, input ContributeInput) (string, error) {
	if uid == "" {
		return "", errors.Unauthorized("로그인 후 이용해주세요.", nil)
	}

	fields, fieldErrs := buildPlaceFields(input)
	if len(fieldErrs) > 0 {
		return "", errors.Validation(fieldErrs)
	}

	placeID, err := uc.gateway.CreateEmptyPlace(ctx)
	if err != nil {
		return "", err
	}

	urls, err := uc.uploadImages(ctx, placeID, input.Images)
	if err != nil {
		logger.Error("Image upload for place %s failed: %v", placeID, err)
		return "", errors.Internal("이미지 업로드에 실패했습니다.", err)
	}

	for i, img := range input.Images {
		metadata := &entity.FileMetadata{
			PlaceID:     placeID,
			URL:         urls[i],
			UploadedBy:  uid,
			Filename:    img.Filename,
			ContentType: img.ContentType,
			Size:        img.Size,
			CreatedAt:   time.Now(),
		}
		if err := uc.files.Create(ctx, metadata); err != nil {
			logger.Warn("Failed to record file metadata for %s: %v", urls[i], err)
		}
	}

	draft := false
	fields.ImageURLs = urls
	fields.CreatedBy = &uid
	fields.Draft = &draft
	if err := uc.gateway.UpdatePlace(ctx, placeID, fields); err != nil {
		return "", err
	}

	uc.suggestions.AddKeywords(fields.Keywords)
	notify.Success(ctx, "여행지 제안이 성공적으로 등록되었습니다! 🎉", "")
	logger.Info("Place %s contributed by %s", placeID, uid)
	return placeID, nil
}

// uploadImages uploads concurrently and keeps input order. On any failure the
// already uploaded objects are removed.
func (uc *ContributeUseCase) uploadImages(ctx context.Context, placeID string, images []ImageUpload) ([]string, error) {
	urls := make([]string, len(images))
	group, gctx := errgroup.WithContext(ctx)
	for i, img := range images {
		i, img := i, img
		group.Go(func() error {
			url, err := uc.uploader.UploadFile(gctx, img.Reader, normalizeContentType(img.ContentType), "places/"+placeID, true)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
		defer cancel()
		for _, url := range urls {
			if url == "" {
				continue
			}
			if derr := uc.uploader.DeleteFile(cctx, url); derr != nil {
				logger.Warn("Failed to remove uploaded file %s: %v", url, derr)
			}
		}
		return nil, err
	}
	return urls, nil
}

// CleanupOrphans deletes drafts older than the orphan TTL along with their
// uploaded files. It returns the number of places removed.
func (uc *ContributeUseCase) CleanupOrphans(ctx context.Context) (int, error) {
	drafts, err := uc.places.ListDraftsBefore(ctx, time.Now().Add(-uc.orphanTTL))
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, draft := range drafts {
		files, err := uc.files.ListByPlace(ctx, draft.ID)
		if err != nil {
			logger.Warn("Failed to list files of draft %s: %v", draft.ID, err)
			continue
		}
		for _, f := range files {
			if err := uc.uploader.DeleteFile(ctx, f.URL); err != nil {
				logger.Warn("Failed to delete %s: %v", f.URL, err)
				continue
			}
			if err := uc.files.Delete(ctx, f.ID); err != nil {
				logger.Warn("Failed to delete file metadata %s: %v", f.ID, err)
			}
		}
		if err := uc.places.Delete(ctx, draft.ID); err != nil {
			logger.Warn("Failed to delete draft %s: %v", draft.ID, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.Info("Removed %d abandoned place drafts", removed)
	}
	return removed, nil
}

func buildPlaceFields(input ContributeInput) (entity.PlaceFields, []errors.FieldError) {
	input.Name = strings.TrimSpace(input.Name)
	input.Region = strings.TrimSpace(input.Region)
	input.RegionType = strings.TrimSpace(input.RegionType)
	input.Budget = strings.TrimSpace(input.Budget)
	input.Seasons = normalizeTags(input.Seasons)
	input.Keywords = normalizeTags(input.Keywords)

	fieldErrs := structuralErrors(input)
	invalid := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		invalid[fe.Field] = true
	}
	add := func(field, msg string) {
		if !invalid[field] {
			invalid[field] = true
			fieldErrs = append(fieldErrs, errors.FieldError{Field: field, Message: msg})
		}
	}

	var regionLabel string
	if !invalid["regionType"] {
		if class, ok := ParseRegionInput(input.RegionType); ok {
			regionLabel = class.StoreLabel()
		} else {
			add("regionType", msgInvalidOption)
		}
	}

	seasons := make([]string, 0, len(input.Seasons))
	for _, s := range input.Seasons {
		season, ok := entity.ParseSeason(s)
		if !ok {
			add("seasons", msgInvalidOption)
			break
		}
		seasons = append(seasons, string(season))
	}

	budget, ok := entity.ParseBudgetTier(input.Budget)
	if !ok && !invalid["budget"] {
		add("budget", msgInvalidOption)
	}

	if !invalid["images"] {
		for _, img := range input.Images {
			if !allowedImageTypes[normalizeContentType(img.ContentType)] {
				add("images", msgImageType)
				break
			}
			if img.Size > MaxImageSize {
				add("images", msgImageSize)
				break
			}
		}
	}

	if len(fieldErrs) > 0 {
		return entity.PlaceFields{}, fieldErrs
	}

	description := strings.TrimSpace(input.Description)
	budgetLevel := string(budget)
	return entity.PlaceFields{
		Name:        &input.Name,
		Description: &description,
		Location:    &entity.Location{Region: input.Region, District: strings.TrimSpace(input.District)},
		RegionType:  &regionLabel,
		SeasonTags:  seasons,
		BudgetLevel: &budgetLevel,
		Keywords:    input.Keywords,
	}, nil
}

// structuralErrors runs the validate tags and reports one message per field.
func structuralErrors(input ContributeInput) []errors.FieldError {
	err := contributeValidator.Struct(input)
	if err == nil {
		return nil
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []errors.FieldError{{Field: "form", Message: err.Error()}}
	}

	var fieldErrs []errors.FieldError
	seen := make(map[string]bool, len(validationErrs))
	for _, fe := range validationErrs {
		// dive reports keywords[i]
		field, _, _ := strings.Cut(fe.Field(), "[")
		if seen[field] {
			continue
		}
		seen[field] = true
		fieldErrs = append(fieldErrs, errors.FieldError{Field: field, Message: structuralMessage(field, fe.Tag())})
	}
	return fieldErrs
}

func structuralMessage(field, tag string) string {
	switch {
	case field == "seasons":
		return msgSeasonRequired
	case field == "keywords" && tag == "max":
		return msgKeywordTooLong
	case field == "keywords":
		return msgKeywordRequired
	case field == "images" && tag == "max":
		return msgImageCountExceeded
	case field == "images":
		return msgImageRequired
	}
	return msgRequiredField
}

// ParseRegionInput accepts either domestic/abroad or 국내/해외.
func ParseRegionInput(s string) (entity.RegionClass, bool) {
	s = strings.TrimSpace(s)
	if class, ok := entity.ParseRegionClass(s); ok {
		return class, true
	}
	return entity.RegionClassFromLabel(s)
}

func normalizeContentType(ct string) string {
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
