package handler

import (
	"github.com/labstack/echo/v4"

	"tripspot/internal/adapter/api/middleware"
	"tripspot/internal/domain/entity"
	"tripspot/internal/usecase"
	"tripspot/pkg/errors"
	"tripspot/pkg/response"
	"tripspot/pkg/utils"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
	maxVisible    int
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase, maxVisible int) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
		maxVisible:    maxVisible,
	}
}

type createReviewRequest struct {
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags,omitempty"`
}

// GetTags lists the suggested review tags. Custom tags are still accepted on write.
func (h *ReviewHandler) GetTags(c echo.Context) error {
	return response.Success(c, entity.ReviewTags)
}

func (h *ReviewHandler) GetReviews(c echo.Context) error {
	placeID := c.Param("id")
	if placeID == "" {
		return response.Error(c, errors.BadRequest("Place ID is required", nil))
	}

	reviews, err := h.reviewUseCase.ListByPlace(c.Request().Context(), placeID)
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c, 20)
	items := utils.Paginate(reviews, pagination.PageSize, pagination.Page)
	return response.Paginated(c, items, int64(len(reviews)), pagination.Page, pagination.PageSize, h.maxVisible)
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	placeID := c.Param("id")
	if placeID == "" {
		return response.Error(c, errors.BadRequest("Place ID is required", nil))
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.AddReview(c.Request().Context(), middleware.UID(c), placeID, usecase.ReviewInput{
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}
