package handler

import (
	"github.com/labstack/echo/v4"

	"tripspot/internal/adapter/api/middleware"
	"tripspot/internal/adapter/api/presenter"
	"tripspot/internal/domain/repository"
	"tripspot/internal/usecase"
	"tripspot/pkg/errors"
	"tripspot/pkg/response"
	"tripspot/pkg/utils"
)

type WishlistHandler struct {
	gateway    *usecase.PlaceGateway
	users      repository.UserRepository
	perPage    int
	maxVisible int
}

func NewWishlistHandler(gateway *usecase.PlaceGateway, users repository.UserRepository, perPage, maxVisible int) *WishlistHandler {
	return &WishlistHandler{
		gateway:    gateway,
		users:      users,
		perPage:    perPage,
		maxVisible: maxVisible,
	}
}

type toggleRequest struct {
	Liked *bool `json:"liked" validate:"required"`
}

func (h *WishlistHandler) synchronizer(c echo.Context) (*usecase.WishlistSynchronizer, error) {
	s := usecase.NewWishlistSynchronizer(h.users, h.gateway, middleware.UID(c))
	if err := s.Load(c.Request().Context()); err != nil {
		return nil, err
	}
	return s, nil
}

// GetWishlist lists the liked places, newest like last, one page at a time.
func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	s, err := h.synchronizer(c)
	if err != nil {
		return response.Error(c, err)
	}

	places := presenter.Cards(h.gateway.FetchPlacesByIDs(c.Request().Context(), s.IDs()), s.Liked)

	pagination := utils.GetPaginationParams(c, h.perPage)
	page := utils.ClampPage(pagination.Page, utils.TotalPages(len(places), pagination.PageSize))
	items := utils.Paginate(places, pagination.PageSize, page)
	return response.Paginated(c, items, int64(len(places)), page, pagination.PageSize, h.maxVisible)
}

func (h *WishlistHandler) GetWishlistIDs(c echo.Context) error {
	s, err := h.synchronizer(c)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"ids": s.IDs(),
	})
}

// Toggle sets the liked state of a place. Repeating the current state is a
// no-op and reports changed=false.
func (h *WishlistHandler) Toggle(c echo.Context) error {
	placeID := c.Param("placeId")
	if placeID == "" {
		return response.Error(c, errors.BadRequest("Place ID is required", nil))
	}

	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	s, err := h.synchronizer(c)
	if err != nil {
		return response.Error(c, err)
	}

	changed, err := s.Toggle(c.Request().Context(), placeID, *req.Liked)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"placeId": placeID,
		"liked":   s.Liked(placeID),
		"changed": changed,
	})
}
