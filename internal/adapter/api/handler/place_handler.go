package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"tripspot/internal/adapter/api/middleware"
	"tripspot/internal/adapter/api/presenter"
	"tripspot/internal/domain/repository"
	"tripspot/internal/search"
	"tripspot/internal/usecase"
	"tripspot/pkg/logger"
	"tripspot/pkg/response"
)

const searchPath = "/search"

type PlaceHandler struct {
	gateway     *usecase.PlaceGateway
	users       repository.UserRepository
	placeholder string
	perPage     int
	maxVisible  int
}

func NewPlaceHandler(gateway *usecase.PlaceGateway, users repository.UserRepository, placeholder string, perPage, maxVisible int) *PlaceHandler {
	return &PlaceHandler{
		gateway:     gateway,
		users:       users,
		placeholder: placeholder,
		perPage:     perPage,
		maxVisible:  maxVisible,
	}
}

// ListPlaces runs the search for the request's query string and renders the
// requested page.
func (h *PlaceHandler) ListPlaces(c echo.Context) error {
	ctx := c.Request().Context()

	controller := search.NewController(h.gateway, h.perPage, h.maxVisible)
	defer controller.Close()

	snap, err := controller.Sync(ctx, c.QueryParams())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, presenter.NewListing(snap, searchPath, h.likedFor(ctx, middleware.UID(c))))
}

// GetPlace renders the place page. A missing place is a not-found view, not
// an error envelope.
func (h *PlaceHandler) GetPlace(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	lookup := h.gateway.FetchPlaceByID(ctx, id)
	view := presenter.NewDetail(id, lookup, h.placeholder, h.likedFor(ctx, middleware.UID(c)))
	return response.JSON(c, view.Status, view)
}

// likedFor loads uid's wishlist once for the request. Anonymous callers and
// failed loads like nothing.
func (h *PlaceHandler) likedFor(ctx context.Context, uid string) func(string) bool {
	if uid == "" {
		return nil
	}
	sync := usecase.NewWishlistSynchronizer(h.users, h.gateway, uid)
	if err := sync.Load(ctx); err != nil {
		logger.Warn("Failed to load wishlist of %s: %v", uid, err)
		return nil
	}
	return sync.Liked
}
