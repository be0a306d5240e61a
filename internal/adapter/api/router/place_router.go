package router

import (
	"github.com/labstack/echo/v4"

	"tripspot/internal/adapter/api/handler"
	"tripspot/internal/adapter/api/middleware"
	"tripspot/internal/infrastructure/ratelimit"
)

func SetupPlaceRouter(
	e *echo.Echo,
	placeHandler *handler.PlaceHandler,
	contributeHandler *handler.ContributeHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
) {
	// A valid token on public reads adds liked flags
	e.GET("/v1/places", placeHandler.ListPlaces, authMiddleware.Optional)
	e.GET("/v1/places/:id", placeHandler.GetPlace, authMiddleware.Optional)

	e.POST("/v1/places", contributeHandler.Contribute,
		authMiddleware.Authenticate,
		rateLimit.Limit(ratelimit.ActionContribute),
	)
}
