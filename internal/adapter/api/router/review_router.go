package router

import (
	"github.com/labstack/echo/v4"

	"tripspot/internal/adapter/api/handler"
	"tripspot/internal/adapter/api/middleware"
	"tripspot/internal/infrastructure/ratelimit"
)

func SetupReviewRouter(e *echo.Echo, reviewHandler *handler.ReviewHandler, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	e.GET("/v1/reviews/tags", reviewHandler.GetTags)
	e.GET("/v1/places/:id/reviews", reviewHandler.GetReviews)

	e.POST("/v1/places/:id/reviews", reviewHandler.CreateReview,
		authMiddleware.Authenticate,
		rateLimit.Limit(ratelimit.ActionReview),
	)
}
