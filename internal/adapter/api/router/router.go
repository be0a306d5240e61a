package router

import (
	"github.com/labstack/echo/v4"

	"tripspot/internal/adapter/api/handler"
	"tripspot/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, h *handler.Handlers, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	SetupHealthRouter(e, h.Health)
	SetupPlaceRouter(e, h.Place, h.Contribute, authMiddleware, rateLimit)
	SetupReviewRouter(e, h.Review, authMiddleware, rateLimit)
	SetupKeywordRouter(e, h.Suggest)
	SetupWishlistRouter(e, h.Wishlist, authMiddleware, rateLimit)
	SetupUserRouter(e, h.User, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket)
}
