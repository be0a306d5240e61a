package router

import (
	"github.com/labstack/echo/v4"

	"tripspot/internal/adapter/api/handler"
	"tripspot/internal/adapter/api/middleware"
	"tripspot/internal/infrastructure/ratelimit"
)

func SetupWishlistRouter(e *echo.Echo, wishlistHandler *handler.WishlistHandler, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	// All wishlist endpoints require authentication
	wishlistGroup := e.Group("/v1/wishlist")
	wishlistGroup.Use(authMiddleware.Authenticate)

	wishlistGroup.GET("", wishlistHandler.GetWishlist)
	wishlistGroup.GET("/ids", wishlistHandler.GetWishlistIDs)
	wishlistGroup.PUT("/:placeId", wishlistHandler.Toggle, rateLimit.Limit(ratelimit.ActionToggle))
}
