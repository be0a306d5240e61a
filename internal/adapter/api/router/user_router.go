package router

import (
	"github.com/labstack/echo/v4"

	"tripspot/internal/adapter/api/handler"
	"tripspot/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware) {
	users := e.Group("/v1/me")
	users.Use(authMiddleware.Authenticate)
	users.GET("", userHandler.GetMe)
}
