package router

import (
	"github.com/labstack/echo/v4"

	"tripspot/internal/adapter/api/handler"
)

func SetupKeywordRouter(e *echo.Echo, suggestHandler *handler.SuggestHandler) {
	e.GET("/v1/keywords/suggest", suggestHandler.Suggest)
}
