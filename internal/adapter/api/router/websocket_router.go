package router

import (
	"github.com/labstack/echo/v4"

	"tripspot/internal/adapter/api/handler"
)

// SetupWebSocketRouter mounts the live session. Authentication happens in
// the handler because the token arrives as a query parameter.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/v1/ws", wsHandler.HandleWebSocket)
}
