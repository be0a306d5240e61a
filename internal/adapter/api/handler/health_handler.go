package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tripspot/internal/domain/service"
	ws "tripspot/internal/infrastructure/websocket"
)

type HealthHandler struct {
	sessions *ws.Manager
	index    service.KeywordIndex
}

// NewHealthHandler accepts a nil index when suggestions use the scan backend.
func NewHealthHandler(sessions *ws.Manager, index service.KeywordIndex) *HealthHandler {
	return &HealthHandler{
		sessions: sessions,
		index:    index,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	body := map[string]interface{}{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	}
	if h.sessions != nil {
		body["liveSessions"] = h.sessions.Count()
	}
	if h.index != nil {
		if n, err := h.index.Count(); err == nil {
			body["indexedKeywords"] = n
		}
	}
	return c.JSON(http.StatusOK, body)
}
