package handler

import (
	"context"
	"net/http"
	"strings"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"tripspot/internal/adapter/api/middleware"
	"tripspot/internal/domain/repository"
	ws "tripspot/internal/infrastructure/websocket"
	"tripspot/internal/search"
	"tripspot/internal/usecase"
	"tripspot/pkg/errors"
	"tripspot/pkg/logger"
	"tripspot/pkg/response"
)

type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	gateway        *usecase.PlaceGateway
	users          repository.UserRepository
	perPage        int
	maxVisible     int
	baseCtx        context.Context
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewWebSocketHandler ties sessions to baseCtx so they end on shutdown.
func NewWebSocketHandler(
	baseCtx context.Context,
	wsManager *ws.Manager,
	authMiddleware *middleware.AuthMiddleware,
	gateway *usecase.PlaceGateway,
	users repository.UserRepository,
	perPage, maxVisible int,
) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		gateway:        gateway,
		users:          users,
		perPage:        perPage,
		maxVisible:     maxVisible,
		baseCtx:        baseCtx,
	}
}

// HandleWebSocket upgrades GET /v1/ws?token=<id token>. Browsers cannot set
// headers on the upgrade request, so the token travels in the query.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		token = strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
	}

	identity, err := h.authMiddleware.IdentityFromToken(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed: %v", err)
		return errors.Internal("Failed to upgrade connection", err)
	}

	id, err := gonanoid.New()
	if err != nil {
		id = identity.UID
	}
	client := ws.NewClient(id, identity.UID, conn)

	session := newLiveSession(
		h.baseCtx,
		id,
		client,
		h.wsManager,
		search.NewController(h.gateway, h.perPage, h.maxVisible),
		usecase.NewWishlistSynchronizer(h.users, h.gateway, identity.UID),
	)

	if !h.wsManager.Add(client) {
		session.close()
		conn.Close()
		logger.Debug("Session %s refused, server is shutting down", id)
		return nil
	}

	go client.WritePump()
	go client.ReadPump(h.wsManager, session.handle)

	go func() {
		<-client.Done()
		session.close()
		session.log.Debug().Msg("Session closed")
	}()

	if err := session.start(); err != nil {
		session.log.Warn().Err(err).Msg("Could not load wishlist")
		session.pushError(msgWishlistUnavailable)
	}
	return nil
}
