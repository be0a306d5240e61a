package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"tripspot/internal/domain/entity"
	"tripspot/internal/usecase"
	"tripspot/pkg/errors"
	"tripspot/pkg/logger"
	"tripspot/pkg/response"
)

// Context keys set by the auth middleware.
const (
	UIDKey      = "uid"
	IdentityKey = "identity"
)

// UserEnsurer creates the user document on first sight.
type UserEnsurer interface {
	EnsureUser(ctx context.Context, identity *entity.Identity) error
}

type AuthMiddleware struct {
	verifier usecase.TokenVerifier
	users    UserEnsurer
}

func NewAuthMiddleware(verifier usecase.TokenVerifier, users UserEnsurer) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		users:    users,
	}
}

// Authenticate rejects requests without a valid bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get("Authorization"))
		if !ok {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		identity, err := m.verifier.VerifyToken(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		m.attach(c, identity)
		return next(c)
	}
}

// Optional attaches the caller's identity when a valid token is present and
// otherwise lets the request through anonymously.
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get("Authorization"))
		if !ok {
			return next(c)
		}

		identity, err := m.verifier.VerifyToken(c.Request().Context(), token)
		if err != nil {
			logger.Debug("Ignoring invalid token on %s: %v", c.Path(), err)
			return next(c)
		}

		m.attach(c, identity)
		return next(c)
	}
}

// IdentityFromToken verifies a token passed outside the Authorization
// header, as browsers cannot set headers on WebSocket upgrades.
func (m *AuthMiddleware) IdentityFromToken(ctx context.Context, token string) (*entity.Identity, error) {
	if token == "" {
		return nil, errors.Unauthorized("Token is required", nil)
	}
	identity, err := m.verifier.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}
	m.ensure(ctx, identity)
	return identity, nil
}

func (m *AuthMiddleware) attach(c echo.Context, identity *entity.Identity) {
	c.Set(UIDKey, identity.UID)
	c.Set(IdentityKey, identity)
	m.ensure(c.Request().Context(), identity)
}

func (m *AuthMiddleware) ensure(ctx context.Context, identity *entity.Identity) {
	if m.users == nil {
		return
	}
	if err := m.users.EnsureUser(ctx, identity); err != nil {
		logger.Warn("Failed to bootstrap user %s: %v", identity.UID, err)
	}
}

// UID returns the authenticated uid or "" for anonymous requests.
func UID(c echo.Context) string {
	uid, _ := c.Get(UIDKey).(string)
	return uid
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
