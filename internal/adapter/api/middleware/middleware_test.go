package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripspot/internal/domain/entity"
	"tripspot/internal/infrastructure/notify"
	"tripspot/internal/infrastructure/ratelimit"
	"tripspot/pkg/response"
)

type fakeVerifier struct{}

func (fakeVerifier) VerifyToken(ctx context.Context, token string) (*entity.Identity, error) {
	if token != "good" {
		return nil, fmt.Errorf("bad token")
	}
	return &entity.Identity{UID: "u1", Provider: "password"}, nil
}

type recordingEnsurer struct {
	uids []string
}

func (r *recordingEnsurer) EnsureUser(ctx context.Context, identity *entity.Identity) error {
	r.uids = append(r.uids, identity.UID)
	return nil
}

func serve(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	err := mw(func(c echo.Context) error {
		seen = UID(c)
		return c.NoContent(http.StatusNoContent)
	})(c)
	require.NoError(t, err)
	return rec, seen
}

func TestAuthenticate(t *testing.T) {
	ensurer := &recordingEnsurer{}
	m := NewAuthMiddleware(fakeVerifier{}, ensurer)

	rec, uid := serve(t, m.Authenticate, "Bearer good")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u1", uid)
	assert.Equal(t, []string{"u1"}, ensurer.uids)

	rec, _ = serve(t, m.Authenticate, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(t, m.Authenticate, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(t, m.Authenticate, "Basic good")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptional(t *testing.T) {
	m := NewAuthMiddleware(fakeVerifier{}, nil)

	rec, uid := serve(t, m.Optional, "Bearer bad")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "", uid)

	_, uid = serve(t, m.Optional, "Bearer good")
	assert.Equal(t, "u1", uid)
}

func TestIdentityFromToken(t *testing.T) {
	m := NewAuthMiddleware(fakeVerifier{}, nil)
	_, err := m.IdentityFromToken(context.Background(), "")
	assert.Error(t, err)

	id, err := m.IdentityFromToken(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UID)
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewRateLimiter(0.001, 1)
	m := NewRateLimitMiddleware(limiter)

	rec, _ := serve(t, m.Limit(ratelimit.ActionToggle), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = serve(t, m.Limit(ratelimit.ActionToggle), "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestNoticesReachRequestContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Notices(func(c echo.Context) error {
		notify.Info(c.Request().Context(), "hello", "")
		return response.Success(c, nil)
	})(c)
	require.NoError(t, err)
	assert.Contains(t, rec.Body.String(), `"title":"hello"`)
}
