package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"tripspot/internal/infrastructure/ratelimit"
	"tripspot/pkg/errors"
	"tripspot/pkg/logger"
	"tripspot/pkg/response"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit throttles action per authenticated user, falling back to the client
// IP for anonymous callers.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := UID(c)
			if key == "" {
				key = "ip:" + c.RealIP()
			}

			allowed, retryAfter := m.limiter.Allow(key, action)
			if !allowed {
				logger.Warn("Rate limit hit for %s on %s (retry in %v)", key, action, retryAfter)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				return response.Error(c, errors.TooManyRequests("요청이 너무 많습니다. 잠시 후 다시 시도해주세요."))
			}
			return next(c)
		}
	}
}
