package middleware

import (
	"github.com/labstack/echo/v4"

	"tripspot/internal/infrastructure/notify"
	"tripspot/pkg/response"
)

// Notices gives every request its own notice queue. Code below the handler
// reaches it through the request context; the response envelope drains it.
func Notices(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		q := notify.NewQueue()
		c.Set(response.NoticesKey, q)

		req := c.Request()
		c.SetRequest(req.WithContext(notify.WithNotifier(req.Context(), q)))
		return next(c)
	}
}
