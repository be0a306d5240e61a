package response

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"tripspot/internal/infrastructure/notify"
	apperrors "tripspot/pkg/errors"
	"tripspot/pkg/utils"
)

// NoticesKey is the echo context key holding the request's notice queue.
const NoticesKey = "notices"

type Response struct {
	Success   bool            `json:"success"`
	Data      interface{}     `json:"data,omitempty"`
	Error     *ErrorInfo      `json:"error,omitempty"`
	Notices   []notify.Notice `json:"notices,omitempty"`
	Timestamp string          `json:"timestamp"`
}

type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type PaginatedResponse struct {
	Items      interface{}      `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
	Pages      []utils.PageItem `json:"pages,omitempty"`
}

func Success(c echo.Context, data interface{}) error {
	return JSON(c, http.StatusOK, data)
}

func Created(c echo.Context, data interface{}) error {
	return JSON(c, http.StatusCreated, data)
}

// JSON writes a successful envelope with an explicit status.
func JSON(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Response{
		Success:   true,
		Data:      data,
		Notices:   drainNotices(c),
		Timestamp: now(),
	})
}

func Paginated(c echo.Context, items interface{}, total int64, page, pageSize, maxVisible int) error {
	totalPages := utils.TotalPages(int(total), pageSize)

	return JSON(c, http.StatusOK, PaginatedResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Pages:      utils.PageItems(page, totalPages, maxVisible),
	})
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return handleValidationError(c, validationErr)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, Response{
			Success:   false,
			Notices:   drainNotices(c),
			Timestamp: now(),
			Error: &ErrorInfo{
				Code:    appErr.Code,
				Message: appErr.Message,
				Details: appErr.Details,
			},
		})
	}

	return c.JSON(http.StatusInternalServerError, Response{
		Success:   false,
		Notices:   drainNotices(c),
		Timestamp: now(),
		Error: &ErrorInfo{
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
		},
	})
}

// FieldErrors translates validator failures into per-field messages.
func FieldErrors(validationErr validator.ValidationErrors) []apperrors.FieldError {
	fields := make([]apperrors.FieldError, 0, len(validationErr))
	for _, err := range validationErr {
		field := lowerFirst(err.Field())
		param := err.Param()

		var message string
		switch err.Tag() {
		case "required":
			message = field + " is required"
		case "min":
			message = field + " must be at least " + param
		case "max":
			message = field + " must be at most " + param
		case "oneof":
			message = field + " must be one of: " + param
		case "email":
			message = field + " must be a valid email address"
		default:
			message = field + " is invalid"
		}
		fields = append(fields, apperrors.FieldError{Field: field, Message: message})
	}
	return fields
}

func handleValidationError(c echo.Context, validationErr validator.ValidationErrors) error {
	return Error(c, apperrors.Validation(FieldErrors(validationErr)))
}

func drainNotices(c echo.Context) []notify.Notice {
	if q, ok := c.Get(NoticesKey).(*notify.Queue); ok && q != nil {
		return q.Drain()
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
