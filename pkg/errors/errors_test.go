package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsNetwork(t *testing.T) {
	assert.True(t, IsNetwork(status.Error(codes.Unavailable, "backend down")))
	assert.True(t, IsNetwork(status.Error(codes.DeadlineExceeded, "slow")))
	assert.True(t, IsNetwork(fmt.Errorf("query: %w", context.DeadlineExceeded)))
	assert.True(t, IsNetwork(Unavailable("offline", nil)))

	assert.False(t, IsNetwork(nil))
	assert.False(t, IsNetwork(status.Error(codes.PermissionDenied, "rules")))
	assert.False(t, IsNetwork(BadRequest("bad", nil)))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(status.Error(codes.NotFound, "no such entity")))
	assert.True(t, IsNotFound(NotFound("Place", nil)))
	assert.False(t, IsNotFound(status.Error(codes.Internal, "boom")))
	assert.False(t, IsNotFound(nil))
}

func TestValidationCarriesFields(t *testing.T) {
	err := Validation([]FieldError{{Field: "name", Message: "name is required"}})

	assert.Equal(t, "VALIDATION_ERROR", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "name is required", err.Message)
	assert.Len(t, err.Details, 1)
}

func TestIsByCode(t *testing.T) {
	wrapped := fmt.Errorf("update: %w", Forbidden("nope", nil))
	assert.True(t, Is(wrapped, "FORBIDDEN"))
	assert.False(t, Is(wrapped, "CONFLICT"))
}
