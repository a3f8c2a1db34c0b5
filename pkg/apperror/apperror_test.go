package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		errType ErrorType
		status  int
	}{
		{ConflictError, http.StatusConflict},
		{UnauthorizedError, http.StatusUnauthorized},
		{ForbiddenError, http.StatusForbidden},
		{NotFoundError, http.StatusNotFound},
		{BadRequestError, http.StatusBadRequest},
		{InternalError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		appErr := New(tc.errType, "message", nil)
		assert.Equal(t, tc.status, appErr.StatusCode())
	}
}

func TestFromErrorThroughWrapping(t *testing.T) {
	original := NewNotFoundError("User not found", nil)
	wrapped := fmt.Errorf("handling request: %w", original)

	appErr, ok := FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, NotFoundError, appErr.Type)
	assert.Equal(t, "User not found", appErr.Message)
}

func TestFromErrorPlainError(t *testing.T) {
	_, ok := FromError(errors.New("plain"))
	assert.False(t, ok)
}

func TestUnwrap(t *testing.T) {
	underlying := errors.New("connection refused")
	appErr := NewInternalError("Failed to query", underlying)

	assert.ErrorIs(t, appErr, underlying)
	assert.Contains(t, appErr.Error(), "Failed to query")
	assert.Contains(t, appErr.Error(), "connection refused")
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsConflict(NewConflictError("dup", nil)))
	assert.True(t, IsUnauthorized(NewUnauthorizedError("nope", nil)))
	assert.True(t, IsForbidden(NewForbiddenError("nope", nil)))
	assert.True(t, IsNotFound(NewNotFoundError("gone", nil)))
	assert.True(t, IsBadRequest(NewBadRequestError("bad", nil)))
	assert.False(t, IsConflict(NewNotFoundError("gone", nil)))
	assert.False(t, IsNotFound(errors.New("plain")))
}
