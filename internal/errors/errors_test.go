package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is_MatchesByCode(t *testing.T) {
	err := NotFound("loan missing")
	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrConflict))
}

func TestError_Is_ThroughWrapping(t *testing.T) {
	inner := Unavailable("store down")
	wrapped := fmt.Errorf("scan failed: %w", inner)

	assert.True(t, Is(wrapped, ErrUnavailable))
}

func TestError_WithCause(t *testing.T) {
	cause := New("badger: closed")
	err := ErrInternal.WithCause(cause)

	assert.Contains(t, err.Error(), "badger: closed")
	assert.Equal(t, cause, Unwrap(err))
	assert.True(t, Is(err, ErrInternal))
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeValidation, http.StatusBadRequest},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), string(tt.code))
	}
}
