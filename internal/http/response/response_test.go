package response

import (
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/literahq/litera-server/internal/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var result Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func TestJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]string{"title": "Dune"}, discardLogger())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	result := decodeEnvelope(t, w)
	assert.True(t, result.Success)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Error)
}

func TestJSON_NilLogger(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]string{"k": "v"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeEnvelope(t, w).Success)
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()

	Created(w, map[string]string{"id": "book-1"}, discardLogger())

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeEnvelope(t, w).Success)
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()

	NoContent(w)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestError_Generic(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusInternalServerError, "something went wrong", discardLogger())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	result := decodeEnvelope(t, w)
	assert.False(t, result.Success)
	assert.Nil(t, result.Data)
	assert.Equal(t, "something went wrong", result.Error)
}

func TestStatusCodeBoundary(t *testing.T) {
	for _, tt := range []struct {
		status      int
		wantSuccess bool
	}{
		{200, true},
		{201, true},
		{399, true},
		{400, false},
		{404, false},
		{500, false},
	} {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.status, nil, discardLogger())
			assert.Equal(t, tt.wantSuccess, decodeEnvelope(t, w).Success)
		})
	}
}

func TestHandleError_CodedError(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, apperrors.NotFound("book not found"), discardLogger())

	assert.Equal(t, http.StatusNotFound, w.Code)
	result := decodeEnvelope(t, w)
	assert.False(t, result.Success)
	assert.Equal(t, "book not found", result.Error)
	assert.Equal(t, "NOT_FOUND", result.Code)
}

func TestHandleError_WrappedCodedError(t *testing.T) {
	w := httptest.NewRecorder()

	err := fmt.Errorf("lookup: %w", apperrors.ErrInvalidCredentials)
	HandleError(w, err, discardLogger())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleError_UnknownErrorIs500(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, fmt.Errorf("disk on fire"), discardLogger())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeEnvelope(t, w).Error)
}

func TestEnvelope_OmitEmpty(t *testing.T) {
	data, err := json.Marshal(Envelope{Success: true, Data: "x"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"success":true`)
	assert.NotContains(t, string(data), `"error":`)

	data, err = json.Marshal(Envelope{Success: false, Error: "failed"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"error":"failed"`)
	assert.NotContains(t, string(data), `"data":`)
}
