package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/BlogGo/pkg/errors"
	"github.com/utafrali/BlogGo/pkg/validator"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var res Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteJSON(rec, http.StatusCreated, Response{Data: map[string]string{"id": "b1"}})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	res := decodeResponse(t, rec)
	assert.NotNil(t, res.Data)
	assert.Nil(t, res.Error)
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ai/generate", nil)

	WriteError(rec, req, apperrors.NotFound("blog"), discardLogger())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	res := decodeResponse(t, rec)
	require.NotNil(t, res.Error)
	assert.Equal(t, "NOT_FOUND", res.Error.Code)
}

func TestWriteError_SentinelMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"network", apperrors.ErrNetwork, http.StatusBadGateway, "NETWORK_FAILURE"},
		{"auth expired", apperrors.ErrAuthExpired, http.StatusUnauthorized, "AUTH_EXPIRED"},
		{"invalid input", apperrors.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/session", nil)

			WriteError(rec, req, tt.err, discardLogger())

			assert.Equal(t, tt.wantStatus, rec.Code)
			res := decodeResponse(t, rec)
			require.NotNil(t, res.Error)
			assert.Equal(t, tt.wantCode, res.Error.Code)
		})
	}
}

func TestWriteValidationError_FieldMessages(t *testing.T) {
	type form struct {
		Topic string `json:"topic" validate:"required"`
	}
	err := validator.Validate(form{})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	WriteValidationError(rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	res := decodeResponse(t, rec)
	require.NotNil(t, res.Error)
	assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
	assert.Contains(t, res.Error.Fields, "Topic")
}

func TestWriteValidationError_PlainError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteValidationError(rec, errors.New("malformed JSON"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	res := decodeResponse(t, rec)
	require.NotNil(t, res.Error)
	assert.Equal(t, "INVALID_INPUT", res.Error.Code)
}
