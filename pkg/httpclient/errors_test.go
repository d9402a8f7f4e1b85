package httpclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/BlogGo/pkg/errors"
)

func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"401 maps to auth expired", http.StatusUnauthorized, apperrors.ErrAuthExpired},
		{"403 maps to forbidden", http.StatusForbidden, apperrors.ErrForbidden},
		{"404 maps to not found", http.StatusNotFound, apperrors.ErrNotFound},
		{"400 maps to invalid input", http.StatusBadRequest, apperrors.ErrInvalidInput},
		{"409 maps to conflict", http.StatusConflict, apperrors.ErrConflict},
		{"500 maps to network", http.StatusInternalServerError, apperrors.ErrNetwork},
		{"503 maps to network", http.StatusServiceUnavailable, apperrors.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := fakeResponse(tt.status, `{"error":"boom"}`)

			err := ParseResponseError(resp, "get_blog")

			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestParseResponseError_PreservesEnvelopeMessage(t *testing.T) {
	resp := fakeResponse(http.StatusBadRequest, `{"error":"title too short"}`)

	err := ParseResponseError(resp, "create_blog")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "title too short")
	assert.Contains(t, appErr.Message, "create_blog")
}

func TestParseResponseError_NonJSONBody(t *testing.T) {
	resp := fakeResponse(http.StatusBadGateway, "upstream timed out")

	err := ParseResponseError(resp, "list_blogs")

	assert.ErrorIs(t, err, apperrors.ErrNetwork)
	assert.Contains(t, err.Error(), "upstream timed out")
}

func TestParseResponseError_UnmappedStatus(t *testing.T) {
	resp := fakeResponse(http.StatusTeapot, `{"error":"short and stout"}`)

	err := ParseResponseError(resp, "react")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "REMOTE_ERROR", appErr.Code)
	assert.Equal(t, http.StatusTeapot, appErr.Status)
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(400))
	assert.True(t, IsClientError(499))
	assert.False(t, IsClientError(399))
	assert.False(t, IsClientError(500))
}
