package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/utafrali/BlogGo/pkg/errors"
)

// RemoteErrorResponse mirrors the error body returned by the blog platform
// API: a flat {"error": "..."} envelope.
type RemoteErrorResponse struct {
	Error string `json:"error"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an appropriate AppError. If the body matches the platform's error
// envelope the message is preserved; otherwise the raw body is used.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, operation string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return apperrors.Network(fmt.Sprintf("%s returned status %d (failed to read body)", operation, resp.StatusCode), err)
	}

	message := string(bodyBytes)
	var remote RemoteErrorResponse
	if json.Unmarshal(bodyBytes, &remote) == nil && remote.Error != "" {
		message = remote.Error
	}

	return mapRemoteError(resp.StatusCode, message, operation)
}

// mapRemoteError translates a remote status code into an AppError that
// preserves the error semantics. 401 maps to the AuthExpired class so the
// session layer can react with a destructive clear.
func mapRemoteError(status int, message, operation string) error {
	qualifiedMsg := fmt.Sprintf("%s: %s", operation, message)

	switch {
	case status == http.StatusUnauthorized:
		return apperrors.AuthExpired(qualifiedMsg)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(qualifiedMsg)
	case status == http.StatusNotFound:
		return apperrors.NotFound(operation)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualifiedMsg)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualifiedMsg)
	case status >= 500:
		return apperrors.Network(qualifiedMsg, nil)
	default:
		return &apperrors.AppError{
			Code:    "REMOTE_ERROR",
			Message: qualifiedMsg,
			Status:  status,
		}
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
