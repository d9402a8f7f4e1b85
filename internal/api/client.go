package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/utafrali/BlogGo/pkg/errors"
	"github.com/utafrali/BlogGo/pkg/httpclient"
)

// TokenSource supplies the current access token for authenticated calls.
// The session store is the only implementation; the API client never
// touches credential storage itself.
type TokenSource interface {
	AccessToken() string
}

var apiRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "blog_api_requests_total",
		Help: "Total number of requests issued to the blog platform API",
	},
	[]string{"operation", "status"},
)

// Client is the HTTP client for the remote blog platform API. All methods
// are thin pass-throughs: they build the request, attach credentials, and
// decode the response into domain types.
type Client struct {
	baseURL        string
	http           *httpclient.CircuitBreakerClient
	tokens         TokenSource
	onUnauthorized func()
	logger         *slog.Logger
}

// New creates an API client for the given base URL.
func New(baseURL string, hc *httpclient.CircuitBreakerClient, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    hc,
		logger:  logger,
	}
}

// SetTokenSource wires the session store in as the credential supplier.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// OnUnauthorized registers the hook invoked when an authenticated call
// reports an invalid or expired credential. The session store registers its
// destructive clear here.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping checks reachability of the remote API. Used by the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.Get(ctx, c.baseURL+"/blogs/popular?limit=1")
	if err != nil {
		return apperrors.Network("blog API unreachable", err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) currentToken() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.AccessToken()
}

// do executes one API call and decodes a 2xx JSON body into out (when out
// is non-nil). Non-2xx responses are mapped onto the error taxonomy; a 401
// additionally fires the on-unauthorized hook.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body, out any, token string) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		apiRequestsTotal.WithLabelValues(operation, "error").Inc()
		return apperrors.Network(operation+" failed", err)
	}
	apiRequestsTotal.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := httpclient.ParseResponseError(resp, operation)
		if errors.Is(err, apperrors.ErrAuthExpired) && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return err
	}

	defer func() { _ = resp.Body.Close() }()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Network(operation+": decode response", err)
	}
	return nil
}

// upload executes a multipart POST carrying one file field and decodes the
// 2xx JSON body into out. Error mapping matches do.
func (c *Client) upload(ctx context.Context, operation, path, field, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", operation, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("encode %s request: %w", operation, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("encode %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		apiRequestsTotal.WithLabelValues(operation, "error").Inc()
		return apperrors.Network(operation+" failed", err)
	}
	apiRequestsTotal.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := httpclient.ParseResponseError(resp, operation)
		if errors.Is(err, apperrors.ErrAuthExpired) && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return err
	}

	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Network(operation+": decode response", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, operation, path string, query url.Values, out any) error {
	return c.do(ctx, operation, http.MethodGet, path, query, nil, out, c.currentToken())
}

func (c *Client) post(ctx context.Context, operation, path string, body, out any) error {
	return c.do(ctx, operation, http.MethodPost, path, nil, body, out, c.currentToken())
}

func (c *Client) put(ctx context.Context, operation, path string, body, out any) error {
	return c.do(ctx, operation, http.MethodPut, path, nil, body, out, c.currentToken())
}

func (c *Client) delete(ctx context.Context, operation, path string) error {
	return c.do(ctx, operation, http.MethodDelete, path, nil, nil, nil, c.currentToken())
}
