// Package client is the REST transport for the project/wiki service. It
// exposes one typed service per entity collection, decodes the backend's
// response envelopes into canonical shapes at the boundary, and classifies
// failures into the small taxonomy the resource layer needs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// maxResponseBody caps how much of a response body is read.
const maxResponseBody = 8 << 20

// Config configures the API client.
type Config struct {
	// BaseURL is the service root, e.g. "https://deskd.example.com".
	BaseURL string
	// Token is the initial bearer token. Optional.
	Token string
	// Refresh exchanges an expiring token for a fresh one. Optional.
	Refresh RefreshFunc
	// Timeout is the per-request timeout. Defaults to 15s.
	Timeout time.Duration
	// RequestsPerSecond rate-limits outgoing requests. 0 disables limiting.
	RequestsPerSecond float64
	// Logger receives request-level debug logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is the HTTP client for the service API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	tokens  *TokenSource
	logger  *slog.Logger

	Organizations *OrganizationsService
	Projects      *ProjectsService
	Issues        *IssuesService
	Spaces        *SpacesService
	Pages         *PagesService
	Members       *MembersService
	Comments      *CommentsService
}

// New creates a Client from the given config.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), int(cfg.RequestsPerSecond)+1)
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter: limiter,
		tokens:  NewTokenSource(cfg.Token, cfg.Refresh),
		logger:  cfg.Logger,
	}
	c.Organizations = &OrganizationsService{c: c}
	c.Projects = &ProjectsService{c: c}
	c.Issues = &IssuesService{c: c}
	c.Spaces = &SpacesService{c: c}
	c.Pages = &PagesService{c: c}
	c.Members = &MembersService{c: c}
	c.Comments = &CommentsService{c: c}
	return c
}

// do executes one request and returns the raw response body. All failures,
// transport-level included, come back as *APIError so callers can classify
// them uniformly.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &APIError{Status: 0, Message: "rate limiter: " + err.Error(), cause: err}
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return nil, &APIError{Status: 0, Message: err.Error(), cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, &APIError{Status: 0, Message: "read response: " + err.Error(), cause: err}
	}

	c.logger.Debug("request completed",
		"method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 400 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}

// errorMessage extracts the error string from a failure envelope, falling
// back to the raw body.
func errorMessage(body []byte) string {
	var env struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
		return env.Error
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "no error detail"
	}
	return msg
}

// getList fetches and decodes a collection endpoint.
func getList[T any](ctx context.Context, c *Client, path string, q Query) (List[T], error) {
	data, err := c.do(ctx, http.MethodGet, path, q.Values(), nil)
	if err != nil {
		return List[T]{}, err
	}
	return decodeList[T](data)
}

// getOne fetches and decodes a single-entity endpoint.
func getOne[T any](ctx context.Context, c *Client, path string) (T, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](data)
}

// create POSTs a body and decodes the created entity.
func create[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	data, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](data)
}

// update PUTs a body and decodes the updated entity.
func update[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	data, err := c.do(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](data)
}

// remove DELETEs an entity.
func remove(ctx context.Context, c *Client, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}
