// Package api is the typed client for the mall backend's REST surface.
// Request and response shapes are declared per endpoint; a response that
// does not decode is an error, never a zero value handed to a view.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/diyeddin/delivery-ui/internal/metrics"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const maxResponseBytes = 4 << 20 // 4MB

// APIError is a non-2xx answer from the backend, decoded from its error
// envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend returned %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource func() string

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	token   TokenSource
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, token TokenSource, logger *zap.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "mall-backend",
		Timeout: 30 * time.Second,
		// 4xx means the request was wrong, not that the backend is down;
		// only transport failures and 5xx count against the breaker.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *APIError
			return errors.As(err, &apiErr) && apiErr.StatusCode < 500
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("backend circuit state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: breaker,
		token:   token,
		logger:  logger,
	}
}

// doJSON performs one round trip with an optional JSON body and decodes the
// response into out when out is non-nil. route is the path template used
// for metric labels; path is the concrete URL path.
func (c *Client) doJSON(ctx context.Context, method, route, path string, query url.Values, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, route, err)
		}
	}
	return c.roundTrip(ctx, method, route, path, query, "application/json", body, out)
}

// doForm posts form-encoded values, the shape the auth endpoint expects.
func (c *Client) doForm(ctx context.Context, route, path string, form url.Values, out any) error {
	return c.roundTrip(ctx, http.MethodPost, route, path, nil,
		"application/x-www-form-urlencoded", []byte(form.Encode()), out)
}

func (c *Client) roundTrip(ctx context.Context, method, route, path string, query url.Values, contentType string, body []byte, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	start := time.Now()
	statusCode := 0

	data, err := c.breaker.Execute(func() ([]byte, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, reader)
		if err != nil {
			return nil, fmt.Errorf("build %s %s: %w", method, route, err)
		}
		if body != nil {
			req.Header.Set("Content-Type", contentType)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", uuid.NewString())
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, route, err)
		}
		defer resp.Body.Close()
		statusCode = resp.StatusCode

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, fmt.Errorf("%s %s: read response: %w", method, route, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, decodeAPIError(resp.StatusCode, raw)
		}
		return raw, nil
	})

	metrics.ObserveAPIRequest(method, route, statusCode, time.Since(start).Seconds())
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Fail closed on shape mismatch instead of propagating zero values.
		c.logger.Warn("backend response did not match expected shape",
			zap.String("route", route), zap.Error(err))
		return fmt.Errorf("%s %s: unexpected response shape: %w", method, route, err)
	}
	return nil
}

// errorEnvelope covers both envelope styles the backend emits.
type errorEnvelope struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Detail  string `json:"detail"`
}

func decodeAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Message: http.StatusText(statusCode)}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return apiErr
	}
	apiErr.Code = env.Code
	switch {
	case env.Error != "":
		apiErr.Message = env.Error
	case env.Detail != "":
		apiErr.Message = env.Detail
	}
	return apiErr
}
