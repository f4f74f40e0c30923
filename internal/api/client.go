// Package api is the typed client for the Care360 backend. All endpoints
// share one envelope shape and bearer auth; the sub-clients (auth, doctor,
// patient) layer typed requests and responses on the shared do helper.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config carries everything a sub-client needs to talk to the backend.
type Config struct {
	BaseURL    string
	AuthToken  string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// NewConfig returns a Config with sane defaults for the given base URL, which
// should include the /api prefix.
func NewConfig(baseURL string) *Config {
	return &Config{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Logger:     zerolog.Nop(),
	}
}

// WithToken returns a copy of the config carrying the bearer token.
func (c *Config) WithToken(token string) *Config {
	cp := *c
	cp.AuthToken = token
	return &cp
}

// APIError is a non-success response from the backend, either a non-2xx
// status or a 2xx envelope with success=false.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("care360: status=%d", e.Status)
	}
	return fmt.Sprintf("care360: status=%d: %s", e.Status, e.Message)
}

// envelope is the common response wrapper. Payload fields live beside these
// and are decoded separately by each caller.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// do issues one request and decodes the response into res when non-nil.
// Non-2xx statuses and success=false envelopes become *APIError.
func (c *Config) do(ctx context.Context, method, path string, params url.Values, req, res interface{}) error {
	endpoint := c.BaseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var body io.Reader
	if req != nil {
		data, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if req != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.AuthToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.Logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("api request")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err == nil {
		if env.Success != nil && !*env.Success {
			return &APIError{Status: resp.StatusCode, Message: env.Message}
		}
	}

	if res != nil {
		if err := json.Unmarshal(data, res); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}
