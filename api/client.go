package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	clienterrors "github.com/taskmind/go-task-client/internal/errors"
	"github.com/taskmind/go-task-client/tokenstore"
)

// AuthInvalidator is notified when the server rejects the session. The
// session manager registers itself so a 401 from any endpoint flips the
// session state, no matter which resource call triggered it.
type AuthInvalidator interface {
	Invalidate()
}

// Client is the request pipeline: it builds requests against the backend,
// attaches the bearer token, classifies responses into typed failures and
// purges the token on authentication rejection. Construct one Client at
// application start and share it by reference.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	store       *tokenstore.Store
	logger      zerolog.Logger
	invalidator AuthInvalidator
}

// New creates a Client. baseURL must not end with a slash; httpClient may be
// nil, in which case http.DefaultClient is used.
func New(baseURL string, store *tokenstore.Store, logger zerolog.Logger, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		store:      store,
		logger:     logger,
	}
}

// SetAuthInvalidator registers the observer for authentication rejections.
func (c *Client) SetAuthInvalidator(inv AuthInvalidator) {
	c.invalidator = inv
}

// Do sends method+path to the backend. A non-nil body is JSON-encoded; a
// non-nil out receives the decoded 2xx response (pass a *string for raw
// text endpoints). Failures come back as ErrUnauthorized, *ValidationError,
// *StatusError or a wrapped ErrNetwork; every failure path logs the
// endpoint before returning.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	requestID := uuid.NewString()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.logger.Error().Str("endpoint", path).Str("request_id", requestID).Err(err).Msg("marshal request body failed")
			return clienterrors.Wrapf(err, "api: marshal request body for %s", path)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		c.logger.Error().Str("endpoint", path).Str("request_id", requestID).Err(err).Msg("build request failed")
		return clienterrors.Wrapf(err, "api: build request for %s", path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.store.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Str("endpoint", path).Str("request_id", requestID).Err(err).Msg("request failed")
		return fmt.Errorf("%w: %s %s: %v", clienterrors.ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	return c.classify(resp, method, path, requestID, out)
}

// classify turns the response into a result or a typed failure.
func (c *Client) classify(resp *http.Response, method, path, requestID string, out any) error {
	// A 401 from any endpoint invalidates the session immediately, even
	// mid unrelated operation.
	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.store.Clear()
		if c.invalidator != nil {
			c.invalidator.Invalidate()
		}
		c.logger.Warn().Str("endpoint", path).Str("request_id", requestID).Msg("session rejected, token purged")
		return clienterrors.ErrUnauthorized
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error().Str("endpoint", path).Str("request_id", requestID).Err(err).Msg("read response failed")
		return fmt.Errorf("%w: %s %s: %v", clienterrors.ErrNetwork, method, path, err)
	}
	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if resp.StatusCode == http.StatusNoContent || out == nil {
			return nil
		}
		if !isJSON {
			if text, ok := out.(*string); ok {
				*text = string(raw)
			}
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			c.logger.Error().Str("endpoint", path).Str("request_id", requestID).Err(err).Msg("decode response failed")
			return clienterrors.Wrapf(err, "api: decode response from %s", path)
		}
		return nil
	}

	failure := c.failureFrom(resp.StatusCode, raw, isJSON)
	c.logger.Warn().
		Str("endpoint", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Str("error", failure.Error()).
		Msg("request rejected")
	return failure
}

// errorPayload is the JSON error envelope used by the backend. detail is
// either a plain string or, for validation failures, a list of field errors.
type errorPayload struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldError struct {
	Msg string `json:"msg"`
}

func (c *Client) failureFrom(status int, raw []byte, isJSON bool) error {
	detail := ""
	if isJSON {
		var payload errorPayload
		if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != nil {
			var fields []fieldError
			if status == http.StatusUnprocessableEntity && json.Unmarshal(payload.Detail, &fields) == nil {
				messages := make([]string, 0, len(fields))
				for _, f := range fields {
					messages = append(messages, f.Msg)
				}
				return &ValidationError{Messages: messages}
			}
			_ = json.Unmarshal(payload.Detail, &detail)
		}
	} else {
		detail = strings.TrimSpace(string(raw))
	}
	return &StatusError{StatusCode: status, Detail: detail}
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}
