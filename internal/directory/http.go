// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/paneldir/paneldir/internal/model"
)

// DefaultTimeout bounds each directory request when the caller does not
// supply a shorter context deadline.
const DefaultTimeout = 15 * time.Second

// HTTPClient implements Client against the panel's REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// HTTPOption configures the HTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client, mainly for tests using
// httptest servers with custom transports.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPClient) { h.httpClient = c }
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(h *HTTPClient) { h.httpClient.Timeout = d }
}

// NewHTTPClient creates a directory client for the API at baseURL. The token
// is sent as a bearer credential on every request.
func NewHTTPClient(baseURL, token string, opts ...HTTPOption) *HTTPClient {
	h := &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// listResponse is the envelope the directory wraps account collections in.
type listResponse struct {
	Users []model.Account `json:"users"`
}

// errorResponse is the body the directory sends with non-2xx statuses.
type errorResponse struct {
	Detail string `json:"detail"`
}

// ListAccounts fetches the full account collection.
func (h *HTTPClient) ListAccounts(ctx context.Context) ([]model.Account, error) {
	body, err := h.do(ctx, http.MethodGet, "/api/users", nil, "list")
	if err != nil {
		return nil, err
	}
	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode account list: %w", err)
	}
	return resp.Users, nil
}

// CreateAccount submits the draft fields and returns the stored record.
func (h *HTTPClient) CreateAccount(ctx context.Context, req NewAccount) (model.Account, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return model.Account{}, fmt.Errorf("encode account request: %w", err)
	}
	body, err := h.do(ctx, http.MethodPost, "/api/users", payload, "create")
	if err != nil {
		return model.Account{}, err
	}
	var acc model.Account
	if err := json.Unmarshal(body, &acc); err != nil {
		return model.Account{}, fmt.Errorf("decode created account: %w", err)
	}
	return acc, nil
}

// DeleteAccount removes one account by id.
func (h *HTTPClient) DeleteAccount(ctx context.Context, id string) error {
	_, err := h.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil, "delete")
	return err
}

// do issues one request and returns the response body, mapping non-2xx
// statuses to *Error with the server's detail string when present.
func (h *HTTPClient) do(ctx context.Context, method, path string, payload []byte, op string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory %s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		derr := &Error{Status: resp.StatusCode, Op: op}
		var er errorResponse
		if json.Unmarshal(body, &er) == nil {
			derr.Detail = er.Detail
		}
		return nil, derr
	}
	return body, nil
}
