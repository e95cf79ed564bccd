// Package client submits inquiries to the inquiry API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mangaart/internal/domain"
	apperrors "mangaart/pkg/errors"
)

const inquiriesPath = "/api/v1/inquiries"

// Client talks to a running inquiry API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the API at baseURL, e.g. "http://localhost:8000"
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type errorResponse struct {
	Code    apperrors.ErrorCode    `json:"code"`
	Message string                 `json:"message"`
	Fields  []apperrors.FieldError `json:"fields"`
}

// Submit posts one candidate. Rejections come back as *apperrors.AppError
// with the server's code and field errors, so callers can treat this client
// and the in-process service the same way.
func (c *Client) Submit(ctx context.Context, candidate domain.Candidate) (*domain.Inquiry, error) {
	payload, err := json.Marshal(map[string]string{
		"name":    candidate.Name,
		"email":   candidate.Email,
		"phone":   candidate.Phone,
		"country": candidate.Country,
		"message": candidate.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inquiry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+inquiriesPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "inquiry API unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		var inquiry domain.Inquiry
		if err := json.NewDecoder(resp.Body).Decode(&inquiry); err != nil {
			return nil, fmt.Errorf("failed to decode inquiry: %w", err)
		}
		return &inquiry, nil
	}

	return nil, decodeError(resp)
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var body errorResponse
	if err := json.Unmarshal(raw, &body); err != nil || body.Code == "" {
		code := apperrors.ErrCodeInternalError
		if resp.StatusCode == http.StatusServiceUnavailable {
			code = apperrors.ErrCodeStorageUnavailable
		}
		return apperrors.New(code, fmt.Sprintf("unexpected response (status %d): %s",
			resp.StatusCode, bytes.TrimSpace(raw)))
	}

	return &apperrors.AppError{
		Code:    body.Code,
		Message: body.Message,
		Fields:  body.Fields,
	}
}
