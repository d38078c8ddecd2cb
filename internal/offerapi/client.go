// Package offerapi submits job offers to the remote offers API.
//
// The client never retries; failed submissions are handed to the offline
// queue by the caller.
package offerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"jobmate/posting-service/internal/offer"
)

const (
	createPath      = "/offers/create"
	submitTimeout   = 10 * time.Second
	recruiterHeader = "X-Recruiter-ID"
)

// Client posts offers to <BaseURL>/offers/create.
type Client struct {
	BaseURL     string
	RecruiterID string
	// Timeout bounds a single Submit call; zero means 10s.
	Timeout time.Duration
	client  *http.Client
}

// New constructs a Client with a shared HTTP client.
func New(baseURL, recruiterID string) *Client {
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		RecruiterID: recruiterID,
		Timeout:     submitTimeout,
		client:      &http.Client{},
	}
}

// Submit posts p and returns the decoded JSON response body.
// Every failure is an *Error.
func (c *Client) Submit(ctx context.Context, p offer.Payload) (json.RawMessage, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = submitTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(p)
	if err != nil {
		return nil, &Error{Kind: KindInvalidRequest, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+createPath, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindInvalidRequest, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(recruiterHeader, c.RecruiterID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Kind: kindForStatus(resp.StatusCode), Status: resp.StatusCode}
		if json.Valid(respBody) {
			apiErr.Body = json.RawMessage(respBody)
		}
		return nil, apiErr
	}

	if !json.Valid(respBody) {
		return nil, &Error{
			Kind:   KindInvalidResponse,
			Status: resp.StatusCode,
			Err:    errors.New("response body is not JSON"),
		}
	}
	return json.RawMessage(respBody), nil
}

// transportError labels a failure that produced no usable response.
func transportError(ctx context.Context, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindConnection, Err: err}
}
