// Package bynder is a minimal client for the two Bynder portal endpoints
// bynderpress talks to: the account derivatives listing and the usage sync.
// Calls are single synchronous requests; there is no retry or backoff.
package bynder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	derivativesPath = "/api/v4/account/derivatives"
	usageSyncPath   = "/api/media/usage/sync"

	// DefaultTimeout bounds every portal call. There are no retries.
	DefaultTimeout = 5 * time.Second
)

// StatusError is returned when the portal answers with an unexpected status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

type Client struct {
	httpClient *http.Client
	scheme     string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithScheme overrides "https", for pointing the client at a local test server.
func WithScheme(scheme string) Option {
	return func(c *Client) { c.scheme = scheme }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		scheme:     "https",
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Derivatives lists the account derivatives of the portal.
func (c *Client) Derivatives(ctx context.Context, creds Credentials) ([]Derivative, error) {
	req, err := c.newRequest(ctx, http.MethodGet, creds, derivativesPath, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("derivatives request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	dec := json.NewDecoder(resp.Body)
	var out []Derivative
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("derivatives decode: %w", err)
	}
	if out == nil {
		return nil, errors.New("derivatives decode: body is not a list")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("derivatives decode: trailing data after list")
	}
	return out, nil
}

// SyncUsage submits the full usage report in one request.
func (c *Client) SyncUsage(ctx context.Context, creds Credentials, report UsageReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("usage encode: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, creds, usageSyncPath, bytes.NewReader(body))
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("usage sync request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) newRequest(ctx context.Context, method string, creds Credentials, path string, body io.Reader) (*http.Request, error) {
	url := c.scheme + "://" + creds.Domain + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.Token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	return req, nil
}

func statusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{Code: resp.StatusCode, Body: string(b)}
}
