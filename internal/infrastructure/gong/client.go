// Package gong adapts the Gong REST API to the domain ports.
// This is an infrastructure concern — the domain has no knowledge of HTTP.
package gong

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public Gong API endpoint.
const DefaultBaseURL = "https://api.gong.io"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limited")
)

// Client wraps the Gong REST API. Requests are authenticated with HTTP
// Basic auth using the access key and secret.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	accessKey    string
	accessSecret string
}

func NewClient(baseURL string, httpClient *http.Client, accessKey, accessSecret string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:      baseURL,
		httpClient:   httpClient,
		accessKey:    accessKey,
		accessSecret: accessSecret,
	}
}

// ListCalls fetches one page of call records. An empty cursor requests the
// first page; the response carries the cursor for the next one.
func (c *Client) ListCalls(ctx context.Context, from, to *time.Time, cursor string) (*CallListResponse, error) {
	params := url.Values{}
	if from != nil {
		params.Set("fromDateTime", from.Format(time.RFC3339))
	}
	if to != nil {
		params.Set("toDateTime", to.Format(time.RFC3339))
	}
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	var resp CallListResponse
	if err := c.get(ctx, "/v2/calls", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetCall(ctx context.Context, id string) (*CallResponse, error) {
	var resp CallResponse
	if err := c.get(ctx, "/v2/calls/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUsers fetches one page of the user directory.
func (c *Client) ListUsers(ctx context.Context, cursor string) (*UserListResponse, error) {
	params := url.Values{}
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	var resp UserListResponse
	if err := c.get(ctx, "/v2/users", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTranscripts fetches raw transcripts for the given call ids.
func (c *Client) GetTranscripts(ctx context.Context, callIDs []string) (*TranscriptResponse, error) {
	body := TranscriptRequest{Filter: TranscriptFilter{CallIDs: callIDs}}

	var resp TranscriptResponse
	if err := c.post(ctx, "/v2/calls/transcript", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, target interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, target)
}

func (c *Client) post(ctx context.Context, path string, body, target interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, target)
}

func (c *Client) do(req *http.Request, target interface{}) error {
	req.SetBasicAuth(c.accessKey, c.accessSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
