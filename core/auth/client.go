package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client calls a remote auth endpoint. It satisfies Authenticator.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a Client for baseURL (scheme and host required).
// Requests are bounded only by the caller's context.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Validate calls GET /auth?sessionId=.
func (c *Client) Validate(ctx context.Context, id string) (Result, error) {
	if id == "" {
		return Result{}, ErrMissingSessionID
	}

	params := url.Values{}
	params.Set("sessionId", id)

	resp, err := c.do(ctx, http.MethodGet, "/auth?"+params.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("client.Validate: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return Result{Valid: true}, nil
	case http.StatusUnauthorized:
		return Result{Valid: false, Reason: ReasonNotFound}, nil
	case http.StatusBadRequest:
		return Result{}, fmt.Errorf("client.Validate: %w", ErrMissingSessionID)
	default:
		return Result{}, fmt.Errorf("client.Validate: %w", upstreamError(resp))
	}
}

// Issue calls POST /auth with the client IP.
func (c *Client) Issue(ctx context.Context, clientIP string) (string, error) {
	body, err := json.Marshal(issueRequest{ClientIPAddress: clientIP})
	if err != nil {
		return "", fmt.Errorf("client.Issue: marshal: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/auth", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("client.Issue: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("client.Issue: %w", upstreamError(resp))
	}

	var out issueResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("client.Issue: %w: decode: %w", ErrUpstream, err)
	}
	if out.SessionID == "" {
		return "", fmt.Errorf("client.Issue: %w: empty sessionId", ErrUpstream)
	}
	return out.SessionID, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return resp, nil
}

func upstreamError(resp *http.Response) *UpstreamError {
	var body errorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if json.Unmarshal(data, &body) != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(data))
	}
	return &UpstreamError{StatusCode: resp.StatusCode, Message: body.Error}
}
