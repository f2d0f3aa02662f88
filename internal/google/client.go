package google

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Production endpoints. Tests point these at httptest servers.
const (
	DefaultAPIBaseURL    = "https://www.googleapis.com"
	DefaultUploadBaseURL = "https://www.googleapis.com/upload"
	DefaultDocsBaseURL   = "https://docs.googleapis.com"
)

const userAgent = "mdview/0.1"

// Client is an HTTP client for the Drive and Docs APIs. It handles request
// construction, bearer authentication, and error classification. It holds no
// token itself: every call takes the caller's current bearer token, so a
// token installed mid-flight is picked up by the next request.
//
// There is no retry or native timeout policy; request lifetime is bounded by
// the context and whatever the underlying transport enforces.
type Client struct {
	apiURL     string
	uploadURL  string
	docsURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an API client. Empty base URLs fall back to the
// production endpoints; a nil httpClient falls back to http.DefaultClient.
func NewClient(apiURL, uploadURL, docsURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIBaseURL
	}

	if uploadURL == "" {
		uploadURL = DefaultUploadBaseURL
	}

	if docsURL == "" {
		docsURL = DefaultDocsBaseURL
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		apiURL:     apiURL,
		uploadURL:  uploadURL,
		docsURL:    docsURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// do executes one HTTP request against a full URL and returns the response on
// 2xx. Non-2xx responses are read, closed, and returned as an *APIError
// carrying the body. contentType is set when non-empty.
func (c *Client) do(ctx context.Context, method, url, token, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("google: creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", userAgent)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google: %s %s: %w", method, url, err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		c.logger.Debug("request succeeded",
			slog.String("method", method),
			slog.String("url", url),
			slog.Int("status", resp.StatusCode),
		)

		return resp, nil
	}

	errBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()

	if readErr != nil {
		errBody = []byte("(failed to read response body)")
	}

	c.logger.Warn("request rejected",
		slog.String("method", method),
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
	)

	return nil, &APIError{
		StatusCode: resp.StatusCode,
		Message:    string(errBody),
		Err:        classifyStatus(resp.StatusCode),
	}
}

// text executes a request and returns the response body as a string.
func (c *Client) text(ctx context.Context, method, url, token, contentType string, body io.Reader) (string, error) {
	resp, err := c.do(ctx, method, url, token, contentType, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("google: reading response body: %w", err)
	}

	return string(data), nil
}
