package openstreetmap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// API Docs: https://nominatim.org/release-docs/develop/api/Search/
// Sample request: https://nominatim.openstreetmap.org/search?q=Shimla&format=jsonv2&limit=1&addressdetails=1
const (
	baseURL = "https://nominatim.openstreetmap.org/search"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger
}

func NewClient(logger *slog.Logger, userAgent string, timeout time.Duration) *Client {
	return NewClientWithURL(baseURL, logger, userAgent, timeout)
}

// NewClientWithURL creates a client against a custom base URL
func NewClientWithURL(baseURL string, logger *slog.Logger, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
		logger:     logger.With("component", "openstreetmap-client"),
	}
}

// Search runs a free-form place query and returns at most limit matches
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchAPIResponse, error) {
	// Build URL with query parameters
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("format", "jsonv2")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("addressdetails", "1")
	u.RawQuery = q.Encode()

	c.logger.Debug("searching OpenStreetMap",
		"query", query,
		"url", u.String(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Nominatim rejects requests without an identifying user agent
	req.Header.Set("User-Agent", c.userAgent)

	// Make the HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch OpenStreetMap data",
			"query", query,
			"error", err,
		)
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("OpenStreetMap API returned error",
			"status_code", resp.StatusCode,
			"query", query,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	// Parse the JSON response
	var apiResp []SearchAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.logger.Error("failed to decode OpenStreetMap response",
			"query", query,
			"error", err,
		)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("successfully searched OpenStreetMap",
		"query", query,
		"results", len(apiResp),
	)

	return apiResp, nil
}
