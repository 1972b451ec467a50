package openmeteo

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

// API Docs: https://open-meteo.com/en/docs/geocoding-api
// Sample request: https://geocoding-api.open-meteo.com/v1/search?name=Shimla&count=1&language=en&format=json
const (
	baseGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
)

type GeocodingClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewGeocodingClient(logger *slog.Logger, timeout time.Duration) *GeocodingClient {
	return NewGeocodingClientWithURL(baseGeocodingURL, logger, timeout)
}

// NewGeocodingClientWithURL creates a client against a custom base URL
func NewGeocodingClientWithURL(baseURL string, logger *slog.Logger, timeout time.Duration) *GeocodingClient {
	return &GeocodingClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger.With("component", "openmeteo-geocoding-client"),
	}
}

// Search looks up places by name, returning at most count results ranked by the API
func (c *GeocodingClient) Search(ctx context.Context, name string, count int) (*GeocodingAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("name", name)
	q.Set("count", strconv.Itoa(count))
	q.Set("language", "en")
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	c.logger.Debug("searching OpenMeteo geocoding", "name", name, "url", u.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch OpenMeteo geocoding data", "name", name, "error", err)
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("OpenMeteo geocoding API returned error",
			"status_code", resp.StatusCode,
			"name", name,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp GeocodingAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.logger.Error("failed to decode OpenMeteo geocoding response", "name", name, "error", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("successfully searched OpenMeteo geocoding",
		"name", name,
		"results", len(apiResp.Results),
	)

	return &apiResp, nil
}
