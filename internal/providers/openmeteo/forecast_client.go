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
	"strings"
	"time"
)

// API Docs: https://open-meteo.com/en/docs
// Sample request: https://api.open-meteo.com/v1/forecast?latitude=31.10&longitude=77.17&timezone=auto&current=temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m,precipitation,visibility&hourly=temperature_2m,weather_code,precipitation_probability&forecast_days=7&wind_speed_unit=ms
const (
	baseForecastURL = "https://api.open-meteo.com/v1/forecast"
)

type ForecastClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// ForecastRequest selects the location and optional variables of a forecast call
type ForecastRequest struct {
	Latitude       float64
	Longitude      float64
	ForecastDays   int
	IncludeUVIndex bool
}

func NewForecastClient(logger *slog.Logger, timeout time.Duration) *ForecastClient {
	return NewForecastClientWithURL(baseForecastURL, logger, timeout)
}

// NewForecastClientWithURL creates a client against a custom base URL
func NewForecastClientWithURL(baseURL string, logger *slog.Logger, timeout time.Duration) *ForecastClient {
	return &ForecastClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger.With("component", "openmeteo-forecast-client"),
	}
}

// GetForecast fetches current conditions and an hourly series in the location's local timezone
func (c *ForecastClient) GetForecast(ctx context.Context, req ForecastRequest) (*ForecastAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	currentVars := []string{
		"temperature_2m",
		"relative_humidity_2m",
		"weather_code",
		"wind_speed_10m",
		"precipitation",
		"visibility",
	}

	hourlyVars := []string{
		"temperature_2m",
		"weather_code",
		"precipitation_probability",
	}
	if req.IncludeUVIndex {
		hourlyVars = append(hourlyVars, "uv_index")
	}

	q := u.Query()
	q.Set("latitude", fmt.Sprintf("%f", req.Latitude))
	q.Set("longitude", fmt.Sprintf("%f", req.Longitude))
	q.Set("current", strings.Join(currentVars, ","))
	q.Set("hourly", strings.Join(hourlyVars, ","))

	q.Set("timezone", "auto")
	q.Set("forecast_days", strconv.Itoa(req.ForecastDays))
	q.Set("timeformat", "iso8601")
	q.Set("wind_speed_unit", "ms")
	q.Set("temperature_unit", "celsius")
	q.Set("precipitation_unit", "mm")
	u.RawQuery = q.Encode()

	c.logger.Debug("fetching OpenMeteo forecast",
		"latitude", req.Latitude,
		"longitude", req.Longitude,
		"url", u.String(),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("failed to fetch OpenMeteo forecast",
			"latitude", req.Latitude,
			"longitude", req.Longitude,
			"error", err,
		)
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("OpenMeteo forecast API returned error",
			"status_code", resp.StatusCode,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp ForecastAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.logger.Error("failed to decode OpenMeteo forecast response", "error", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("successfully fetched OpenMeteo forecast",
		"timezone", apiResp.Timezone,
		"hourly_points", len(apiResp.Hourly.Time),
	)

	return &apiResp, nil
}
