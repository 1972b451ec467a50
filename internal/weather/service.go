package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"weatherscope/internal/config"
	"weatherscope/internal/forecast"
	"weatherscope/internal/geocoding"
	"weatherscope/internal/providers/openmeteo"
	"weatherscope/internal/timezone"
	"weatherscope/internal/types"
)

type ForecastProvider interface {
	// GetForecast fetches current conditions and an hourly series in the location's local time
	GetForecast(ctx context.Context, req openmeteo.ForecastRequest) (*openmeteo.ForecastAPIResponse, error)
}

// Clock returns the current time
type Clock func() time.Time

type Service interface {
	// GetWeather geocodes the query and returns the normalized forecast.
	// Errors wrap types.ErrInvalidRequest, types.ErrNotFound or types.ErrUpstreamUnavailable.
	GetWeather(ctx context.Context, query types.LocationQuery) (*forecast.NormalizedForecast, error)
}

type weatherService struct {
	geocoder         geocoding.Service
	forecastProvider ForecastProvider
	timezoneService  timezone.Service
	normalizer       *forecast.Normalizer
	clock            Clock
	cfg              *config.Config
	logger           *slog.Logger
}

func NewWeatherService(cfg *config.Config, logger *slog.Logger) (Service, error) {
	normalizer, err := forecast.NewNormalizer(forecast.DefaultTables(), forecast.Options{
		IncludeUVIndex: cfg.App.IncludeUVIndex,
		IncludeDebug:   cfg.App.IncludeDebug,
	})
	if err != nil {
		return nil, err
	}

	// The timezone finder is only needed for place-local clocks
	var tzSvc timezone.Service
	if cfg.App.Clock == config.ClockPlace {
		tzSvc, err = timezone.NewService()
		if err != nil {
			return nil, fmt.Errorf("failed to create timezone service: %w", err)
		}
	}

	return NewWeatherServiceWithProviders(
		geocoding.NewGeocodingService(cfg, logger),
		openmeteo.NewForecastClientWithURL(cfg.Providers.OpenMeteo.ForecastURL, logger, cfg.App.UpstreamTimeout),
		tzSvc,
		normalizer,
		time.Now,
		cfg,
		logger,
	), nil
}

// NewWeatherServiceWithProviders creates a weather service with custom collaborators.
// This is useful for testing with mock providers and a fixed clock
func NewWeatherServiceWithProviders(
	geocoder geocoding.Service,
	forecastProvider ForecastProvider,
	timezoneService timezone.Service,
	normalizer *forecast.Normalizer,
	clock Clock,
	cfg *config.Config,
	logger *slog.Logger,
) Service {
	return &weatherService{
		geocoder:         geocoder,
		forecastProvider: forecastProvider,
		timezoneService:  timezoneService,
		normalizer:       normalizer,
		clock:            clock,
		cfg:              cfg,
		logger:           logger.With("component", "weather-service"),
	}
}

func (s *weatherService) GetWeather(ctx context.Context, query types.LocationQuery) (*forecast.NormalizedForecast, error) {
	parsed, err := parseQuery(query)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("weather request",
		"location", parsed.name,
		"date", query.Date,
		"time", query.Time,
	)

	place, err := s.geocoder.Resolve(ctx, parsed.name)
	if err != nil {
		if errors.Is(err, types.ErrUpstreamUnavailable) && s.cfg.App.FallbackOnUpstreamFailure {
			now := s.clock()
			s.logger.Warn("geocoding unavailable, serving seasonal estimate",
				"location", parsed.name,
				"error", err,
			)
			return s.normalizer.Simulate(parsed.name, parsed.resolve(now), now), nil
		}
		return nil, fmt.Errorf("failed to resolve location: %w", err)
	}

	now := s.now(place)
	req := parsed.resolve(now)

	apiResponse, err := s.forecastProvider.GetForecast(ctx, openmeteo.ForecastRequest{
		Latitude:       place.Coordinates.Latitude,
		Longitude:      place.Coordinates.Longitude,
		ForecastDays:   s.cfg.App.ForecastDays,
		IncludeUVIndex: s.cfg.App.IncludeUVIndex,
	})
	if err == nil {
		var raw *forecast.RawSample
		raw, err = translateForecast(apiResponse)
		if err == nil {
			result := s.normalizer.Normalize(*place, req, raw, now)
			s.logger.Info("weather sent",
				"location", result.Location,
				"temperature", result.Temperature,
				"condition", result.Condition,
			)
			return result, nil
		}
	}

	s.logger.Error("failed to get forecast from provider",
		"location", place.Name,
		"latitude", place.Coordinates.Latitude,
		"longitude", place.Coordinates.Longitude,
		"error", err,
	)

	if s.cfg.App.FallbackOnUpstreamFailure {
		s.logger.Warn("serving seasonal estimate", "location", place.Name)
		return s.normalizer.Simulate(place.Name, req, now), nil
	}

	return nil, fmt.Errorf("failed to get forecast: %w: %w", types.ErrUpstreamUnavailable, err)
}

// now returns the current time on the configured clock. Place-local clocks
// fall back to the server clock when the place's timezone is unknown.
func (s *weatherService) now(place *types.Place) time.Time {
	now := s.clock()
	if s.cfg.App.Clock != config.ClockPlace {
		return now
	}

	if place.Timezone != "" {
		loc, err := time.LoadLocation(place.Timezone)
		if err == nil {
			return now.In(loc)
		}
		s.logger.Warn("failed to load geocoder timezone", "timezone", place.Timezone, "error", err)
	}

	if s.timezoneService == nil {
		return now
	}

	loc, err := s.timezoneService.GetLocation(place.Coordinates.Latitude, place.Coordinates.Longitude)
	if err != nil {
		s.logger.Warn("failed to determine timezone, using server clock",
			"latitude", place.Coordinates.Latitude,
			"longitude", place.Coordinates.Longitude,
			"error", err,
		)
		return now
	}

	return now.In(loc)
}

// parsedQuery is a validated LocationQuery
type parsedQuery struct {
	name    string
	date    time.Time
	hasDate bool
	hour    int
	hasTime bool
}

func parseQuery(query types.LocationQuery) (parsedQuery, error) {
	parsed := parsedQuery{name: strings.TrimSpace(query.Name)}
	if parsed.name == "" {
		return parsedQuery{}, fmt.Errorf("location is required: %w", types.ErrInvalidRequest)
	}

	if query.Date != "" {
		date, err := time.Parse(forecast.DateLayout, query.Date)
		if err != nil {
			return parsedQuery{}, fmt.Errorf("date %q must be YYYY-MM-DD: %w", query.Date, types.ErrInvalidRequest)
		}
		parsed.date = date
		parsed.hasDate = true
	}

	if query.Time != "" {
		hour, err := ParseHour(query.Time)
		if err != nil {
			return parsedQuery{}, fmt.Errorf("%w: %w", err, types.ErrInvalidRequest)
		}
		parsed.hour = hour
		parsed.hasTime = true
	}

	return parsed, nil
}

// resolve fills the omitted date and hour from now
func (p parsedQuery) resolve(now time.Time) forecast.Request {
	req := forecast.Request{
		Date:         time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Hour:         now.Hour(),
		ExplicitTime: p.hasTime,
	}
	if p.hasDate {
		req.Date = p.date
	}
	if p.hasTime {
		req.Hour = p.hour
	}
	return req
}

// ParseHour returns the hour of an "H:MM" or "HH:MM" time of day
func ParseHour(value string) (int, error) {
	hourPart, minutePart, ok := strings.Cut(value, ":")
	if !ok || len(hourPart) == 0 || len(hourPart) > 2 || len(minutePart) != 2 {
		return 0, fmt.Errorf("time %q must be HH:MM", value)
	}
	if !isDigits(hourPart) || !isDigits(minutePart) {
		return 0, fmt.Errorf("time %q must contain only digits", value)
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("time %q has an invalid hour", value)
	}

	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q has invalid minutes", value)
	}

	return hour, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// translateForecast converts an OpenMeteo forecast response to the normalizer's sample
func translateForecast(resp *openmeteo.ForecastAPIResponse) (*forecast.RawSample, error) {
	if resp == nil {
		return nil, fmt.Errorf("forecast response is nil")
	}

	// The current reading is required
	if resp.Current.Temperature2M == nil || resp.Current.WeatherCode == nil {
		return nil, fmt.Errorf("forecast response has no current reading")
	}

	hourly := resp.Hourly
	n := len(hourly.Time)
	if len(hourly.Temperature2M) != n || len(hourly.WeatherCode) != n {
		return nil, fmt.Errorf("malformed hourly series: %d times, %d temperatures, %d weather codes",
			n, len(hourly.Temperature2M), len(hourly.WeatherCode))
	}

	samples := make([]forecast.HourlySample, 0, n)
	for i, ts := range hourly.Time {
		sample := forecast.HourlySample{
			Time:        ts,
			Temperature: hourly.Temperature2M[i],
			WeatherCode: hourly.WeatherCode[i],
		}
		// Optional series may be absent
		if len(hourly.PrecipitationProbability) == n {
			sample.PrecipitationProbability = hourly.PrecipitationProbability[i]
		}
		if len(hourly.UvIndex) == n {
			sample.UVIndex = hourly.UvIndex[i]
		}
		samples = append(samples, sample)
	}

	precipitation := 0.0
	if resp.Current.Precipitation != nil {
		precipitation = *resp.Current.Precipitation
	}

	return &forecast.RawSample{
		Current: forecast.CurrentSample{
			Temperature:   *resp.Current.Temperature2M,
			Humidity:      resp.Current.RelativeHumidity2M,
			Wind:          types.NewWindFromMps(resp.Current.WindSpeed10M),
			Precipitation: precipitation,
			WeatherCode:   *resp.Current.WeatherCode,
			Visibility:    resp.Current.Visibility,
		},
		Hourly: samples,
	}, nil
}
