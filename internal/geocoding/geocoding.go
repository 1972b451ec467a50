package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"weatherscope/internal/config"
	"weatherscope/internal/providers/openmeteo"
	"weatherscope/internal/providers/openstreetmap"
	"weatherscope/internal/types"
)

// Service resolves a free-text place name to coordinates and a canonical name
type Service interface {
	// Resolve returns the provider's top match for name.
	// Errors wrap types.ErrInvalidRequest, types.ErrNotFound or types.ErrUpstreamUnavailable.
	Resolve(ctx context.Context, name string) (*types.Place, error)
}

// SearchProvider defines the interface for Open-Meteo style name search
type SearchProvider interface {
	Search(ctx context.Context, name string, count int) (*openmeteo.GeocodingAPIResponse, error)
}

// NominatimProvider defines the interface for Nominatim free-form search
type NominatimProvider interface {
	Search(ctx context.Context, query string, limit int) ([]openstreetmap.SearchAPIResponse, error)
}

// NewGeocodingService creates the geocoder selected by configuration
func NewGeocodingService(cfg *config.Config, logger *slog.Logger) Service {
	timeout := cfg.App.UpstreamTimeout
	if cfg.Providers.Geocoder == config.GeocoderNominatim {
		client := openstreetmap.NewClientWithURL(cfg.Providers.Nominatim.SearchURL, logger, cfg.Providers.Nominatim.UserAgent, timeout)
		return NewNominatimServiceWithProvider(client, logger)
	}
	client := openmeteo.NewGeocodingClientWithURL(cfg.Providers.OpenMeteo.GeocodingURL, logger, timeout)
	return NewOpenMeteoServiceWithProvider(client, logger)
}

// openMeteoService implements Service on the Open-Meteo geocoding API
type openMeteoService struct {
	provider SearchProvider
	logger   *slog.Logger
}

// NewOpenMeteoServiceWithProvider creates an Open-Meteo backed geocoder with a custom provider.
// This is useful for testing with mock providers
func NewOpenMeteoServiceWithProvider(provider SearchProvider, logger *slog.Logger) Service {
	return &openMeteoService{
		provider: provider,
		logger:   logger.With("component", "geocoding-service", "provider", config.GeocoderOpenMeteo),
	}
}

func (s *openMeteoService) Resolve(ctx context.Context, name string) (*types.Place, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	resp, err := s.provider.Search(ctx, name, 1)
	if err != nil {
		s.logger.Error("geocoding search failed", "name", name, "error", err)
		return nil, fmt.Errorf("failed to search location %q: %w: %w", name, types.ErrUpstreamUnavailable, err)
	}

	return s.translatePlace(name, resp)
}

// translatePlace converts an Open-Meteo search response to the domain Place type
func (s *openMeteoService) translatePlace(name string, resp *openmeteo.GeocodingAPIResponse) (*types.Place, error) {
	if resp == nil {
		return nil, fmt.Errorf("geocoding response is nil: %w", types.ErrUpstreamUnavailable)
	}

	if len(resp.Results) == 0 {
		s.logger.Info("no geocoding match", "name", name)
		return nil, fmt.Errorf("%q: %w", name, types.ErrNotFound)
	}

	// Trust the provider's ranking
	result := resp.Results[0]

	s.logger.Debug("resolved location",
		"name", name,
		"canonical_name", result.Name,
		"latitude", result.Latitude,
		"longitude", result.Longitude,
	)

	return &types.Place{
		Name:        result.Name,
		Coordinates: types.NewCoords(result.Latitude, result.Longitude),
		Country:     result.Country,
		Timezone:    result.Timezone,
	}, nil
}

// nominatimService implements Service on the OpenStreetMap Nominatim search API
type nominatimService struct {
	provider NominatimProvider
	logger   *slog.Logger
}

// NewNominatimServiceWithProvider creates a Nominatim backed geocoder with a custom provider
func NewNominatimServiceWithProvider(provider NominatimProvider, logger *slog.Logger) Service {
	return &nominatimService{
		provider: provider,
		logger:   logger.With("component", "geocoding-service", "provider", config.GeocoderNominatim),
	}
}

func (s *nominatimService) Resolve(ctx context.Context, name string) (*types.Place, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	resp, err := s.provider.Search(ctx, name, 1)
	if err != nil {
		s.logger.Error("geocoding search failed", "name", name, "error", err)
		return nil, fmt.Errorf("failed to search location %q: %w: %w", name, types.ErrUpstreamUnavailable, err)
	}

	if len(resp) == 0 {
		s.logger.Info("no geocoding match", "name", name)
		return nil, fmt.Errorf("%q: %w", name, types.ErrNotFound)
	}

	return translateSearchResult(resp[0])
}

// translateSearchResult converts a Nominatim search hit to the domain Place type
func translateSearchResult(result openstreetmap.SearchAPIResponse) (*types.Place, error) {
	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", result.Lat, types.ErrUpstreamUnavailable)
	}
	lon, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", result.Lon, types.ErrUpstreamUnavailable)
	}

	// Extract the name or the first part of the display name as the canonical name
	name := result.Name
	if name == "" {
		name, _, _ = strings.Cut(result.DisplayName, ",")
	}

	return &types.Place{
		Name:        strings.TrimSpace(name),
		Coordinates: types.NewCoords(lat, lon),
		Country:     result.Address.Country,
	}, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("location is required: %w", types.ErrInvalidRequest)
	}
	return name, nil
}
