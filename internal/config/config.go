package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Clock modes for resolving the default request date and hour
const (
	ClockServer = "server"
	ClockPlace  = "place"
)

// Geocoder providers
const (
	GeocoderOpenMeteo = "openmeteo"
	GeocoderNominatim = "nominatim"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	App       AppConfig
	Providers ProvidersConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           int
	GinMode        string // debug, release, test
	AllowedOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	ForecastDays              int           // Number of days of hourly data to request
	UpstreamTimeout           time.Duration // Timeout for each outbound call
	FallbackOnUpstreamFailure bool          // Serve a seasonal estimate when upstream is down
	IncludeUVIndex            bool
	IncludeDebug              bool
	Clock                     string // server, place
}

// ProvidersConfig holds upstream provider configuration
type ProvidersConfig struct {
	Geocoder  string // openmeteo, nominatim
	OpenMeteo OpenMeteoConfig
	Nominatim NominatimConfig
}

type OpenMeteoConfig struct {
	GeocodingURL string
	ForecastURL  string
}

type NominatimConfig struct {
	SearchURL string
	UserAgent string
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	// A .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.weatherscope")

	SetDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("WEATHERSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", "WEATHERSCOPE_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind port env: %w", err)
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return unmarshal(v)
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.allowedOrigins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("app.forecastDays", 7)
	v.SetDefault("app.upstreamTimeout", 8*time.Second)
	v.SetDefault("app.fallbackOnUpstreamFailure", false)
	v.SetDefault("app.includeUVIndex", false)
	v.SetDefault("app.includeDebug", false)
	v.SetDefault("app.clock", ClockServer)
	v.SetDefault("providers.geocoder", GeocoderOpenMeteo)
	v.SetDefault("providers.openmeteo.geocodingURL", "https://geocoding-api.open-meteo.com/v1/search")
	v.SetDefault("providers.openmeteo.forecastURL", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("providers.nominatim.searchURL", "https://nominatim.openstreetmap.org/search")
	v.SetDefault("providers.nominatim.userAgent", "weatherscope/1.0")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that have a fixed set of choices
func (c *Config) Validate() error {
	switch c.App.Clock {
	case ClockServer, ClockPlace:
	default:
		return fmt.Errorf("invalid app.clock %q: want %q or %q", c.App.Clock, ClockServer, ClockPlace)
	}

	switch c.Providers.Geocoder {
	case GeocoderOpenMeteo, GeocoderNominatim:
	default:
		return fmt.Errorf("invalid providers.geocoder %q: want %q or %q", c.Providers.Geocoder, GeocoderOpenMeteo, GeocoderNominatim)
	}

	if c.App.ForecastDays < 1 || c.App.ForecastDays > 16 {
		return fmt.Errorf("invalid app.forecastDays %d: must be between 1 and 16", c.App.ForecastDays)
	}

	if c.App.UpstreamTimeout <= 0 {
		return fmt.Errorf("invalid app.upstreamTimeout %s: must be positive", c.App.UpstreamTimeout)
	}

	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
