package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"weatherscope/internal/config"
	"weatherscope/internal/forecast"
	"weatherscope/internal/providers/openmeteo"
	"weatherscope/internal/timezone"
	"weatherscope/internal/types"

	_ "time/tzdata"
)

// Mock providers for testing

type mockGeocoder struct {
	place *types.Place
	err   error
	calls int
	got   string
}

func (m *mockGeocoder) Resolve(ctx context.Context, name string) (*types.Place, error) {
	m.calls++
	m.got = name
	return m.place, m.err
}

type mockForecastProvider struct {
	response *openmeteo.ForecastAPIResponse
	err      error
	calls    int
	got      openmeteo.ForecastRequest
}

func (m *mockForecastProvider) GetForecast(ctx context.Context, req openmeteo.ForecastRequest) (*openmeteo.ForecastAPIResponse, error) {
	m.calls++
	m.got = req
	return m.response, m.err
}

type mockTimezoneService struct {
	name string
	err  error
}

func (m *mockTimezoneService) GetTimezone(lat, lon float64) (string, error) {
	return m.name, m.err
}

func (m *mockTimezoneService) GetLocation(lat, lon float64) (*time.Location, error) {
	if m.err != nil {
		return nil, m.err
	}
	return time.LoadLocation(m.name)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			ForecastDays:    7,
			UpstreamTimeout: 8 * time.Second,
			Clock:           config.ClockServer,
		},
		Providers: config.ProvidersConfig{Geocoder: config.GeocoderOpenMeteo},
	}
}

// 2024-01-15 09:30 UTC, 15:00 in India
var testNow = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

func ptr[T any](v T) *T {
	return &v
}

func shimla() *types.Place {
	return &types.Place{
		Name:        "Shimla",
		Coordinates: types.NewCoords(31.10442, 77.16662),
		Country:     "India",
		Timezone:    "Asia/Kolkata",
	}
}

// forecastResponse returns a response with the given current reading and a
// flat 24 hour series for 2024-01-15
func forecastResponse(temperature float64, code int) *openmeteo.ForecastAPIResponse {
	resp := &openmeteo.ForecastAPIResponse{
		Current: openmeteo.Current{
			Temperature2M:      ptr(temperature),
			RelativeHumidity2M: 40,
			WeatherCode:        ptr(code),
			WindSpeed10M:       2.5,
			Precipitation:      ptr(0.2),
			Visibility:         ptr(24140.0),
		},
	}
	for hour := 0; hour < 24; hour++ {
		resp.Hourly.Time = append(resp.Hourly.Time, fmt.Sprintf("2024-01-15T%02d:00", hour))
		resp.Hourly.Temperature2M = append(resp.Hourly.Temperature2M, ptr(temperature))
		resp.Hourly.WeatherCode = append(resp.Hourly.WeatherCode, ptr(code))
		resp.Hourly.PrecipitationProbability = append(resp.Hourly.PrecipitationProbability, ptr(10))
	}
	return resp
}

type testService struct {
	Service
	geocoder *mockGeocoder
	provider *mockForecastProvider
}

func newTestService(t *testing.T, cfg *config.Config, geocoder *mockGeocoder, provider *mockForecastProvider, tz *mockTimezoneService) testService {
	t.Helper()
	normalizer, err := forecast.NewNormalizer(forecast.DefaultTables(), forecast.Options{
		IncludeUVIndex: cfg.App.IncludeUVIndex,
		IncludeDebug:   cfg.App.IncludeDebug,
	})
	if err != nil {
		t.Fatalf("NewNormalizer() error = %v", err)
	}

	var tzSvc timezone.Service
	if tz != nil {
		tzSvc = tz
	}

	return testService{
		Service:  NewWeatherServiceWithProviders(geocoder, provider, tzSvc, normalizer, fixedClock, cfg, testLogger()),
		geocoder: geocoder,
		provider: provider,
	}
}

func TestGetWeather_ShimlaAfternoon(t *testing.T) {
	svc := newTestService(t, testConfig(),
		&mockGeocoder{place: shimla()},
		&mockForecastProvider{response: forecastResponse(10, 0)},
		nil,
	)

	got, err := svc.GetWeather(context.Background(), types.LocationQuery{Name: "Shimla", Date: "2024-01-15", Time: "14:00"})
	if err != nil {
		t.Fatalf("GetWeather() error = %v", err)
	}

	if got.Location != "Shimla" {
		t.Errorf("Location = %q, want %q", got.Location, "Shimla")
	}
	if got.Temperature != 8 {
		t.Errorf("Temperature = %d, want 8", got.Temperature)
	}
	if got.Condition != "Clear" {
		t.Errorf("Condition = %q, want %q", got.Condition, "Clear")
	}
	if got.Hourly[0].Time != "14:00" {
		t.Errorf("Hourly[0].Time = %q, want %q", got.Hourly[0].Time, "14:00")
	}
	if got.Visibility != 24 {
		t.Errorf("Visibility = %d, want 24", got.Visibility)
	}
	if got.WindSpeed != 9 {
		t.Errorf("WindSpeed = %d, want 9", got.WindSpeed)
	}
	if got.Precipitation != 0.2 {
		t.Errorf("Precipitation = %v, want 0.2", got.Precipitation)
	}
	if got.Dt != testNow.Unix() {
		t.Errorf("Dt = %d, want %d", got.Dt, testNow.Unix())
	}

	wantReq := openmeteo.ForecastRequest{Latitude: 31.10442, Longitude: 77.16662, ForecastDays: 7}
	if diff := cmp.Diff(wantReq, svc.provider.got); diff != "" {
		t.Errorf("ForecastRequest mismatch (-want +got):\n%s", diff)
	}
}

func TestGetWeather_MumbaiNight(t *testing.T) {
	mumbai := &types.Place{Name: "Mumbai", Coordinates: types.NewCoords(19.07283, 72.88261), Country: "India"}
	svc := newTestService(t, testConfig(),
		&mockGeocoder{place: mumbai},
		&mockForecastProvider{response: forecastResponse(25, 1)},
		nil,
	)

	got, err := svc.GetWeather(context.Background(), types.LocationQuery{Name: "Mumbai", Date: "2024-01-15", Time: "22:00"})
	if err != nil {
		t.Fatalf("GetWeather() error = %v", err)
	}

	if got.Temperature != 26 {
		t.Errorf("Temperature = %d, want 26", got.Temperature)
	}
	if got.Condition != "Clear Night" {
		t.Errorf("Condition = %q, want %q", got.Condition, "Clear Night")
	}
	if got.Hourly[0].Icon != "01n" {
		t.Errorf("Hourly[0].Icon = %q, want %q", got.Hourly[0].Icon, "01n")
	}
	if got.Hourly[2].Time != "00:00" {
		t.Errorf("Hourly[2].Time = %q, want %q", got.Hourly[2].Time, "00:00")
	}
}

func TestGetWeather_DefaultsFromServerClock(t *testing.T) {
	svc := newTestService(t, testConfig(),
		&mockGeocoder{place: shimla()},
		&mockForecastProvider{response: forecastResponse(10, 0)},
		nil,
	)

	got, err := svc.GetWeather(context.Background(), types.LocationQuery{Name: "Shimla"})
	if err != nil {
		t.Fatalf("GetWeather() error = %v", err)
	}

	if got.Date != "2024-01-15" || got.Time != "09:00" {
		t.Errorf("Date/Time = %s %s, want 2024-01-15 09:00", got.Date, got.Time)
	}
	if got.Hourly[0].Time != "09:00" {
		t.Errorf("Hourly[0].Time = %q, want %q", got.Hourly[0].Time, "09:00")
	}
}

func TestGetWeather_PlaceClock(t *testing.T) {
	tests := []struct {
		name     string
		place    *types.Place
		tz       *mockTimezoneService
		wantTime string
	}{
		{
			name:     "geocoder timezone",
			place:    shimla(),
			wantTime: "15:00",
		},
		{
			name:     "timezone finder",
			place:    &types.Place{Name: "Tokyo", Coordinates: types.NewCoords(35.6895, 139.69171)},
			tz:       &mockTimezoneService{name: "Asia/Tokyo"},
			wantTime: "18:00",
		},
		{
			name:     "unknown timezone uses server clock",
			place:    &types.Place{Name: "Nowhere", Timezone: "Not/AZone"},
			tz:       &mockTimezoneService{err: errors.New("no timezone")},
			wantTime: "09:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.App.Clock = config.ClockPlace

			svc := newTestService(t, cfg,
				&mockGeocoder{place: tt.place},
				&mockForecastProvider{response: forecastResponse(20, 3)},
				tt.tz,
			)

			got, err := svc.GetWeather(context.Background(), types.LocationQuery{Name: tt.place.Name})
			if err != nil {
				t.Fatalf("GetWeather() error = %v", err)
			}
			if got.Time != tt.wantTime {
				t.Errorf("Time = %q, want %q", got.Time, tt.wantTime)
			}
		})
	}
}

func TestGetWeather_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query types.LocationQuery
	}{
		{name: "missing location", query: types.LocationQuery{}},
		{name: "blank location", query: types.LocationQuery{Name: "   "}},
		{name: "malformed date", query: types.LocationQuery{Name: "Pune", Date: "15-01-2024"}},
		{name: "impossible date", query: types.LocationQuery{Name: "Pune", Date: "2024-02-30"}},
		{name: "hour out of range", query: types.LocationQuery{Name: "Pune", Time: "25:00"}},
		{name: "minutes out of range", query: types.LocationQuery{Name: "Pune", Time: "12:75"}},
		{name: "not a time", query: types.LocationQuery{Name: "Pune", Time: "noon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, testConfig(),
				&mockGeocoder{place: shimla()},
				&mockForecastProvider{response: forecastResponse(10, 0)},
				nil,
			)

			_, err := svc.GetWeather(context.Background(), tt.query)
			if !errors.Is(err, types.ErrInvalidRequest) {
				t.Fatalf("GetWeather() error = %v, want ErrInvalidRequest", err)
			}
			if svc.geocoder.calls != 0 || svc.provider.calls != 0 {
				t.Errorf("outbound calls = %d geocoder, %d forecast, want none", svc.geocoder.calls, svc.provider.calls)
			}
		})
	}
}

func TestGetWeather_NotFound(t *testing.T) {
	svc := newTestService(t, testConfig(),
		&mockGeocoder{err: fmt.Errorf("no results for %q: %w", "Atlantis", types.ErrNotFound)},
		&mockForecastProvider{response: forecastResponse(10, 0)},
		nil,
	)

	_, err := svc.GetWeather(context.Background(), types.LocationQuery{Name: "Atlantis"})
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("GetWeather() error = %v, want ErrNotFound", err)
	}
	if svc.provider.calls != 0 {
		t.Errorf("forecast calls = %d, want 0", svc.provider.calls)
	}
}

func TestGetWeather_UpstreamFailure(t *testing.T) {
	geocodeDown := fmt.Errorf("failed to search: %w", types.ErrUpstreamUnavailable)
	forecastDown := errors.New("fetch returned status 503")

	tests := []struct {
		name        string
		geocodeErr  error
		forecastErr error
		fallback    bool
		wantErr     bool
		wantSource  string
		wantName    string
	}{
		{name: "geocoder down", geocodeErr: geocodeDown, wantErr: true},
		{name: "forecast down", forecastErr: forecastDown, wantErr: true},
		{name: "geocoder down with fallback", geocodeErr: geocodeDown, fallback: true, wantSource: forecast.SourceSimulated, wantName: "shimla"},
		{name: "forecast down with fallback", forecastErr: forecastDown, fallback: true, wantSource: forecast.SourceSimulated, wantName: "Shimla"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.App.FallbackOnUpstreamFailure = tt.fallback
			cfg.App.IncludeDebug = true

			geocoder := &mockGeocoder{place: shimla(), err: tt.geocodeErr}
			if tt.geocodeErr != nil {
				geocoder.place = nil
			}
			provider := &mockForecastProvider{response: forecastResponse(10, 0), err: tt.forecastErr}
			if tt.forecastErr != nil {
				provider.response = nil
			}
			svc := newTestService(t, cfg, geocoder, provider, nil)

			got, err := svc.GetWeather(context.Background(), types.LocationQuery{Name: " shimla ", Date: "2024-01-15", Time: "16:00"})
			if tt.wantErr {
				if !errors.Is(err, types.ErrUpstreamUnavailable) {
					t.Fatalf("GetWeather() error = %v, want ErrUpstreamUnavailable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetWeather() error = %v", err)
			}
			if got.Debug == nil || got.Debug.Source != tt.wantSource {
				t.Errorf("Debug = %+v, want source %q", got.Debug, tt.wantSource)
			}
			if got.Location != tt.wantName {
				t.Errorf("Location = %q, want %q", got.Location, tt.wantName)
			}
			// Winter 14, 16:00 +2, mountain -2
			if got.Temperature != 14 {
				t.Errorf("Temperature = %d, want 14", got.Temperature)
			}
		})
	}
}

func TestGetWeather_MalformedForecast(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*openmeteo.ForecastAPIResponse)
		errContains string
	}{
		{
			name:        "hourly series lengths differ",
			modify:      func(r *openmeteo.ForecastAPIResponse) { r.Hourly.WeatherCode = r.Hourly.WeatherCode[:3] },
			errContains: "malformed hourly series",
		},
		{
			name:        "no current block",
			modify:      func(r *openmeteo.ForecastAPIResponse) { r.Current = openmeteo.Current{} },
			errContains: "no current reading",
		},
		{
			name:        "current temperature missing",
			modify:      func(r *openmeteo.ForecastAPIResponse) { r.Current.Temperature2M = nil },
			errContains: "no current reading",
		},
		{
			name:        "current weather code missing",
			modify:      func(r *openmeteo.ForecastAPIResponse) { r.Current.WeatherCode = nil },
			errContains: "no current reading",
		},
		{
			name:        "empty response",
			modify:      func(r *openmeteo.ForecastAPIResponse) { *r = openmeteo.ForecastAPIResponse{} },
			errContains: "no current reading",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := forecastResponse(10, 0)
			tt.modify(resp)

			svc := newTestService(t, testConfig(),
				&mockGeocoder{place: shimla()},
				&mockForecastProvider{response: resp},
				nil,
			)

			got, err := svc.GetWeather(context.Background(), types.LocationQuery{Name: "Shimla"})
			if !errors.Is(err, types.ErrUpstreamUnavailable) {
				t.Fatalf("GetWeather() = %+v, %v, want ErrUpstreamUnavailable", got, err)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error = %q, want %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestGetWeather_MalformedForecastFallback(t *testing.T) {
	cfg := testConfig()
	cfg.App.FallbackOnUpstreamFailure = true
	cfg.App.IncludeDebug = true

	svc := newTestService(t, cfg,
		&mockGeocoder{place: shimla()},
		&mockForecastProvider{response: &openmeteo.ForecastAPIResponse{}},
		nil,
	)

	got, err := svc.GetWeather(context.Background(), types.LocationQuery{Name: "Shimla"})
	if err != nil {
		t.Fatalf("GetWeather() error = %v", err)
	}
	if got.Debug == nil || got.Debug.Source != forecast.SourceSimulated {
		t.Errorf("Debug = %+v, want source %q", got.Debug, forecast.SourceSimulated)
	}
}

func TestGetWeather_UVIndex(t *testing.T) {
	resp := forecastResponse(10, 0)
	for hour := range resp.Hourly.Time {
		resp.Hourly.UvIndex = append(resp.Hourly.UvIndex, ptr(float64(hour)/2))
	}

	cfg := testConfig()
	cfg.App.IncludeUVIndex = true
	svc := newTestService(t, cfg, &mockGeocoder{place: shimla()}, &mockForecastProvider{response: resp}, nil)

	got, err := svc.GetWeather(context.Background(), types.LocationQuery{Name: "Shimla", Date: "2024-01-15", Time: "12:30"})
	if err != nil {
		t.Fatalf("GetWeather() error = %v", err)
	}
	if !svc.provider.got.IncludeUVIndex {
		t.Error("ForecastRequest.IncludeUVIndex = false, want true")
	}
	if got.UVIndex == nil || *got.UVIndex != 6 {
		t.Errorf("UVIndex = %v, want 6", got.UVIndex)
	}
}

func TestParseHour(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "14:00", want: 14},
		{value: "9:30", want: 9},
		{value: "09:05", want: 9},
		{value: "0:00", want: 0},
		{value: "23:59", want: 23},
		{value: "24:00", wantErr: true},
		{value: "12:60", wantErr: true},
		{value: "12:5", wantErr: true},
		{value: "123:00", wantErr: true},
		{value: ":30", wantErr: true},
		{value: "1400", wantErr: true},
		{value: "-1:00", wantErr: true},
		{value: "ab:cd", wantErr: true},
		{value: "+9:00", wantErr: true},
		{value: "-0:00", wantErr: true},
		{value: "9:+5", wantErr: true},
		{value: " 9:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseHour(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHour(%q) expected error, got %d", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHour(%q) error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ParseHour(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestTranslateForecast(t *testing.T) {
	resp := forecastResponse(18.4, 2)
	resp.Current.Precipitation = nil
	resp.Hourly.PrecipitationProbability = nil

	raw, err := translateForecast(resp)
	if err != nil {
		t.Fatalf("translateForecast() error = %v", err)
	}

	if raw.Current.Precipitation != 0 {
		t.Errorf("Precipitation = %v, want 0", raw.Current.Precipitation)
	}
	if raw.Current.Wind.RoundedKph() != 9 {
		t.Errorf("Wind = %d kph, want 9", raw.Current.Wind.RoundedKph())
	}
	if len(raw.Hourly) != 24 {
		t.Fatalf("len(Hourly) = %d, want 24", len(raw.Hourly))
	}
	if raw.Hourly[5].Time != "2024-01-15T05:00" || *raw.Hourly[5].Temperature != 18.4 {
		t.Errorf("Hourly[5] = %+v", raw.Hourly[5])
	}
	if raw.Hourly[5].PrecipitationProbability != nil {
		t.Errorf("PrecipitationProbability = %v, want nil", *raw.Hourly[5].PrecipitationProbability)
	}

	if _, err := translateForecast(nil); err == nil {
		t.Error("translateForecast(nil) expected error")
	}
}
