package forecast

import (
	"fmt"
	"time"

	"weatherscope/internal/types"
)

const (
	DateLayout = "2006-01-02"

	// SlotCount is the number of entries in the hourly outlook
	SlotCount = 6

	SourceOpenMeteo = "Open-Meteo"
	SourceSimulated = "Simulated"
)

// Request is a resolved forecast request: the date and hour have already
// been defaulted from the clock when the caller omitted them.
type Request struct {
	Date time.Time
	Hour int
	// ExplicitTime is set when the caller asked for a specific time of day
	ExplicitTime bool
}

// DateString formats the request date as YYYY-MM-DD
func (r Request) DateString() string {
	return r.Date.Format(DateLayout)
}

// RawSample is the upstream reading the normalizer works from
type RawSample struct {
	Current CurrentSample
	Hourly  []HourlySample
}

type CurrentSample struct {
	Temperature   float64 // Celsius
	Humidity      float64 // percent
	Wind          types.Wind
	Precipitation float64  // mm
	WeatherCode   int      // WMO code
	Visibility    *float64 // meters
}

type HourlySample struct {
	Time                     string // YYYY-MM-DDTHH:MM, provider local time
	Temperature              *float64
	WeatherCode              *int
	PrecipitationProbability *int
	UVIndex                  *float64
}

// NormalizedForecast is the response body of the weather endpoint
type NormalizedForecast struct {
	Location      string          `json:"location" example:"Shimla"`
	Temperature   int             `json:"temperature" example:"8"`
	Condition     string          `json:"condition" example:"Clear"`
	Humidity      float64         `json:"humidity" example:"45"`
	Precipitation float64         `json:"precipitation" example:"0"`
	WindSpeed     int             `json:"windSpeed" example:"9"`   // km/h
	Visibility    int             `json:"visibility" example:"10"` // km
	Date          string          `json:"date" example:"2024-01-15"`
	Time          string          `json:"time" example:"14:00"`
	Hourly        []HourlySlot    `json:"hourly"`
	Main          string          `json:"main" example:"Clear"`
	Weather       []LegacyWeather `json:"weather"`
	Wind          int             `json:"wind" example:"9"`
	Dt            int64           `json:"dt,omitempty" example:"1705307400"`
	UVIndex       *float64        `json:"uv_index,omitempty" example:"3.1"`
	Debug         *Debug          `json:"debug,omitempty"`
}

// HourlySlot is one entry of the six hour outlook
type HourlySlot struct {
	Time      string `json:"time" example:"14:00"`
	Temp      int    `json:"temp" example:"8"`
	Condition string `json:"condition" example:"Clear"`
	Icon      string `json:"icon" example:"01d"`
}

// LegacyWeather mirrors the condition for older clients
type LegacyWeather struct {
	Main        string `json:"main" example:"Clear"`
	Description string `json:"description" example:"clear"`
}

type Debug struct {
	APITemp    float64 `json:"apiTemp"`
	Adjustment int     `json:"adjustment"`
	Season     Season  `json:"season"`
	Source     string  `json:"source"`
}

// hourLabel formats an hour of day as "HH:00"
func hourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// timestampKey builds the provider's hourly timestamp for a date and hour
func timestampKey(date time.Time, hour int) string {
	return fmt.Sprintf("%sT%02d:00", date.Format(DateLayout), hour)
}
