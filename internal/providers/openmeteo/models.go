package openmeteo

// GeocodingAPIResponse is the body of the geocoding search endpoint.
// Results is absent when nothing matched.
type GeocodingAPIResponse struct {
	Results          []GeocodingResult `json:"results"`
	GenerationtimeMs float64           `json:"generationtime_ms"`
}

type GeocodingResult struct {
	Id          int     `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Elevation   float64 `json:"elevation"`
	FeatureCode string  `json:"feature_code"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country"`
	Admin1      string  `json:"admin1"`
	Timezone    string  `json:"timezone"`
	Population  int     `json:"population"`
}

type ForecastAPIResponse struct {
	Latitude             float64      `json:"latitude"`
	Longitude            float64      `json:"longitude"`
	GenerationtimeMs     float64      `json:"generationtime_ms"`
	UtcOffsetSeconds     int          `json:"utc_offset_seconds"`
	Timezone             string       `json:"timezone"`
	TimezoneAbbreviation string       `json:"timezone_abbreviation"`
	Elevation            float64      `json:"elevation"`
	CurrentUnits         CurrentUnits `json:"current_units"`
	Current              Current      `json:"current"`
	HourlyUnits          HourlyUnits  `json:"hourly_units"`
	Hourly               Hourly       `json:"hourly"`
}

type CurrentUnits struct {
	Time               string `json:"time"`
	Temperature2M      string `json:"temperature_2m"`
	RelativeHumidity2M string `json:"relative_humidity_2m"`
	WeatherCode        string `json:"weather_code"`
	WindSpeed10M       string `json:"wind_speed_10m"`
	Precipitation      string `json:"precipitation"`
	Visibility         string `json:"visibility"`
}

type Current struct {
	Time               string   `json:"time"`
	Interval           int      `json:"interval"`
	Temperature2M      *float64 `json:"temperature_2m"`
	RelativeHumidity2M float64  `json:"relative_humidity_2m"`
	WeatherCode        *int     `json:"weather_code"`
	WindSpeed10M       float64  `json:"wind_speed_10m"`
	Precipitation      *float64 `json:"precipitation"`
	Visibility         *float64 `json:"visibility"`
}

type HourlyUnits struct {
	Time                     string `json:"time"`
	Temperature2M            string `json:"temperature_2m"`
	WeatherCode              string `json:"weather_code"`
	PrecipitationProbability string `json:"precipitation_probability"`
	UvIndex                  string `json:"uv_index"`
}

type Hourly struct {
	Time                     []string   `json:"time"`
	Temperature2M            []*float64 `json:"temperature_2m"`
	WeatherCode              []*int     `json:"weather_code"`
	PrecipitationProbability []*int     `json:"precipitation_probability"`
	UvIndex                  []*float64 `json:"uv_index"`
}
