package forecast

import (
	"fmt"
	"math"
	"strings"
	"time"

	"weatherscope/internal/types"
)

// defaultVisibilityKm is reported when the provider has no visibility reading
const defaultVisibilityKm = 10

// Options toggles optional response fields
type Options struct {
	IncludeUVIndex bool
	IncludeDebug   bool
}

// Normalizer turns raw provider samples into the response shape.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	tables Tables
	opts   Options
}

// NewNormalizer creates a normalizer over the given tables
func NewNormalizer(tables Tables, opts Options) (*Normalizer, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("invalid forecast tables: %w", err)
	}
	return &Normalizer{
		tables: tables,
		opts:   opts,
	}, nil
}

// Normalize builds the forecast for a place from an upstream sample
func (n *Normalizer) Normalize(place types.Place, req Request, raw *RawSample, now time.Time) *NormalizedForecast {
	adjustment := n.RegionalAdjustment(place.Name)
	index := indexHourly(raw.Hourly)
	requested, hasRequested := lookup(raw.Hourly, index, timestampKey(req.Date, req.Hour))

	// Current temperature, overridden by the matching hour when a time was asked for
	temperature := types.RoundHalfUp(raw.Current.Temperature + float64(adjustment))
	if req.ExplicitTime && hasRequested {
		temperature = types.RoundHalfUp(*requested.Temperature + float64(adjustment))
	}

	condition := n.ApplyNight(n.ConditionOf(raw.Current.WeatherCode), req.Hour)

	current := HourlySlot{
		Time:      hourLabel(req.Hour),
		Temp:      temperature,
		Condition: condition,
		Icon:      IconFor(condition),
	}

	hourly := make([]HourlySlot, 0, SlotCount)
	for offset := 0; offset < SlotCount; offset++ {
		hourly = append(hourly, n.slot(req, offset, current, raw.Hourly, index, adjustment))
	}

	windKph := raw.Current.Wind.RoundedKph()

	forecast := &NormalizedForecast{
		Location:      place.Name,
		Temperature:   temperature,
		Condition:     condition,
		Humidity:      raw.Current.Humidity,
		Precipitation: raw.Current.Precipitation,
		WindSpeed:     windKph,
		Visibility:    visibilityKm(raw.Current.Visibility),
		Date:          req.DateString(),
		Time:          hourLabel(req.Hour),
		Hourly:        hourly,
		Wind:          windKph,
		Dt:            now.Unix(),
	}
	mirrorLegacy(forecast)

	if n.opts.IncludeUVIndex && hasRequested && requested.UVIndex != nil {
		uv := *requested.UVIndex
		forecast.UVIndex = &uv
	}

	if n.opts.IncludeDebug {
		forecast.Debug = &Debug{
			APITemp:    raw.Current.Temperature,
			Adjustment: adjustment,
			Season:     SeasonOf(req.Date.Month()),
			Source:     SourceOpenMeteo,
		}
	}

	return forecast
}

// slot builds the outlook entry offset hours after the requested hour.
// Hours past midnight are looked up on the following day.
func (n *Normalizer) slot(req Request, offset int, current HourlySlot, samples []HourlySample, index map[string]int, adjustment int) HourlySlot {
	hour := (req.Hour + offset) % 24
	date := req.Date
	if req.Hour+offset >= 24 {
		date = date.AddDate(0, 0, 1)
	}

	sample, ok := lookup(samples, index, timestampKey(date, hour))
	if !ok {
		return HourlySlot{
			Time:      hourLabel(hour),
			Temp:      current.Temp,
			Condition: current.Condition,
			Icon:      current.Icon,
		}
	}

	condition := n.tables.DefaultCondition
	if sample.WeatherCode != nil {
		condition = n.ConditionOf(*sample.WeatherCode)
	}
	condition = n.ApplyNight(condition, hour)

	return HourlySlot{
		Time:      hourLabel(hour),
		Temp:      types.RoundHalfUp(*sample.Temperature + float64(adjustment)),
		Condition: condition,
		Icon:      IconFor(condition),
	}
}

// indexHourly maps each hourly timestamp to its position
func indexHourly(samples []HourlySample) map[string]int {
	index := make(map[string]int, len(samples))
	for i, s := range samples {
		if _, seen := index[s.Time]; !seen {
			index[s.Time] = i
		}
	}
	return index
}

// lookup returns the sample at key. Samples without a temperature count as missing.
func lookup(samples []HourlySample, index map[string]int, key string) (HourlySample, bool) {
	i, ok := index[key]
	if !ok || samples[i].Temperature == nil {
		return HourlySample{}, false
	}
	return samples[i], true
}

func visibilityKm(meters *float64) int {
	if meters == nil || math.IsNaN(*meters) {
		return defaultVisibilityKm
	}
	return types.RoundHalfUp(*meters / 1000)
}

// mirrorLegacy copies the condition into the fields older clients read
func mirrorLegacy(f *NormalizedForecast) {
	f.Main = f.Condition
	f.Weather = []LegacyWeather{
		{
			Main:        f.Condition,
			Description: strings.ToLower(f.Condition),
		},
	}
}
