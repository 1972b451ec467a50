package forecast

import (
	"time"

	"weatherscope/internal/types"
)

// Simulate returns a deterministic seasonal estimate for a location. It is
// served in place of upstream data when the providers are unreachable and
// fallback is enabled.
func (n *Normalizer) Simulate(name string, req Request, now time.Time) *NormalizedForecast {
	season := SeasonOf(req.Date.Month())
	profile := n.tables.Seasons[season]
	adjustment := n.RegionalAdjustment(name)

	temperatureAt := func(hour int) int {
		return types.RoundHalfUp(profile.BaseTemperature + float64(n.tables.HourDeltas[hour]+adjustment))
	}

	condition := n.ApplyNight(profile.Condition, req.Hour)
	temperature := temperatureAt(req.Hour)

	hourly := make([]HourlySlot, 0, SlotCount)
	for offset := 0; offset < SlotCount; offset++ {
		hour := (req.Hour + offset) % 24
		hourCondition := n.ApplyNight(profile.Condition, hour)
		hourly = append(hourly, HourlySlot{
			Time:      hourLabel(hour),
			Temp:      temperatureAt(hour),
			Condition: hourCondition,
			Icon:      IconFor(hourCondition),
		})
	}

	forecast := &NormalizedForecast{
		Location:      name,
		Temperature:   temperature,
		Condition:     condition,
		Humidity:      profile.Humidity,
		Precipitation: profile.Precipitation,
		WindSpeed:     profile.WindSpeedKph,
		Visibility:    defaultVisibilityKm,
		Date:          req.DateString(),
		Time:          hourLabel(req.Hour),
		Hourly:        hourly,
		Wind:          profile.WindSpeedKph,
		Dt:            now.Unix(),
	}
	mirrorLegacy(forecast)

	if n.opts.IncludeDebug {
		forecast.Debug = &Debug{
			APITemp:    profile.BaseTemperature,
			Adjustment: adjustment,
			Season:     season,
			Source:     SourceSimulated,
		}
	}

	return forecast
}
