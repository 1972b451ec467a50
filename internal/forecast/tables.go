package forecast

import (
	"fmt"

	"weatherscope/internal/types"
)

// Condition names
const (
	ConditionClear             = "Clear"
	ConditionMainlyClear       = "Mainly Clear"
	ConditionPartlyCloudy      = "Partly Cloudy"
	ConditionOvercast          = "Overcast"
	ConditionFog               = "Fog"
	ConditionLightDrizzle      = "Light Drizzle"
	ConditionModerateDrizzle   = "Moderate Drizzle"
	ConditionHeavyDrizzle      = "Heavy Drizzle"
	ConditionLightRain         = "Light Rain"
	ConditionModerateRain      = "Moderate Rain"
	ConditionHeavyRain         = "Heavy Rain"
	ConditionLightSnow         = "Light Snow"
	ConditionModerateSnow      = "Moderate Snow"
	ConditionHeavySnow         = "Heavy Snow"
	ConditionRainShowers       = "Rain Showers"
	ConditionHeavyRainShowers  = "Heavy Rain Showers"
	ConditionThunderstorm      = "Thunderstorm"
	ConditionClearNight        = "Clear Night"
	ConditionPartlyCloudyNight = "Partly Cloudy Night"
)

// Season of the year, derived from the request month
type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonFall   Season = "Fall"
)

// Region is a group of city name fragments sharing a temperature offset
type Region struct {
	Name      string
	Fragments []string // lower case
	Offset    int
}

// SeasonProfile is the synthetic reading used for a season when upstream is down
type SeasonProfile struct {
	BaseTemperature float64
	Humidity        float64
	Precipitation   float64
	WindSpeedKph    int
	Condition       string
}

// Tables holds the lookup data of the normalizer. Values are never modified
// after construction; build a different Tables to substitute data in tests.
type Tables struct {
	Conditions       map[types.WeatherCode]string
	DefaultCondition string

	// Night covers hours >= NightStart or < NightEnd
	NightStart int
	NightEnd   int

	// Regions are tested in order, the first match wins
	Regions []Region

	Seasons    map[Season]SeasonProfile
	// HourDeltas is the simulated temperature change for each hour of the day
	HourDeltas [24]int
}

// DefaultTables returns a fresh copy of the built-in lookup data
func DefaultTables() Tables {
	return Tables{
		Conditions: map[types.WeatherCode]string{
			types.CodeClearSky:               ConditionClear,
			types.CodeMainlyClear:            ConditionMainlyClear,
			types.CodePartlyCloudy:           ConditionPartlyCloudy,
			types.CodeOvercast:               ConditionOvercast,
			types.CodeFog:                    ConditionFog,
			types.CodeRimeFog:                ConditionFog,
			types.CodeLightDrizzle:           ConditionLightDrizzle,
			types.CodeModerateDrizzle:        ConditionModerateDrizzle,
			types.CodeDenseDrizzle:           ConditionHeavyDrizzle,
			types.CodeSlightRain:             ConditionLightRain,
			types.CodeModerateRain:           ConditionModerateRain,
			types.CodeHeavyRain:              ConditionHeavyRain,
			types.CodeSlightSnow:             ConditionLightSnow,
			types.CodeModerateSnow:           ConditionModerateSnow,
			types.CodeHeavySnow:              ConditionHeavySnow,
			types.CodeSlightRainShowers:      ConditionRainShowers,
			types.CodeModerateRainShowers:    ConditionRainShowers,
			types.CodeViolentRainShowers:     ConditionHeavyRainShowers,
			types.CodeThunderstorm:           ConditionThunderstorm,
			types.CodeThunderstormSlightHail: ConditionThunderstorm,
			types.CodeThunderstormHeavyHail:  ConditionThunderstorm,
		},
		DefaultCondition: ConditionClear,
		NightStart:       18,
		NightEnd:         6,
		Regions: []Region{
			{
				Name:      "mountain",
				Fragments: []string{"shimla", "manali", "darjeeling", "nainital", "mussoorie"},
				Offset:    -2,
			},
			{
				Name:      "coastal",
				Fragments: []string{"mumbai", "chennai", "kolkata", "goa", "kochi"},
				Offset:    1,
			},
			{
				Name:      "desert",
				Fragments: []string{"jaisalmer", "jodhpur", "bikaner"},
				Offset:    2,
			},
		},
		Seasons: map[Season]SeasonProfile{
			SeasonWinter: {BaseTemperature: 14, Humidity: 55, Precipitation: 0, WindSpeedKph: 10, Condition: ConditionMainlyClear},
			SeasonSpring: {BaseTemperature: 24, Humidity: 45, Precipitation: 0, WindSpeedKph: 12, Condition: ConditionClear},
			SeasonSummer: {BaseTemperature: 31, Humidity: 70, Precipitation: 2.5, WindSpeedKph: 14, Condition: ConditionPartlyCloudy},
			SeasonFall:   {BaseTemperature: 23, Humidity: 60, Precipitation: 0.5, WindSpeedKph: 9, Condition: ConditionClear},
		},
		HourDeltas: [24]int{
			-4, -4, -4, -4, -4, -4, // 00-05
			-2, -2, -2,             // 06-08
			1, 1, 1,                // 09-11
			4, 4, 4, 4,             // 12-15
			2, 2,                   // 16-17
			0, 0, 0,                // 18-20
			-2, -2, -2,             // 21-23
		},
	}
}

// Validate reports tables that cannot produce a forecast
func (t Tables) Validate() error {
	if t.DefaultCondition == "" {
		return fmt.Errorf("default condition is empty")
	}
	if t.NightStart < 0 || t.NightStart > 24 || t.NightEnd < 0 || t.NightEnd > 24 {
		return fmt.Errorf("night hours out of range: start=%d end=%d", t.NightStart, t.NightEnd)
	}
	for code := range t.Conditions {
		if !code.IsKnown() {
			return fmt.Errorf("condition mapped for unknown weather code %d", code)
		}
	}
	for _, season := range []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall} {
		if _, ok := t.Seasons[season]; !ok {
			return fmt.Errorf("missing season profile %s", season)
		}
	}
	return nil
}
