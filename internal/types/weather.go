package types

// WeatherCode is a WMO weather interpretation code as reported by Open-Meteo
// in the weather_code field
type WeatherCode int

const (
	// Sky
	CodeClearSky     WeatherCode = 0
	CodeMainlyClear  WeatherCode = 1
	CodePartlyCloudy WeatherCode = 2
	CodeOvercast     WeatherCode = 3

	// Fog
	CodeFog     WeatherCode = 45
	CodeRimeFog WeatherCode = 48

	// Drizzle
	CodeLightDrizzle         WeatherCode = 51
	CodeModerateDrizzle      WeatherCode = 53
	CodeDenseDrizzle         WeatherCode = 55
	CodeLightFreezingDrizzle WeatherCode = 56
	CodeDenseFreezingDrizzle WeatherCode = 57

	// Rain
	CodeSlightRain        WeatherCode = 61
	CodeModerateRain      WeatherCode = 63
	CodeHeavyRain         WeatherCode = 65
	CodeLightFreezingRain WeatherCode = 66
	CodeHeavyFreezingRain WeatherCode = 67

	// Snow
	CodeSlightSnow   WeatherCode = 71
	CodeModerateSnow WeatherCode = 73
	CodeHeavySnow    WeatherCode = 75
	CodeSnowGrains   WeatherCode = 77

	// Showers
	CodeSlightRainShowers   WeatherCode = 80
	CodeModerateRainShowers WeatherCode = 81
	CodeViolentRainShowers  WeatherCode = 82
	CodeSlightSnowShowers   WeatherCode = 85
	CodeHeavySnowShowers    WeatherCode = 86

	// Thunderstorms, hail only reported in central Europe
	CodeThunderstorm           WeatherCode = 95
	CodeThunderstormSlightHail WeatherCode = 96
	CodeThunderstormHeavyHail  WeatherCode = 99
)

var knownCodes = map[WeatherCode]bool{}

func init() {
	for _, c := range []WeatherCode{
		CodeClearSky, CodeMainlyClear, CodePartlyCloudy, CodeOvercast,
		CodeFog, CodeRimeFog,
		CodeLightDrizzle, CodeModerateDrizzle, CodeDenseDrizzle, CodeLightFreezingDrizzle, CodeDenseFreezingDrizzle,
		CodeSlightRain, CodeModerateRain, CodeHeavyRain, CodeLightFreezingRain, CodeHeavyFreezingRain,
		CodeSlightSnow, CodeModerateSnow, CodeHeavySnow, CodeSnowGrains,
		CodeSlightRainShowers, CodeModerateRainShowers, CodeViolentRainShowers, CodeSlightSnowShowers, CodeHeavySnowShowers,
		CodeThunderstorm, CodeThunderstormSlightHail, CodeThunderstormHeavyHail,
	} {
		knownCodes[c] = true
	}
}

// IsKnown reports whether c is a code the WMO table defines
func (c WeatherCode) IsKnown() bool {
	return knownCodes[c]
}
