package forecast

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"weatherscope/internal/types"
)

// Icon codes
const (
	IconClearDay     = "01d"
	IconClearNight   = "01n"
	IconCloudsDay    = "02d"
	IconCloudsNight  = "02n"
	IconOvercast     = "03d"
	IconRain         = "10d"
	IconThunderstorm = "11d"
	IconSnow         = "13d"
	IconFog          = "50d"
)

// iconRules are checked in order against the case folded condition
var iconRules = []struct {
	fragment string
	icon     string
}{
	{"clear", IconClearDay},
	{"cloud", IconCloudsDay},
	{"overcast", IconOvercast},
	{"rain", IconRain},
	{"snow", IconSnow},
	{"thunder", IconThunderstorm},
	{"fog", IconFog},
}

// ConditionOf maps a WMO weather code to a condition name.
// Unmapped codes return the default condition.
func (n *Normalizer) ConditionOf(code int) string {
	if condition, ok := n.tables.Conditions[types.WeatherCode(code)]; ok {
		return condition
	}
	return n.tables.DefaultCondition
}

// IsNight reports whether an hour of day falls in the night window
func (n *Normalizer) IsNight(hour int) bool {
	return hour >= n.tables.NightStart || hour < n.tables.NightEnd
}

// ApplyNight recodes clear and cloudy conditions for night hours.
// Precipitation, fog and storm conditions keep their daytime names.
func (n *Normalizer) ApplyNight(condition string, hour int) string {
	if !n.IsNight(hour) {
		return condition
	}
	switch {
	case strings.Contains(condition, "Clear"):
		return ConditionClearNight
	case strings.Contains(condition, "Cloud"):
		return ConditionPartlyCloudyNight
	}
	return condition
}

// IconFor derives the icon code of a condition name
func IconFor(condition string) string {
	c := cases.Fold().String(condition)

	if strings.Contains(c, "night") {
		if strings.Contains(c, "clear") {
			return IconClearNight
		}
		return IconCloudsNight
	}

	for _, rule := range iconRules {
		if strings.Contains(c, rule.fragment) {
			return rule.icon
		}
	}
	return IconClearDay
}

// RegionalAdjustment returns the temperature offset of the first region
// with a fragment contained in the city name, or 0.
func (n *Normalizer) RegionalAdjustment(city string) int {
	folded := cases.Fold().String(city)
	for _, region := range n.tables.Regions {
		for _, fragment := range region.Fragments {
			if strings.Contains(folded, fragment) {
				return region.Offset
			}
		}
	}
	return 0
}

// SeasonOf returns the season of a month
func SeasonOf(month time.Month) Season {
	switch {
	case month == time.December || month <= time.February:
		return SeasonWinter
	case month <= time.May:
		return SeasonSpring
	case month <= time.August:
		return SeasonSummer
	default:
		return SeasonFall
	}
}
