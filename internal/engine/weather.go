package engine

import "time"

type WeatherType string

const (
	WeatherDay    WeatherType = "day"
	WeatherNight  WeatherType = "night"
	WeatherSunset WeatherType = "sunset"
	WeatherCloudy WeatherType = "cloudy"
	WeatherRainy  WeatherType = "rainy"
)

type WeatherCondition struct {
	Type        WeatherType
	Description string
	Icon        string
}

var weatherConditions = map[WeatherType]WeatherCondition{
	WeatherDay:    {Type: WeatherDay, Description: "Sunny day", Icon: "☀️"},
	WeatherNight:  {Type: WeatherNight, Description: "Quiet night", Icon: "🌙"},
	WeatherSunset: {Type: WeatherSunset, Description: "Golden hour", Icon: "🌅"},
	WeatherCloudy: {Type: WeatherCloudy, Description: "Cloudy skies", Icon: "☁️"},
	WeatherRainy:  {Type: WeatherRainy, Description: "Light rain", Icon: "🌧️"},
}

// TimeOfDayWeather picks the decoration for the local hour of t.
func TimeOfDayWeather(t time.Time) WeatherType {
	switch h := t.Hour(); {
	case h >= 5 && h < 8:
		return WeatherSunset
	case h >= 8 && h < 18:
		return WeatherDay
	case h >= 18 && h < 20:
		return WeatherSunset
	default:
		return WeatherNight
	}
}

// WeatherAt is TimeOfDayWeather with a random chance of clouds (20%) or rain (10%).
func WeatherAt(t time.Time, rnd Rand) WeatherCondition {
	w := TimeOfDayWeather(t)
	switch r := rnd.Float64(); {
	case r > 0.8:
		w = WeatherCloudy
	case r > 0.7:
		w = WeatherRainy
	}
	return weatherConditions[w]
}
