package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeOfDayWeather(t *testing.T) {
	tests := []struct {
		hour int
		want WeatherType
	}{
		{0, WeatherNight},
		{4, WeatherNight},
		{5, WeatherSunset},
		{7, WeatherSunset},
		{8, WeatherDay},
		{17, WeatherDay},
		{18, WeatherSunset},
		{19, WeatherSunset},
		{20, WeatherNight},
		{23, WeatherNight},
	}
	for _, tt := range tests {
		at := time.Date(2026, 3, 2, tt.hour, 30, 0, 0, time.UTC)
		assert.Equal(t, tt.want, TimeOfDayWeather(at), "hour %d", tt.hour)
	}
}

func TestWeatherAtRandomOverride(t *testing.T) {
	noon := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, WeatherDay, WeatherAt(noon, fixedRand{f: 0.5}).Type)
	assert.Equal(t, WeatherRainy, WeatherAt(noon, fixedRand{f: 0.75}).Type)
	assert.Equal(t, WeatherCloudy, WeatherAt(noon, fixedRand{f: 0.9}).Type)
	assert.NotEmpty(t, WeatherAt(noon, fixedRand{}).Icon)
}

func TestParseHelpers(t *testing.T) {
	f, err := ParseFrequency(" Weekly ")
	assert.NoError(t, err)
	assert.Equal(t, FrequencyWeekly, f)
	_, err = ParseFrequency("hourly")
	assert.Error(t, err)

	p, err := ParsePriority("")
	assert.NoError(t, err)
	assert.Equal(t, PriorityMedium, p)

	m, err := ParseJournalMood("")
	assert.NoError(t, err)
	assert.Equal(t, JournalNeutral, m)
}
