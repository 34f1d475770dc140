package season

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestZonesInvariants(t *testing.T) {
	assert.Len(t, Zones, 4)
	for label, zone := range Zones {
		assert.Less(t, zone.TempMin, zone.TempMax, "temp band for %s", label)
		assert.Less(t, zone.HumMin, zone.HumMax, "humidity band for %s", label)
		assert.Greater(t, zone.DeltaTemp, 0.0, "delta temp for %s", label)
		assert.Greater(t, zone.DeltaHum, 0.0, "delta hum for %s", label)
	}
}

func TestByDatePartitionsYear(t *testing.T) {
	// every day of a non leap and a leap year belongs to exactly one season
	for _, year := range []int{2025, 2024} {
		day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		for day.Year() == year {
			est, ok := ByDate(day)
			assert.True(t, ok, "no season for %s", day)
			if ok {
				assert.NotEmpty(t, est.Calendar)
			}
			day = day.AddDate(0, 0, 1)
		}
	}
}

func TestByDate(t *testing.T) {
	var tests = []struct {
		name     string
		date     time.Time
		expected Label
	}{
		{"mid winter", time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), Winter},
		{"winter start", time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), Winter},
		{"winter end non leap", time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), Winter},
		{"winter end leap", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), Winter},
		{"spring start", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), Spring},
		{"spring end", time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC), Spring},
		{"summer", time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC), Summer},
		{"autumn start", time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), Autumn},
		{"autumn end", time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC), Autumn},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			est, ok := ByDate(tt.date)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, est.Calendar)
			assert.Equal(t, est.Calendar, est.Overridden)
			assert.False(t, est.WeatherAnomaly)
		})
	}
}

func TestByDateDayCounts(t *testing.T) {
	est, ok := ByDate(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, 92, est.Days) // june + july + august
	assert.Equal(t, 30, est.Passed)
	assert.Equal(t, 61, est.Remaining)
	assert.Equal(t, est.Days, est.Passed+est.Remaining+1)
}

func TestFromForecastNoData(t *testing.T) {
	est := FromForecast(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), nil)
	assert.Equal(t, Winter, est.Calendar)
	assert.Equal(t, Winter, est.Overridden)
	assert.False(t, est.WeatherAnomaly)
}

func TestFromForecastMatchingCalendar(t *testing.T) {
	// cold forecast in january matches winter, no anomaly
	forecast := []Forecast{
		{Min: 12, Max: 21},
		{Min: 13, Max: 20},
		{Min: 12, Max: 22},
		{Min: 11, Max: 20},
		{Min: 13, Max: 21},
	}
	est := FromForecast(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), forecast)
	assert.Equal(t, Winter, est.Overridden)
	assert.False(t, est.WeatherAnomaly)
}

func TestFromForecastAnomaly(t *testing.T) {
	// five days trending warm in nominal winter flips the estimate
	forecast := []Forecast{
		{Min: 24, Max: 27},
		{Min: 25, Max: 27},
		{Min: 24, Max: 28},
		{Min: 25, Max: 26},
		{Min: 24, Max: 27},
	}
	est := FromForecast(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), forecast)
	assert.Equal(t, Winter, est.Calendar)
	assert.Equal(t, Summer, est.Overridden)
	assert.True(t, est.WeatherAnomaly)
}

func TestResolve(t *testing.T) {
	est, ok := ByDate(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	zone, ok := Resolve(est)
	assert.True(t, ok)
	assert.Equal(t, 17.5, zone.TempMin)

	zone, ok = Resolve(nil)
	assert.False(t, ok)
	assert.Zero(t, zone)

	est.Overridden = Label("monsoon")
	_, ok = Resolve(est)
	assert.False(t, ok)
}

func TestSetpoints(t *testing.T) {
	sp := Zones[Winter].Setpoints()
	assert.Equal(t, 18.5, sp.PowerOff) // midpoint 19.5 minus 2 deltas
	assert.Equal(t, 18.0, sp.PowerOn)
	assert.Less(t, sp.PowerOn, sp.PowerOff)
}
