package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drp-home/climatemaster/pkg/season"
	"github.com/drp-home/climatemaster/pkg/telemetry"
)

func TestForecasts(t *testing.T) {
	snap := telemetry.New(0)
	snap.Set("sensor.forecast_day0", `{"minTemp": 4.5, "maxTemp": 11.0}`)
	snap.Set("sensor.forecast_day1", `{"minTemp": 3.0, "maxTemp": 9.5}`)

	got := Forecasts(snap, []string{"sensor.forecast_day0", "sensor.forecast_day1"})
	assert.Equal(t, []season.Forecast{
		{Min: 4.5, Max: 11.0},
		{Min: 3.0, Max: 9.5},
	}, got)
}

func TestForecastsSkipsBadPayloads(t *testing.T) {
	snap := telemetry.New(0)
	snap.Set("sensor.forecast_day0", "unavailable")
	snap.Set("sensor.forecast_day1", `{"minTemp": 3.0}`)
	snap.Set("sensor.forecast_day2", `{"minTemp": 3.0, "maxTemp": 9.5}`)

	got := Forecasts(snap, []string{
		"sensor.forecast_day0",
		"sensor.forecast_day1",
		"sensor.forecast_day2",
		"sensor.forecast_day3", // never reported
	})
	assert.Equal(t, []season.Forecast{{Min: 3.0, Max: 9.5}}, got)
}
