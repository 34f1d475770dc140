package weather

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/drp-home/climatemaster/pkg/season"
	"github.com/drp-home/climatemaster/pkg/telemetry"
)

type dailyForecast struct {
	MinTemp *float64 `json:"minTemp"`
	MaxTemp *float64 `json:"maxTemp"`
}

// Forecasts reads the configured daily forecast entities from the
// snapshot, nearest day first. Entities that never reported or carry a
// malformed payload are skipped, an empty result simply means the
// season estimator falls back to the calendar.
func Forecasts(snap *telemetry.Snapshot, ids []string) []season.Forecast {
	var out []season.Forecast
	for _, id := range ids {
		r, ok := snap.Get(id)
		if !ok {
			continue
		}
		var day dailyForecast
		if err := json.Unmarshal([]byte(r.Value), &day); err != nil || day.MinTemp == nil || day.MaxTemp == nil {
			logrus.WithField("entity", id).Warn("weather: skipping malformed forecast")
			continue
		}
		out = append(out, season.Forecast{Min: *day.MinTemp, Max: *day.MaxTemp})
	}
	return out
}
