package season

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Estimate is the season classification for a date, optionally overridden
// by the weather forecast.
type Estimate struct {
	Calendar       Label `json:"calendar"`
	Overridden     Label `json:"overridden"`
	WeatherAnomaly bool  `json:"weatherAnomaly"`
	Days           int   `json:"days"`
	Passed         int   `json:"passed"`
	Remaining      int   `json:"remaining"`
}

// Effective is the label controllers act on.
func (e *Estimate) Effective() Label {
	return e.Overridden
}

type monthDay struct {
	month time.Month
	day   int
}

type interval struct {
	start monthDay
	end   monthDay
}

// Season intervals as month/day pairs, normalized to the query year at
// lookup time. Winter wraps the year end.
var intervals = map[Label]interval{
	Winter: {start: monthDay{time.December, 1}, end: monthDay{time.February, 29}},
	Spring: {start: monthDay{time.March, 1}, end: monthDay{time.May, 31}},
	Summer: {start: monthDay{time.June, 1}, end: monthDay{time.August, 31}},
	Autumn: {start: monthDay{time.September, 1}, end: monthDay{time.November, 30}},
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// date builds a normalized day, clamping Feb 29 in non leap years so the
// winter interval end stays inside february.
func (md monthDay) date(year int) time.Time {
	day := md.day
	if md.month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, md.month, day, 0, 0, 0, 0, time.UTC)
}

// ByDate classifies a date into its season interval. The intervals
// partition the calendar, so ok is false only for a broken table.
func ByDate(d time.Time) (*Estimate, bool) {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	for label, iv := range intervals {
		start := iv.start.date(day.Year())
		end := iv.end.date(day.Year())

		if end.Before(start) {
			// wraps the year end: the query date sits either in the
			// trailing months (roll the end forward) or in the leading
			// ones (roll the start back).
			switch {
			case !day.Before(start):
				end = iv.end.date(day.Year() + 1)
			case !day.After(end):
				start = iv.start.date(day.Year() - 1)
			default:
				continue
			}
		}

		if !day.Before(start) && !day.After(end) {
			return &Estimate{
				Calendar:   label,
				Overridden: label,
				Days:       int(end.Sub(start).Hours()/24) + 1,
				Passed:     int(day.Sub(start).Hours() / 24),
				Remaining:  int(end.Sub(day).Hours() / 24),
			}, true
		}
	}
	return nil, false
}

// Forecast is one day of minimum/maximum temperature, ordered nearest
// day first.
type Forecast struct {
	Min float64
	Max float64
}

// FromForecast starts from the calendar season and overrides it with the
// season whose comfort band midpoint best matches the forecast. Nearby
// days weigh more (1.0 for today, decaying 0.1 per day). Without forecast
// data the calendar label stands and no anomaly is flagged.
func FromForecast(d time.Time, forecast []Forecast) *Estimate {
	est, ok := ByDate(d)
	if !ok {
		return nil
	}
	if len(forecast) == 0 {
		return est
	}

	scores := make(map[Label]float64, len(Zones))
	for i, f := range forecast {
		weight := 1.0 - float64(i)*0.1
		if weight <= 0 {
			break
		}
		for label, zone := range Zones {
			mid := zone.scoringMid()
			minDeviation := abs(f.Min - mid)
			maxDeviation := abs(f.Max - mid)
			scores[label] += weight * (1 / (1 + minDeviation + maxDeviation))
		}
	}

	selected := est.Calendar
	best := 0.0
	for label, score := range scores {
		if score > best || (score == best && label == est.Calendar) {
			selected = label
			best = score
		}
	}

	est.Overridden = selected
	est.WeatherAnomaly = selected != est.Calendar
	if est.WeatherAnomaly {
		logrus.WithFields(logrus.Fields{
			"calendar":   est.Calendar,
			"overridden": est.Overridden,
		}).Debug("season: weather anomaly detected")
	}
	return est
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
