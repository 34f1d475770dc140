package ambient

import (
	"errors"
	"fmt"
	"math"

	"github.com/drp-home/climatemaster/pkg/psychro"
)

// ErrTooManyMissing means too few zones reported to trust an aggregate.
var ErrTooManyMissing = errors.New("too many zones missing")

// Sample is one zone's indoor reading, weighted by floor area.
type Sample struct {
	Zone        string
	Area        float64
	Temperature float64
	Humidity    float64
}

// Ambient is the whole home indoor state aggregated over the reporting
// zones, with the derived comfort figures.
type Ambient struct {
	Temperature float64            `json:"temperature"`
	Humidity    float64            `json:"humidity"`
	DewPoint    float64            `json:"dewPoint"`
	HeatIndex   float64            `json:"heatIndex"`
	Perception  psychro.Perception `json:"perception"`
}

// WeightedAverage averages values by the matching weights.
func WeightedAverage(values, weights []float64) (float64, error) {
	if len(values) != len(weights) {
		return 0, fmt.Errorf("got %d values but %d weights", len(values), len(weights))
	}
	var sum, total float64
	for i, v := range values {
		sum += v * weights[i]
		total += weights[i]
	}
	if total == 0 {
		return 0, errors.New("weights sum to zero")
	}
	return sum / total, nil
}

// Aggregate folds the reporting zones into one area weighted ambient
// state. configured is the number of zones that should be reporting;
// up to a third of them (rounded) may be absent before the aggregate
// is refused with ErrTooManyMissing.
func Aggregate(samples []Sample, configured int) (*Ambient, error) {
	missing := configured - len(samples)
	tolerated := int(math.Round(float64(configured) / 3))
	if len(samples) == 0 || missing > tolerated {
		return nil, fmt.Errorf("%w: %d of %d zones absent", ErrTooManyMissing, missing, configured)
	}

	temps := make([]float64, len(samples))
	hums := make([]float64, len(samples))
	weights := make([]float64, len(samples))
	for i, s := range samples {
		temps[i] = s.Temperature
		hums[i] = s.Humidity
		weights[i] = s.Area
	}

	temperature, err := WeightedAverage(temps, weights)
	if err != nil {
		return nil, fmt.Errorf("aggregate temperature: %w", err)
	}
	humidity, err := WeightedAverage(hums, weights)
	if err != nil {
		return nil, fmt.Errorf("aggregate humidity: %w", err)
	}

	temperature = round1(temperature)
	humidity = round1(humidity)

	dewPoint, err := psychro.DewPoint(temperature, humidity)
	if err != nil {
		return nil, fmt.Errorf("aggregate dew point: %w", err)
	}

	return &Ambient{
		Temperature: temperature,
		Humidity:    humidity,
		DewPoint:    round1(dewPoint),
		HeatIndex:   round1(psychro.HeatIndex(temperature, humidity)),
		Perception:  psychro.DewPointPerception(dewPoint),
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
