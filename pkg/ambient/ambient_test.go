package ambient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedAverage(t *testing.T) {
	avg, err := WeightedAverage([]float64{10, 20}, []float64{1, 1})
	assert.NoError(t, err)
	assert.Equal(t, 15.0, avg)

	avg, err = WeightedAverage([]float64{10, 20}, []float64{3, 1})
	assert.NoError(t, err)
	assert.Equal(t, 12.5, avg)

	_, err = WeightedAverage([]float64{10, 20}, []float64{1})
	assert.Error(t, err)

	_, err = WeightedAverage([]float64{10, 20}, []float64{0, 0})
	assert.Error(t, err)
}

func TestAggregate(t *testing.T) {
	samples := []Sample{
		{Zone: "livingroom", Area: 30, Temperature: 21.0, Humidity: 50},
		{Zone: "bedroom", Area: 15, Temperature: 19.0, Humidity: 55},
		{Zone: "study", Area: 15, Temperature: 20.0, Humidity: 45},
	}
	amb, err := Aggregate(samples, 3)
	assert.NoError(t, err)
	assert.Equal(t, 20.3, amb.Temperature) // (21*30+19*15+20*15)/60 = 20.25
	assert.Equal(t, 50.0, amb.Humidity)
	assert.InDelta(t, 9.5, amb.DewPoint, 0.2)
	assert.NotEmpty(t, amb.Perception)
}

func TestAggregateToleratesOneMissingOfThree(t *testing.T) {
	samples := []Sample{
		{Zone: "livingroom", Area: 30, Temperature: 21.0, Humidity: 50},
		{Zone: "bedroom", Area: 15, Temperature: 19.0, Humidity: 55},
	}
	_, err := Aggregate(samples, 3)
	assert.NoError(t, err)
}

func TestAggregateRefusesTwoMissingOfThree(t *testing.T) {
	samples := []Sample{
		{Zone: "livingroom", Area: 30, Temperature: 21.0, Humidity: 50},
	}
	_, err := Aggregate(samples, 3)
	assert.ErrorIs(t, err, ErrTooManyMissing)
}

func TestAggregateRefusesEmpty(t *testing.T) {
	_, err := Aggregate(nil, 1)
	assert.ErrorIs(t, err, ErrTooManyMissing)
}
