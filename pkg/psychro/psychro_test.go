package psychro

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeatIndex(t *testing.T) {
	var tests = []struct {
		name        string
		temperature float64
		humidity    float64
		expected    float64
	}{
		{
			name:        "reference value",
			temperature: 20,
			humidity:    50,
			expected:    19.4,
		},
		{
			name:        "warm and humid",
			temperature: 27,
			humidity:    80,
			expected:    27.8,
		},
		{
			name:        "dry winter air",
			temperature: 18,
			humidity:    30,
			expected:    16.6,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			actual := math.Round(HeatIndex(tt.temperature, tt.humidity)*10) / 10
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestHeatIndexDeterministic(t *testing.T) {
	assert.Equal(t, HeatIndex(21.3, 55.2), HeatIndex(21.3, 55.2))
}

func TestDewPoint(t *testing.T) {
	dp, err := DewPoint(20, 50)
	assert.NoError(t, err)
	assert.InDelta(t, 9.3, dp, 0.1)

	dp, err = DewPoint(20, 100)
	assert.NoError(t, err)
	assert.InDelta(t, 20.0, dp, 0.01) // saturated air

	_, err = DewPoint(20, 0)
	assert.Error(t, err)
	_, err = DewPoint(20, -5)
	assert.Error(t, err)
	_, err = DewPoint(20, 140)
	assert.Error(t, err)
}

func TestDewPointPerception(t *testing.T) {
	assert.Equal(t, PerceptionDry, DewPointPerception(9.9))
	assert.Equal(t, PerceptionVeryComfortable, DewPointPerception(10))
	assert.Equal(t, PerceptionComfortable, DewPointPerception(13))
	assert.Equal(t, PerceptionOkButHumid, DewPointPerception(16))
	assert.Equal(t, PerceptionSomewhatUncomfortable, DewPointPerception(18))
	assert.Equal(t, PerceptionQuiteUncomfortable, DewPointPerception(21))
	assert.Equal(t, PerceptionExtremelyUncomfortable, DewPointPerception(24))
	assert.Equal(t, PerceptionSeverelyHigh, DewPointPerception(26))
}
