package alarm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveAlarms(t *testing.T) {
	a := &ActiveAlarms{}

	assert.True(t, a.Add("high_water_temp"))
	assert.False(t, a.Add("high_water_temp"))
	assert.True(t, a.Add("device_fault"))
	assert.Equal(t, []string{"high_water_temp", "device_fault"}, a.Active())

	assert.True(t, a.Remove("high_water_temp"))
	assert.False(t, a.Remove("high_water_temp"))
	assert.Equal(t, []string{"device_fault"}, a.Active())

	assert.True(t, a.Clear())
	assert.False(t, a.Clear())
	assert.Empty(t, a.Active())
}
