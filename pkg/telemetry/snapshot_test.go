package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot(t *testing.T) {
	snap := New(0)

	_, ok := snap.Get("sensor.livingroom_temp")
	assert.False(t, ok)

	snap.Set("sensor.livingroom_temp", "21.4")
	v, ok := snap.Float("sensor.livingroom_temp")
	assert.True(t, ok)
	assert.Equal(t, 21.4, v)

	snap.Set("sensor.livingroom_temp", "unavailable")
	_, ok = snap.Float("sensor.livingroom_temp")
	assert.False(t, ok)
}

func TestSnapshotStates(t *testing.T) {
	snap := New(0)
	snap.Set("switch.vmc_power", "ON")

	state, ok := snap.State("switch.vmc_power")
	assert.True(t, ok)
	assert.Equal(t, "on", state)
	assert.True(t, snap.IsOn("switch.vmc_power"))
	assert.False(t, snap.IsOff("switch.vmc_power"))

	// unknown entity is neither on nor off
	assert.False(t, snap.IsOn("switch.radiant_power"))
	assert.False(t, snap.IsOff("switch.radiant_power"))
}

func TestSnapshotMaxAge(t *testing.T) {
	snap := New(time.Minute)
	snap.SetAt("sensor.bedroom_temp", "19.0", time.Now().Add(-2*time.Minute))
	_, ok := snap.Get("sensor.bedroom_temp")
	assert.False(t, ok)

	snap.Set("sensor.bedroom_temp", "19.0")
	_, ok = snap.Get("sensor.bedroom_temp")
	assert.True(t, ok)
}

func TestSnapshotIgnoresEmptyID(t *testing.T) {
	snap := New(0)
	snap.Set("", "on")
	_, ok := snap.Get("")
	assert.False(t, ok)
}
