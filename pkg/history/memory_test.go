package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCountInState(t *testing.T) {
	m := NewMemory(24 * time.Hour)
	now := time.Now()

	assert.NoError(t, m.Record("switch.livingroom_valve", "on", now.Add(-90*time.Minute)))
	assert.NoError(t, m.Record("switch.livingroom_valve", "off", now.Add(-60*time.Minute)))
	assert.NoError(t, m.Record("switch.livingroom_valve", "on", now.Add(-10*time.Minute)))
	assert.NoError(t, m.Record("switch.bedroom_valve", "on", now.Add(-10*time.Minute)))

	count, err := m.CountInState(context.Background(), "switch.livingroom_valve", "on", 2*time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = m.CountInState(context.Background(), "switch.livingroom_valve", "on", 30*time.Minute)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = m.CountInState(context.Background(), "switch.kitchen_valve", "on", 2*time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMemoryPrunes(t *testing.T) {
	m := NewMemory(time.Hour)
	now := time.Now()

	assert.NoError(t, m.Record("switch.livingroom_valve", "on", now.Add(-2*time.Hour)))
	assert.NoError(t, m.Record("switch.livingroom_valve", "on", now))

	assert.Len(t, m.records["switch.livingroom_valve"], 1)
}
