package history

import (
	"context"
	"sync"
	"time"
)

type record struct {
	state string
	at    time.Time
}

// Memory keeps recent state reports in process. It backs deployments
// without a clickhouse instance and the tests. Records older than
// retention are pruned on write.
type Memory struct {
	mutex     sync.Mutex
	records   map[string][]record
	retention time.Duration
}

func NewMemory(retention time.Duration) *Memory {
	return &Memory{
		records:   make(map[string][]record),
		retention: retention,
	}
}

func (m *Memory) Record(entity, state string, at time.Time) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	cutoff := time.Now().Add(-m.retention)
	kept := m.records[entity][:0]
	for _, r := range m.records[entity] {
		if r.at.After(cutoff) {
			kept = append(kept, r)
		}
	}
	m.records[entity] = append(kept, record{state: state, at: at})
	return nil
}

func (m *Memory) CountInState(_ context.Context, entity, state string, lookback time.Duration) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	cutoff := time.Now().Add(-lookback)
	count := 0
	for _, r := range m.records[entity] {
		if r.state == state && r.at.After(cutoff) {
			count++
		}
	}
	return count, nil
}
