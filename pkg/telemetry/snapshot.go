package telemetry

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Reading is the last reported value of one entity.
type Reading struct {
	Value   string
	Updated time.Time
}

// Snapshot caches the latest reading per entity id. Writers are the bus
// subscription and the pollers, readers are the controllers, so access
// is guarded by a RWMutex.
type Snapshot struct {
	mutex    sync.RWMutex
	readings map[string]Reading

	// readings older than maxAge are treated as absent. Zero disables
	// the check.
	maxAge time.Duration
}

func New(maxAge time.Duration) *Snapshot {
	return &Snapshot{
		readings: make(map[string]Reading),
		maxAge:   maxAge,
	}
}

func (s *Snapshot) Set(id, value string) {
	s.SetAt(id, value, time.Now())
}

func (s *Snapshot) SetAt(id, value string, at time.Time) {
	if id == "" {
		return
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.readings[id] = Reading{Value: value, Updated: at}
}

// Get returns the cached reading. ok is false when the entity never
// reported or its reading aged out.
func (s *Snapshot) Get(id string) (Reading, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	r, ok := s.readings[id]
	if !ok {
		return Reading{}, false
	}
	if s.maxAge > 0 && time.Since(r.Updated) > s.maxAge {
		return Reading{}, false
	}
	return r, true
}

// Float parses the reading as a number. Unparsable or missing readings
// report ok false, they are never zero valued.
func (s *Snapshot) Float(id string) (float64, bool) {
	r, ok := s.Get(id)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(r.Value), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// State returns the reading normalized to lower case.
func (s *Snapshot) State(id string) (string, bool) {
	r, ok := s.Get(id)
	if !ok {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(r.Value)), true
}

// IsOn reports whether the entity is known to be on. Missing or stale
// readings count as not on.
func (s *Snapshot) IsOn(id string) bool {
	state, ok := s.State(id)
	return ok && state == "on"
}

// IsOff reports whether the entity is known to be off. This is not the
// negation of IsOn, unknown entities are neither.
func (s *Snapshot) IsOff(id string) bool {
	state, ok := s.State(id)
	return ok && state == "off"
}
