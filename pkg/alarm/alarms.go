package alarm

import "sync"

// ActiveAlarms tracks which device alarms are currently raised so the
// control loop logs each one once instead of every cycle.
type ActiveAlarms struct {
	activeAlarms []string
	sync.RWMutex
}

// Add adds the alarm and returns true if it was added. Returns false
// if it is already active.
func (a *ActiveAlarms) Add(alarm string) bool {
	a.Lock()
	defer a.Unlock()
	for _, activeAlarm := range a.activeAlarms {
		if activeAlarm == alarm {
			return false
		}
	}

	a.activeAlarms = append(a.activeAlarms, alarm)
	return true
}

// Remove retracts the alarm and returns true if it was active.
func (a *ActiveAlarms) Remove(alarm string) bool {
	a.Lock()
	defer a.Unlock()
	for i, activeAlarm := range a.activeAlarms {
		if activeAlarm == alarm {
			a.activeAlarms = append(a.activeAlarms[:i], a.activeAlarms[i+1:]...)
			return true
		}
	}
	return false
}

// Active returns a copy of the raised alarms.
func (a *ActiveAlarms) Active() []string {
	a.RLock()
	defer a.RUnlock()
	out := make([]string, len(a.activeAlarms))
	copy(out, a.activeAlarms)
	return out
}

// Clear drops every alarm and reports whether any were active.
func (a *ActiveAlarms) Clear() bool {
	hasActive := false
	a.Lock()
	if len(a.activeAlarms) > 0 {
		hasActive = true
		a.activeAlarms = nil
	}
	a.Unlock()
	return hasActive
}
