package controller

import (
	"fmt"
	"strconv"
	"time"

	"github.com/drp-home/climatemaster/pkg/ambient"
	"github.com/drp-home/climatemaster/pkg/bus"
	"github.com/drp-home/climatemaster/pkg/season"
	"github.com/drp-home/climatemaster/pkg/telemetry"
)

// Cycle is the shared input of one decision pass. Built once per tick
// and handed to every controller.
type Cycle struct {
	Now       time.Time
	Season    *season.Estimate
	Zone      season.ComfortZone
	Setpoints season.Setpoints
	Ambient   *ambient.Ambient
}

type Controller interface {
	Reconcile(cycle *Cycle) error
}

// Actuator issues edge triggered commands: it only talks to the bus
// when the live state is known and differs from the wanted one, so a
// steady home produces a silent cycle.
type Actuator struct {
	Bus  bus.Bus
	Snap *telemetry.Snapshot
}

// EnsureOn commands the entity on when it is known to be off. An
// unknown state stays untouched.
func (a *Actuator) EnsureOn(id string) error {
	if id == "" || !a.Snap.IsOff(id) {
		return nil
	}
	return a.command(id, "on")
}

// EnsureOff commands the entity off when it is known to be on.
func (a *Actuator) EnsureOff(id string) error {
	if id == "" || !a.Snap.IsOn(id) {
		return nil
	}
	return a.command(id, "off")
}

// ForceOn commands the entity on unless it is already known on. Unlike
// EnsureOn an unknown state still triggers the command.
func (a *Actuator) ForceOn(id string) error {
	if id == "" || a.Snap.IsOn(id) {
		return nil
	}
	return a.command(id, "on")
}

// EnsureNumber commands a numeric setpoint when the reported value is
// known and differs.
func (a *Actuator) EnsureNumber(id string, value float64) error {
	if id == "" {
		return nil
	}
	current, ok := a.Snap.Float(id)
	if !ok || current == value {
		return nil
	}
	return a.command(id, strconv.FormatFloat(value, 'f', -1, 64))
}

// EnsureOption commands a selector option when the reported option is
// known and differs. Selector options keep their device casing, so the
// comparison goes through the raw reading.
func (a *Actuator) EnsureOption(id, option string) error {
	if id == "" || option == "" {
		return nil
	}
	r, ok := a.Snap.Get(id)
	if !ok || r.Value == option {
		return nil
	}
	return a.command(id, option)
}

func (a *Actuator) command(id, value string) error {
	if err := a.Bus.Command(id, value); err != nil {
		return fmt.Errorf("command %s=%s: %w", id, value, err)
	}
	return nil
}
