package vmc

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/drp-home/climatemaster/pkg/bus"
	"github.com/drp-home/climatemaster/pkg/config"
	"github.com/drp-home/climatemaster/pkg/controller"
	"github.com/drp-home/climatemaster/pkg/season"
	"github.com/drp-home/climatemaster/pkg/telemetry"
)

// mixing valve openings at or below this force the ventilation unit
// into heating support.
const supportValveThreshold = 60.0

type timeWindow int

const (
	windowClosed timeWindow = iota
	windowNight
	windowMidday
)

// windowFor buckets local wall clock time into the winter schedule.
func windowFor(now time.Time) timeWindow {
	h := now.Hour()
	switch {
	case h >= 2 && h < 9:
		return windowNight
	case h >= 12 && h < 15:
		return windowMidday
	}
	return windowClosed
}

// Controller drives the mechanical ventilation unit. Handlers are
// dispatched by effective season; only winter carries real scheduling
// today, the other seasons attach here later.
type Controller struct {
	act *controller.Actuator
	hub *config.Hub

	// alarmLatched arms after a high water temperature alarm fired
	// while the direct water supply was active. It clears only once
	// the water temperature drops back to ambient.
	alarmLatched bool

	handlers map[season.Label]func(*controller.Cycle) error
}

func New(b bus.Bus, snap *telemetry.Snapshot, hub *config.Hub) *Controller {
	c := &Controller{
		act: &controller.Actuator{Bus: b, Snap: snap},
		hub: hub,
	}
	c.handlers = map[season.Label]func(*controller.Cycle) error{
		season.Winter: c.winter,
		season.Spring: c.noop,
		season.Summer: c.noop,
		season.Autumn: c.noop,
	}
	return c
}

func (c *Controller) Reconcile(cycle *controller.Cycle) error {
	// windows open, or the sensor never reported, suspends ventilation
	// control entirely.
	if !c.act.Snap.IsOff(c.hub.Sensors.HomeWindows) {
		logrus.Debug("vmc: windows not closed, skipping")
		return nil
	}

	handler, ok := c.handlers[cycle.Season.Effective()]
	if !ok {
		logrus.WithField("season", cycle.Season.Effective()).Warn("vmc: no handler for season")
		return nil
	}
	return handler(cycle)
}

func (c *Controller) noop(cycle *controller.Cycle) error {
	logrus.WithField("season", cycle.Season.Effective()).Debug("vmc: season has no schedule")
	return nil
}

func (c *Controller) winter(cycle *controller.Cycle) error {
	dev := c.hub.Devices.VMC

	handled, err := c.supportInterlock(dev)
	if err != nil || handled {
		return err
	}

	if c.act.Snap.IsOn(dev.Power) {
		// back out of support posture before regular scheduling
		if err := c.act.EnsureOff(dev.ForceHeating); err != nil {
			return err
		}
		if err := c.act.EnsureOff(dev.WaterSupply); err != nil {
			return err
		}
	}

	switch windowFor(cycle.Now) {
	case windowNight:
		if err := c.schedule(dev, dev.Season.Off, 1, true); err != nil {
			return err
		}
	case windowMidday:
		if err := c.schedule(dev, dev.Season.Winter, 5, false); err != nil {
			return err
		}
	default:
		if c.act.Snap.IsOn(dev.Power) {
			if err := c.act.EnsureOff(dev.VentRecirculation); err != nil {
				return err
			}
			if err := c.act.EnsureOff(dev.Power); err != nil {
				return err
			}
		}
		return nil
	}

	return c.maintainSetpoints(dev, cycle)
}

// supportInterlock puts the unit into heating support while the
// radiant circuit runs with a mostly closed mixing valve. It takes
// priority over the schedule and reports handled when active.
func (c *Controller) supportInterlock(dev config.VMC) (bool, error) {
	rad := c.hub.Devices.Radiant
	valve, ok := c.act.Snap.Float(rad.MixValve)
	if !c.act.Snap.IsOn(rad.MixSupply) || !ok || valve > supportValveThreshold {
		return false, nil
	}

	logrus.WithField("mixValve", valve).Debug("vmc: heating support interlock active")
	if err := c.act.ForceOn(dev.Power); err != nil {
		return true, err
	}
	if err := c.act.EnsureOption(dev.Season.Actuator, dev.Season.Off); err != nil {
		return true, err
	}
	if err := c.act.ForceOn(dev.ForceHeating); err != nil {
		return true, err
	}
	return true, c.superviseWaterSupply(dev)
}

// superviseWaterSupply gates the direct hot water path behind the high
// water temperature alarm. The latch is a two state flag: armed by an
// alarm while the path is active, cleared once water cools to ambient.
func (c *Controller) superviseWaterSupply(dev config.VMC) error {
	if c.alarmLatched {
		water, okW := c.act.Snap.Float(dev.Sensors.TWater)
		ambientT, okA := c.act.Snap.Float(dev.Sensors.TAmbient)
		if okW && okA && water <= ambientT {
			c.alarmLatched = false
			logrus.Info("vmc: water temperature back to ambient, alarm latch cleared")
		} else {
			return c.act.EnsureOff(dev.WaterSupply)
		}
	}

	if c.act.Snap.IsOn(dev.Alarms.HighWaterTemp) {
		if c.act.Snap.IsOn(dev.WaterSupply) {
			c.alarmLatched = true
			logrus.Warn("vmc: high water temperature alarm, latching and closing supply")
			return c.act.EnsureOff(dev.WaterSupply)
		}
		return nil
	}

	if c.act.Snap.IsOff(dev.Alarms.HighWaterTemp) {
		return c.act.ForceOn(dev.WaterSupply)
	}
	return nil
}

// schedule applies one time window posture. A unit that is not yet
// reporting on gets only the power command, the rest follows next
// cycle once the state report lands.
func (c *Controller) schedule(dev config.VMC, mode string, spare float64, recirculate bool) error {
	if !c.act.Snap.IsOn(dev.Power) {
		return c.act.ForceOn(dev.Power)
	}
	if err := c.act.EnsureOption(dev.Season.Actuator, mode); err != nil {
		return err
	}
	if err := c.act.EnsureNumber(dev.SpareSetpoint, spare); err != nil {
		return err
	}
	if recirculate {
		return c.act.EnsureOn(dev.VentRecirculation)
	}
	return c.act.EnsureOff(dev.VentRecirculation)
}

// maintainSetpoints drives the unit's comfort targets while it runs.
func (c *Controller) maintainSetpoints(dev config.VMC, cycle *controller.Cycle) error {
	if !c.act.Snap.IsOn(dev.Power) {
		return nil
	}
	if err := c.act.EnsureNumber(dev.TSetpoint, cycle.Setpoints.PowerOff); err != nil {
		return err
	}
	return c.act.EnsureNumber(dev.HSetpoint, cycle.Zone.HumMax+cycle.Zone.DeltaHum)
}
