package radiant

import (
	"github.com/sirupsen/logrus"

	"github.com/drp-home/climatemaster/pkg/bus"
	"github.com/drp-home/climatemaster/pkg/config"
	"github.com/drp-home/climatemaster/pkg/controller"
	"github.com/drp-home/climatemaster/pkg/history"
	"github.com/drp-home/climatemaster/pkg/season"
	"github.com/drp-home/climatemaster/pkg/telemetry"
)

const (
	// boiler water must be at least this warm before the supply path
	// opens.
	minSupplyTemp = 27.0
	minReturnTemp = 25.5

	// past this hour the radiant power is forced off for the night.
	shutoffHour = 22
)

// Controller drives the floor heating circuit and its thermal
// collector valves.
type Controller struct {
	act         *controller.Actuator
	hub         *config.Hub
	distributor *Distributor

	handlers map[season.Label]func(*controller.Cycle) error
}

func New(b bus.Bus, snap *telemetry.Snapshot, hub *config.Hub, querier history.Querier) *Controller {
	act := &controller.Actuator{Bus: b, Snap: snap}
	c := &Controller{
		act:         act,
		hub:         hub,
		distributor: &Distributor{act: act, history: querier},
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
	if !c.act.Snap.IsOff(c.hub.Sensors.HomeWindows) {
		logrus.Debug("radiant: windows not closed, skipping")
		return nil
	}
	if cycle.Ambient == nil {
		logrus.Debug("radiant: no ambient aggregate, skipping")
		return nil
	}

	handler, ok := c.handlers[cycle.Season.Effective()]
	if !ok {
		logrus.WithField("season", cycle.Season.Effective()).Warn("radiant: no handler for season")
		return nil
	}
	return handler(cycle)
}

func (c *Controller) noop(cycle *controller.Cycle) error {
	logrus.WithField("season", cycle.Season.Effective()).Debug("radiant: season has no schedule")
	return nil
}

func (c *Controller) winter(cycle *controller.Cycle) error {
	dev := c.hub.Devices.Radiant

	if c.act.Snap.IsOn(dev.Power) {
		if err := c.act.EnsureOption(dev.HeatSource.Actuator, dev.HeatSource.Heating); err != nil {
			return err
		}

		if cycle.Ambient.HeatIndex > cycle.Setpoints.PowerOff {
			if err := c.shutDownCircuit(dev); err != nil {
				return err
			}
		} else {
			if err := c.runCircuit(dev, cycle); err != nil {
				return err
			}
		}
	} else if err := c.cooldown(dev); err != nil {
		return err
	}

	if cycle.Now.Hour() >= shutoffHour {
		return c.act.EnsureOff(dev.Power)
	}
	return nil
}

// shutDownCircuit closes everything when the home is warm enough.
func (c *Controller) shutDownCircuit(dev config.Radiant) error {
	logrus.Debug("radiant: heat index above ceiling, shutting down")
	if err := c.act.EnsureOff(dev.MixSupply); err != nil {
		return err
	}
	if err := c.act.EnsureOff(dev.Power); err != nil {
		return err
	}
	return c.closeValves()
}

// runCircuit opens the supply when the boiler is warm enough, then
// lets the distributor balance the zones and the mixing valve.
func (c *Controller) runCircuit(dev config.Radiant, cycle *controller.Cycle) error {
	supply, okS := c.act.Snap.Float(dev.Sensors.BoilerSupply)
	ret, okR := c.act.Snap.Float(dev.Sensors.BoilerReturn)
	if okS && okR && supply > minSupplyTemp && ret > minReturnTemp {
		if err := c.act.ForceOn(dev.MixSupply); err != nil {
			return err
		}
	}

	percent, err := c.distributor.Distribute(c.hub.IndoorAreas(), cycle.Setpoints)
	if err != nil {
		return err
	}
	return c.act.EnsureNumber(dev.MixValve, percent)
}

// cooldown drains the circuit when the unit is off but the supply
// path is still pushing cooled water.
func (c *Controller) cooldown(dev config.Radiant) error {
	if !c.act.Snap.IsOn(dev.MixSupply) {
		return nil
	}
	ret, ok := c.act.Snap.Float(dev.Sensors.BoilerReturn)
	if !ok || ret >= minReturnTemp {
		return nil
	}

	logrus.WithField("return", ret).Info("radiant: cold return, draining circuit")
	if err := c.act.EnsureOff(dev.MixSupply); err != nil {
		return err
	}
	if err := c.act.EnsureOff(dev.Power); err != nil {
		return err
	}
	return c.closeValves()
}

func (c *Controller) closeValves() error {
	for _, area := range c.hub.RadiantAreas() {
		if err := c.act.EnsureOff(area.Valve); err != nil {
			return err
		}
	}
	return nil
}
