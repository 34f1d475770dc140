package radiant

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/drp-home/climatemaster/pkg/config"
	"github.com/drp-home/climatemaster/pkg/controller"
	"github.com/drp-home/climatemaster/pkg/history"
	"github.com/drp-home/climatemaster/pkg/season"
)

const (
	// dwellLookback is the window the valve interlock inspects.
	dwellLookback = 120 * time.Minute

	// areaPadding inflates the total when not every zone calls for
	// heat, keeping the mixing percentage off full saturation.
	areaPadding = 10.0

	// minMixPercent is the mixing valve floor.
	minMixPercent = 50.0

	historyTimeout = 5 * time.Second
)

// Distributor walks the radiant zones, toggles their collector valves
// against the comfort thresholds and recommends a mixing valve
// opening from the share of floor area calling for heat.
type Distributor struct {
	act     *controller.Actuator
	history history.Querier
}

// Distribute runs one valve pass and returns the mixing valve percent.
func (d *Distributor) Distribute(areas []config.Area, setpoints season.Setpoints) (float64, error) {
	var totalArea, openedArea float64

	for _, area := range areas {
		if area.Valve == "" {
			continue
		}
		temperature, okT := d.act.Snap.Float(area.Sensors.Temperature)
		_, okH := d.act.Snap.Float(area.Sensors.Humidity)
		if !okT || !okH {
			logrus.WithField("area", area.Name).Debug("distributor: readings missing, holding valve")
			continue
		}
		totalArea += area.Mq
		if d.act.Snap.IsOn(area.Valve) {
			openedArea += area.Mq
		}

		switch {
		case temperature > setpoints.PowerOff:
			if err := d.act.EnsureOff(area.Valve); err != nil {
				return 0, err
			}
		case temperature <= setpoints.PowerOn || d.zeroDwell(area.Valve):
			if err := d.act.EnsureOn(area.Valve); err != nil {
				return 0, err
			}
		}
		// between the thresholds the valve holds its state
	}

	if totalArea == 0 {
		return minMixPercent, nil
	}
	if openedArea < totalArea {
		totalArea += areaPadding
	}
	percent := math.Round((1 - (totalArea-openedArea)/totalArea) * 100)
	return math.Max(minMixPercent, percent), nil
}

// zeroDwell reports whether the valve spent no time on within the
// lookback. Query failures count as zero dwell, failing toward heat.
func (d *Distributor) zeroDwell(valve string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()

	count, err := d.history.CountInState(ctx, valve, "on", dwellLookback)
	if err != nil {
		logrus.WithError(err).WithField("valve", valve).Warn("distributor: dwell query failed")
		return true
	}
	return count == 0
}
