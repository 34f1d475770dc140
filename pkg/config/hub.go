package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/drp-home/climatemaster/pkg/season"
)

// Hub describes the residence: its areas, the shared sensors and the
// two climate devices, all referenced by bus entity id.
type Hub struct {
	Name    string      `json:"name"`
	Areas   []Area      `json:"areas"`
	Sensors HomeSensors `json:"sensors"`
	Devices Devices     `json:"devices"`
	Weather []string    `json:"weather"` // daily forecast entities, nearest day first
}

// Area is one zone of the home. Mq is the floor area in square meters,
// used as the aggregation weight.
type Area struct {
	Name    string      `json:"name"`
	Indoor  bool        `json:"indoor"`
	Radiant bool        `json:"radiant"`
	Mq      float64     `json:"mq"`
	Sensors AreaSensors `json:"sensors"`
	Valve   string      `json:"valve"`
}

type AreaSensors struct {
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
}

type HomeSensors struct {
	// HomeWindows is on while any window is open.
	HomeWindows string `json:"homeWindows"`
}

type Devices struct {
	VMC     VMC     `json:"vmc"`
	Radiant Radiant `json:"radiant"`
}

// VMC is the mechanical ventilation unit.
type VMC struct {
	Power             string       `json:"power"`
	TSetpoint         string       `json:"tSetpoint"`
	HSetpoint         string       `json:"hSetpoint"`
	SpareSetpoint     string       `json:"spareSetpoint"`
	VentRecirculation string       `json:"ventRecirculation"`
	ForceHeating      string       `json:"forceHeating"`
	WaterSupply       string       `json:"waterSupply"`
	Season            SeasonSelect `json:"season"`
	Sensors           VMCSensors   `json:"sensors"`
	Alarms            VMCAlarms    `json:"alarms"`
}

// SeasonSelect is the unit's operating mode selector, the option
// string each season maps to and the passive pass-through option.
type SeasonSelect struct {
	Actuator string `json:"actuator"`
	Off      string `json:"off"`
	Winter   string `json:"winter"`
	Spring   string `json:"spring"`
	Summer   string `json:"summer"`
	Autumn   string `json:"autumn"`
}

// Option returns the selector option for a season label.
func (s SeasonSelect) Option(label season.Label) string {
	switch label {
	case season.Winter:
		return s.Winter
	case season.Spring:
		return s.Spring
	case season.Summer:
		return s.Summer
	case season.Autumn:
		return s.Autumn
	}
	return ""
}

type VMCSensors struct {
	TWater   string `json:"tWater"`
	TAmbient string `json:"tAmbient"`
}

type VMCAlarms struct {
	HighWaterTemp string `json:"highWaterTemp"`
	Alarm         string `json:"alarm"`
}

// Radiant is the floor heating circuit.
type Radiant struct {
	Power      string         `json:"power"`
	MixSupply  string         `json:"mixSupply"`
	MixValve   string         `json:"mixValve"`
	HeatSource HeatSource     `json:"heatSource"`
	Sensors    RadiantSensors `json:"sensors"`
}

// HeatSource is the boiler mode selector feeding the radiant circuit.
type HeatSource struct {
	Actuator string `json:"actuator"`
	Heating  string `json:"heating"`
}

type RadiantSensors struct {
	BoilerSupply string `json:"boilerSupply"`
	BoilerReturn string `json:"boilerReturn"`
}

// LoadHub reads and validates the hub file.
func LoadHub(path string) (*Hub, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading hub file: %w", err)
	}
	hub := &Hub{}
	if err := json.Unmarshal(b, hub); err != nil {
		return nil, fmt.Errorf("error parsing hub file: %w", err)
	}
	if err := hub.Validate(); err != nil {
		return nil, err
	}
	return hub, nil
}

func (h *Hub) Validate() error {
	if len(h.Areas) == 0 {
		return fmt.Errorf("hub %q has no areas", h.Name)
	}
	for _, a := range h.Areas {
		if a.Indoor && a.Sensors.Temperature == "" {
			return fmt.Errorf("indoor area %q has no temperature sensor", a.Name)
		}
		if a.Radiant && a.Valve == "" {
			return fmt.Errorf("radiant area %q has no valve", a.Name)
		}
	}
	return nil
}

// IndoorAreas filters the zones that take part in ambient aggregation,
// those both indoor and served by the radiant circuit.
func (h *Hub) IndoorAreas() []Area {
	var out []Area
	for _, a := range h.Areas {
		if a.Indoor && a.Radiant {
			out = append(out, a)
		}
	}
	return out
}

// RadiantAreas filters the zones with a floor heating loop.
func (h *Hub) RadiantAreas() []Area {
	var out []Area
	for _, a := range h.Areas {
		if a.Radiant {
			out = append(out, a)
		}
	}
	return out
}

// EntityIDs lists every entity the hub references, for the bus
// subscription.
func (h *Hub) EntityIDs() []string {
	var ids []string
	add := func(id string) {
		if id != "" {
			ids = append(ids, id)
		}
	}

	for _, a := range h.Areas {
		add(a.Sensors.Temperature)
		add(a.Sensors.Humidity)
		add(a.Valve)
	}
	add(h.Sensors.HomeWindows)

	vmc := h.Devices.VMC
	add(vmc.Power)
	add(vmc.TSetpoint)
	add(vmc.HSetpoint)
	add(vmc.SpareSetpoint)
	add(vmc.VentRecirculation)
	add(vmc.ForceHeating)
	add(vmc.WaterSupply)
	add(vmc.Season.Actuator)
	add(vmc.Sensors.TWater)
	add(vmc.Sensors.TAmbient)
	add(vmc.Alarms.HighWaterTemp)
	add(vmc.Alarms.Alarm)

	rad := h.Devices.Radiant
	add(rad.Power)
	add(rad.MixSupply)
	add(rad.MixValve)
	add(rad.HeatSource.Actuator)
	add(rad.Sensors.BoilerSupply)
	add(rad.Sensors.BoilerReturn)

	for _, w := range h.Weather {
		add(w)
	}
	return ids
}
