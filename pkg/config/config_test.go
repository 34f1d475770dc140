package config

import (
	"encoding/json"
	"testing"

	"github.com/drp-home/climatemaster/pkg/season"
	"github.com/stretchr/testify/assert"
)

const testHub = `
{
  "name": "casa",
  "areas": [
    {
      "name": "livingroom",
      "indoor": true,
      "radiant": true,
      "mq": 30,
      "sensors": {
        "temperature": "sensor.livingroom_temperature",
        "humidity": "sensor.livingroom_humidity"
      },
      "valve": "switch.livingroom_valve"
    },
    {
      "name": "garage",
      "indoor": false,
      "radiant": false,
      "mq": 20,
      "sensors": {}
    }
  ],
  "sensors": {
    "homeWindows": "binary_sensor.home_windows"
  },
  "devices": {
    "vmc": {
      "power": "switch.vmc_power",
      "tSetpoint": "number.vmc_t_setpoint",
      "hSetpoint": "number.vmc_h_setpoint",
      "spareSetpoint": "number.vmc_spare_setpoint",
      "ventRecirculation": "switch.vmc_recirculation",
      "forceHeating": "switch.vmc_force_heating",
      "waterSupply": "switch.vmc_water_supply",
      "season": {
        "actuator": "select.vmc_season",
        "off": "Off",
        "winter": "Winter",
        "spring": "Spring",
        "summer": "Summer",
        "autumn": "Autumn"
      },
      "sensors": {
        "tWater": "sensor.vmc_t_water",
        "tAmbient": "sensor.vmc_t_ambient"
      },
      "alarms": {
        "highWaterTemp": "switch.vmc_high_water_temp",
        "alarm": "binary_sensor.vmc_alarm"
      }
    },
    "radiant": {
      "power": "switch.radiant_power",
      "mixSupply": "switch.radiant_mix_supply",
      "mixValve": "number.radiant_mix_valve",
      "heatSource": {
        "actuator": "select.boiler_mode",
        "heating": "Heating"
      },
      "sensors": {
        "boilerSupply": "sensor.boiler_supply",
        "boilerReturn": "sensor.boiler_return"
      }
    }
  },
  "weather": ["sensor.forecast_day0", "sensor.forecast_day1"]
}`

func TestHubParse(t *testing.T) {
	hub := &Hub{}
	err := json.Unmarshal([]byte(testHub), hub)
	assert.NoError(t, err)
	assert.NoError(t, hub.Validate())

	assert.Equal(t, "casa", hub.Name)
	assert.Len(t, hub.IndoorAreas(), 1)
	assert.Len(t, hub.RadiantAreas(), 1)
	assert.Equal(t, 30.0, hub.Areas[0].Mq)
	assert.Equal(t, "Winter", hub.Devices.VMC.Season.Option(season.Winter))
	assert.Equal(t, "", hub.Devices.VMC.Season.Option(season.Label("monsoon")))
}

func TestHubEntityIDs(t *testing.T) {
	hub := &Hub{}
	err := json.Unmarshal([]byte(testHub), hub)
	assert.NoError(t, err)

	ids := hub.EntityIDs()
	assert.Contains(t, ids, "sensor.livingroom_temperature")
	assert.Contains(t, ids, "binary_sensor.home_windows")
	assert.Contains(t, ids, "select.vmc_season")
	assert.Contains(t, ids, "sensor.boiler_return")
	assert.Contains(t, ids, "sensor.forecast_day1")
	assert.NotContains(t, ids, "")
}

func TestHubValidate(t *testing.T) {
	hub := &Hub{Name: "empty"}
	assert.Error(t, hub.Validate())

	hub.Areas = []Area{{Name: "bad", Indoor: true}}
	assert.Error(t, hub.Validate())

	hub.Areas = []Area{{Name: "bad", Radiant: true, Sensors: AreaSensors{Temperature: "t"}}}
	assert.Error(t, hub.Validate())
}
