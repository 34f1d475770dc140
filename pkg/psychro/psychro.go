package psychro

import (
	"fmt"
	"math"
)

// Magnus coefficients, valid for -45..60c over water.
const (
	magnusA = 17.62
	magnusB = 243.12
)

// DewPoint calculates the dew point in celsius from dry bulb temperature
// and relative humidity using the August-Roche-Magnus relation. Humidity
// outside (0,100] is a domain error and yields no value.
func DewPoint(temperature, humidity float64) (float64, error) {
	if humidity <= 0 || humidity > 100 {
		return 0, fmt.Errorf("relative humidity %.1f outside (0,100]", humidity)
	}
	gamma := math.Log(humidity/100.0) + magnusA*temperature/(magnusB+temperature)
	return magnusB * gamma / (magnusA - gamma), nil
}

// HeatIndex calculates the Steadman apparent temperature in celsius using
// the simplified formula (computed in fahrenheit).
func HeatIndex(temperature, humidity float64) float64 {
	t := temperature*9/5 + 32
	hi := 0.5 * (t + 61.0 + ((t - 68.0) * 1.2) + (humidity * 0.094))
	return (hi - 32) * 5 / 9
}

// Perception is the human comfort classification of a dew point.
type Perception string

const (
	PerceptionDry                    Perception = "dry"
	PerceptionVeryComfortable        Perception = "very_comfortable"
	PerceptionComfortable            Perception = "comfortable"
	PerceptionOkButHumid             Perception = "ok_but_humid"
	PerceptionSomewhatUncomfortable  Perception = "somewhat_uncomfortable"
	PerceptionQuiteUncomfortable     Perception = "quite_uncomfortable"
	PerceptionExtremelyUncomfortable Perception = "extremely_uncomfortable"
	PerceptionSeverelyHigh           Perception = "severely_high"
)

// DewPointPerception classifies a dew point on the eight bucket scale
// <https://en.wikipedia.org/wiki/Dew_point>.
func DewPointPerception(dewPoint float64) Perception {
	switch {
	case dewPoint < 10:
		return PerceptionDry
	case dewPoint < 13:
		return PerceptionVeryComfortable
	case dewPoint < 16:
		return PerceptionComfortable
	case dewPoint < 18:
		return PerceptionOkButHumid
	case dewPoint < 21:
		return PerceptionSomewhatUncomfortable
	case dewPoint < 24:
		return PerceptionQuiteUncomfortable
	case dewPoint < 26:
		return PerceptionExtremelyUncomfortable
	}
	return PerceptionSeverelyHigh
}
