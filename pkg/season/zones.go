package season

// Label identifies one of the four seasons.
type Label string

const (
	Winter Label = "winter"
	Spring Label = "spring"
	Summer Label = "summer"
	Autumn Label = "autumn"
)

// ComfortZone is the target temperature/humidity band for a season.
// TempMin < TempMax and HumMin < HumMax always hold for the built in table.
type ComfortZone struct {
	TempMin   float64 `json:"tempMin"`
	TempMax   float64 `json:"tempMax"`
	HumMin    float64 `json:"humMin"`
	HumMax    float64 `json:"humMax"`
	DeltaTemp float64 `json:"deltaTemp"`
	DeltaHum  float64 `json:"deltaHum"`
	DewPoint  float64 `json:"dewPoint"` // ceiling
}

// Zones is the static comfort table keyed by season label.
var Zones = map[Label]ComfortZone{
	Summer: {
		TempMin:   24.0,
		TempMax:   27.0,
		HumMin:    40,
		HumMax:    55,
		DeltaTemp: 0.7,
		DeltaHum:  1.6,
		DewPoint:  19,
	},
	Autumn: {
		TempMin:   18.0,
		TempMax:   23.7,
		HumMin:    50,
		HumMax:    70,
		DeltaTemp: 0.6,
		DeltaHum:  1.5,
		DewPoint:  18,
	},
	Winter: {
		TempMin:   17.5,
		TempMax:   21.5,
		HumMin:    40,
		HumMax:    60,
		DeltaTemp: 0.5,
		DeltaHum:  1.0,
		DewPoint:  18,
	},
	Spring: {
		TempMin:   19.0,
		TempMax:   24.0,
		HumMin:    45,
		HumMax:    65,
		DeltaTemp: 0.8,
		DeltaHum:  1.4,
		DewPoint:  18,
	},
}

// Resolve looks up the comfort zone for the estimate's effective season.
func Resolve(est *Estimate) (ComfortZone, bool) {
	if est == nil {
		return ComfortZone{}, false
	}
	z, ok := Zones[est.Effective()]
	return z, ok
}

// Setpoints are the power on/off thresholds derived from a comfort zone.
// Heating support turns on when the home reading drops to PowerOn and
// off once it climbs above PowerOff; PowerOn < PowerOff gives the
// distributor a real deadband.
type Setpoints struct {
	PowerOn  float64 `json:"powerOn"`
	PowerOff float64 `json:"powerOff"`
}

// Setpoints derives the power thresholds from the band midpoint and the
// hysteresis delta. Recomputed every cycle, never persisted.
func (z ComfortZone) Setpoints() Setpoints {
	mid := (z.TempMin + z.TempMax) / 2
	return Setpoints{
		PowerOn:  mid - 3*z.DeltaTemp,
		PowerOff: mid - 2*z.DeltaTemp,
	}
}

// midpoint of the delta inflated band, used for forecast scoring.
func (z ComfortZone) scoringMid() float64 {
	return ((z.TempMin - z.DeltaTemp) + (z.TempMax + z.DeltaTemp)) / 2
}
