package model

import "fmt"

// Fuels carries the market prices and wind conditions for one request.
// The JSON names match the aliases used by the production-plan payload.
type Fuels struct {
	GasEuroMWh      float64 `json:"gas(euro/MWh)"`
	KerosineEuroMWh float64 `json:"kerosine(euro/MWh)"`
	CO2EuroTon      float64 `json:"co2(euro/ton)"`
	WindPercent     float64 `json:"wind(%)"`
}

// WindFraction returns the wind availability as a fraction of pmax.
func (f Fuels) WindFraction() float64 {
	return f.WindPercent / 100
}

// Validate checks that the environment values are usable.
func (f Fuels) Validate() error {
	if f.WindPercent < 0 || f.WindPercent > 100 {
		return fmt.Errorf("wind percentage %.1f outside [0,100]", f.WindPercent)
	}
	if f.GasEuroMWh < 0 {
		return fmt.Errorf("gas price must not be negative")
	}
	if f.KerosineEuroMWh < 0 {
		return fmt.Errorf("kerosine price must not be negative")
	}
	if f.CO2EuroTon < 0 {
		return fmt.Errorf("co2 price must not be negative")
	}
	return nil
}
