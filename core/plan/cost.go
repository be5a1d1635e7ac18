package plan

import (
	"fmt"

	"github.com/gridops/powerplan/core/model"
)

// CO2TonPerMWh is the emission factor of gas-fired generation: tons of CO2
// released per MWh of electrical output. It is a property of the technology,
// not of individual units.
const CO2TonPerMWh = 0.3

// Economics holds the merit-order inputs derived for one unit.
type Economics struct {
	// CostPerMWh is the marginal production cost in euro per MWh.
	CostPerMWh float64
	// EffectivePmax is the output actually available this period, after
	// wind availability is applied. It is not rounded at this stage.
	EffectivePmax float64
}

// Evaluate derives the production cost and available capacity of a unit
// under the given fuel prices and wind conditions.
func Evaluate(u model.Unit, fuels model.Fuels) (Economics, error) {
	switch u.Kind {
	case model.KindWind:
		return Economics{
			CostPerMWh:    0,
			EffectivePmax: u.Pmax * fuels.WindFraction(),
		}, nil
	case model.KindGas:
		if u.Efficiency <= 0 {
			return Economics{}, InvalidUnitError{Name: u.Name, Reason: fmt.Errorf("efficiency must be positive")}
		}
		fuel := fuels.GasEuroMWh / u.Efficiency
		co2 := CO2TonPerMWh * fuels.CO2EuroTon / u.Efficiency
		return Economics{CostPerMWh: fuel + co2, EffectivePmax: u.Pmax}, nil
	case model.KindTurbojet:
		if u.Efficiency <= 0 {
			return Economics{}, InvalidUnitError{Name: u.Name, Reason: fmt.Errorf("efficiency must be positive")}
		}
		return Economics{CostPerMWh: fuels.KerosineEuroMWh / u.Efficiency, EffectivePmax: u.Pmax}, nil
	default:
		return Economics{}, InvalidUnitError{Name: u.Name, Reason: fmt.Errorf("unknown kind")}
	}
}
