package plan

import (
	"fmt"
	"math"

	"github.com/gridops/powerplan/core/model"
)

// Tolerance is the acceptable gap in MW between the load and the summed plan
// output. It matches the 0.1 MW resolution of the result.
const Tolerance = 0.1

// Planner computes production plans. The zero value uses merit-order greedy
// allocation with feasibility repair. With LPFirst set, a linear relaxation
// of the dispatch problem is solved first and used whenever its solution
// already honours every minimum-output constraint.
type Planner struct {
	LPFirst bool
}

// New returns a Planner with default settings.
func New() Planner { return Planner{} }

// Compute assigns output power to every unit so the summed production meets
// the load at minimum cost. The returned plan lists units in request order
// with powers rounded to 0.1 MW; the residual left by rounding is
// redistributed so the total still meets the load within Tolerance. On error
// no plan is returned.
func (p Planner) Compute(units []model.Unit, fuels model.Fuels, load float64) (model.ProductionPlan, error) {
	if len(units) == 0 {
		return nil, fmt.Errorf("%w: no units", ErrInvalidInput)
	}
	if load < 0 {
		return nil, fmt.Errorf("%w: load must not be negative", ErrInvalidInput)
	}
	if err := fuels.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	allocs := make([]*allocation, len(units))
	for i, u := range units {
		if err := u.Validate(); err != nil {
			return nil, InvalidUnitError{Name: u.Name, Reason: err}
		}
		eco, err := Evaluate(u, fuels)
		if err != nil {
			return nil, err
		}
		allocs[i] = &allocation{unit: u, index: i, cost: eco.CostPerMWh, effPmax: eco.EffectivePmax}
	}

	ranked := rankByCost(allocs)

	if p.LPFirst {
		if ok := tryLPAllocate(ranked, load); ok {
			return finish(allocs, ranked, load)
		}
		for _, a := range allocs {
			a.power = 0
			a.active = false
		}
	}

	remaining := greedyAllocate(ranked, load)
	if remaining > Tolerance {
		var capacity float64
		for _, a := range allocs {
			capacity += a.effPmax
		}
		return nil, UnderSupplyError{Load: load, Capacity: capacity}
	}
	if remaining < 0 {
		excess := repairOverproduction(ranked, -remaining)
		if excess > Tolerance {
			return nil, PminLockedError{Load: load, Excess: excess}
		}
	}
	return finish(allocs, ranked, load)
}

// finish rounds the working powers, rebalances the rounding residual and
// emits the plan. A residual the fleet cannot absorb surfaces as an error
// rather than a plan that misses the load.
func finish(allocs, ranked []*allocation, load float64) (model.ProductionPlan, error) {
	residual := balanceRounding(ranked, load)
	if residual > Tolerance {
		var capacity float64
		for _, a := range allocs {
			capacity += a.effPmax
		}
		return nil, UnderSupplyError{Load: load, Capacity: capacity}
	}
	if residual < -Tolerance {
		return nil, PminLockedError{Load: load, Excess: -residual}
	}
	return assemble(allocs), nil
}

// balanceRounding rounds every working power to 0.1 MW and redistributes the
// residual so the summed plan still meets the load. Excess output is shed
// from the most expensive units first and missing output is added to the
// cheapest, in 0.1 MW multiples and within each unit's envelope. Returns the
// gap that could not be absorbed.
func balanceRounding(ranked []*allocation, load float64) float64 {
	var total float64
	for _, a := range ranked {
		a.power = RoundPower(a.power)
		total += a.power
	}
	diff := RoundPower(load - total)
	if diff == 0 {
		return load - total
	}

	order := ranked
	if diff < 0 {
		order = make([]*allocation, len(ranked))
		for i, a := range ranked {
			order[len(ranked)-1-i] = a
		}
	}
	for _, a := range order {
		if diff == 0 {
			break
		}
		if !a.active {
			continue
		}
		adj := diff
		if adj > 0 {
			headroom := math.Floor((a.effPmax-a.power)*10+1e-9) / 10
			if adj > headroom {
				adj = headroom
			}
			if adj <= 0 {
				continue
			}
		} else {
			floor := a.unit.Pmin
			if a.power < floor {
				// already pinned at its effective capacity
				continue
			}
			slack := math.Floor((a.power-floor)*10+1e-9) / 10
			if -adj > slack {
				adj = -slack
			}
			if adj >= 0 {
				continue
			}
		}
		a.power = RoundPower(a.power + adj)
		total += adj
		diff = RoundPower(diff - adj)
	}
	return load - total
}

// Compute runs the default planner. Most callers need nothing else.
func Compute(units []model.Unit, fuels model.Fuels, load float64) (model.ProductionPlan, error) {
	return New().Compute(units, fuels, load)
}

// TotalCost returns the production cost in euro per hour of a plan, priced
// with the same cost model used to build it.
func TotalCost(plan model.ProductionPlan, units []model.Unit, fuels model.Fuels) (float64, error) {
	costs := make(map[string]float64, len(units))
	for _, u := range units {
		eco, err := Evaluate(u, fuels)
		if err != nil {
			return 0, err
		}
		costs[u.Name] = eco.CostPerMWh
	}
	var total float64
	for _, e := range plan {
		total += costs[e.Name] * e.Power
	}
	return total, nil
}

// assemble emits the plan in request order. Powers are already rounded by
// balanceRounding; RoundPower is a no-op on them.
func assemble(allocs []*allocation) model.ProductionPlan {
	out := make(model.ProductionPlan, len(allocs))
	for _, a := range allocs {
		out[a.index] = model.PlanEntry{Name: a.unit.Name, Power: RoundPower(a.power)}
	}
	return out
}

// RoundPower rounds a power value to the nearest 0.1 MW, halves away from
// zero. Rounding an already-rounded value is a no-op.
func RoundPower(p float64) float64 {
	return math.Round(p*10) / 10
}
