package plan

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// solveLP minimises total production cost subject to per-unit capacity bounds
// and the load balance constraint. Minimum-output constraints are not part of
// the relaxation; callers must verify them on the returned solution.
func solveLP(costs, caps []float64, load float64) ([]float64, error) {
	c := make([]float64, len(costs))
	copy(c, costs)

	g := mat.NewDense(len(caps), len(caps), nil)
	h := make([]float64, len(caps))
	for i, capacity := range caps {
		g.Set(i, i, 1)
		h[i] = capacity
	}

	a := mat.NewDense(1, len(caps), nil)
	for i := range caps {
		a.Set(0, i, 1)
	}
	b := []float64{load}

	cStd, aStd, bStd := lp.Convert(c, g, h, a, b)
	_, sol, err := lp.Simplex(cStd, aStd, bStd, 1e-7, nil)
	return sol, err
}

// lpSolve points to the function used to solve the LP. It can be overridden
// in tests to simulate solver failures.
var lpSolve = solveLP

// tryLPAllocate solves the linear relaxation and, when the solution meets the
// load and every committed unit's pmin, writes it into the allocations and
// reports success. Any shortfall or pmin violation leaves the decision to the
// merit-order path.
func tryLPAllocate(ranked []*allocation, load float64) bool {
	costs := make([]float64, len(ranked))
	caps := make([]float64, len(ranked))
	for i, a := range ranked {
		costs[i] = a.cost
		caps[i] = a.effPmax
	}

	sol, err := lpSolve(costs, caps, load)
	if err != nil || len(sol) < len(ranked) {
		return false
	}

	var sum float64
	for i, a := range ranked {
		power := sol[i]
		if power < 0 {
			power = 0
		}
		if power > caps[i] {
			power = caps[i]
		}
		a.power = power
		a.active = power > 0
		sum += power
	}
	if math.Abs(sum-load) > 1e-3 {
		return false
	}
	for _, a := range ranked {
		if a.active && a.power+1e-9 < a.unit.Pmin {
			return false
		}
	}
	return true
}
