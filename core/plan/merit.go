package plan

import (
	"sort"

	"github.com/gridops/powerplan/core/model"
)

// allocation is the working state for one unit during a single computation.
type allocation struct {
	unit    model.Unit
	index   int // position in the request, used for output order
	cost    float64
	effPmax float64
	power   float64
	active  bool
}

// rankByCost returns the allocations sorted into merit order: cost ascending,
// wind before fueled units on equal cost, request order as the final
// tie-break. The sort is stable so identical inputs always rank identically.
func rankByCost(allocs []*allocation) []*allocation {
	ranked := make([]*allocation, len(allocs))
	copy(ranked, allocs)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].cost != ranked[j].cost {
			return ranked[i].cost < ranked[j].cost
		}
		return ranked[i].unit.Kind == model.KindWind && ranked[j].unit.Kind != model.KindWind
	})
	return ranked
}

// greedyAllocate walks the merit order committing units until the load is
// covered. A committed unit produces at least its pmin, so the walk may
// overshoot; the returned remaining is negative by the overshoot amount.
// Units whose pmin exceeds their available capacity produce that capacity
// as a best effort.
func greedyAllocate(ranked []*allocation, load float64) float64 {
	remaining := load
	for _, a := range ranked {
		if remaining <= 0 {
			break
		}
		if a.effPmax <= 0 {
			continue
		}
		want := remaining
		if want < a.unit.Pmin {
			want = a.unit.Pmin
		}
		if want > a.effPmax {
			want = a.effPmax
		}
		a.power = want
		a.active = true
		remaining -= want
	}
	return remaining
}
