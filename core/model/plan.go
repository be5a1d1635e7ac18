package model

// PlanEntry is the power assigned to one unit, rounded to 0.1 MW.
type PlanEntry struct {
	Name  string  `json:"name"`
	Power float64 `json:"p"`
}

// ProductionPlan lists the assigned power of every unit in the same order
// as the request, so callers can correlate by position or name.
type ProductionPlan []PlanEntry

// Total returns the summed assigned power of the plan in MW.
func (p ProductionPlan) Total() float64 {
	var sum float64
	for _, e := range p {
		sum += e.Power
	}
	return sum
}
