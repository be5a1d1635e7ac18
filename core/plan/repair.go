package plan

// repairOverproduction removes excess output caused by forced pmin
// commitments. Active units are visited from most to least expensive so the
// cheap end of the merit order keeps producing. A unit may be reduced down to
// its pmin, or all the way to zero (and deactivated) when its pmin is zero.
// Best-effort units already producing below their pmin are left untouched.
// Returns the excess that could not be removed.
func repairOverproduction(ranked []*allocation, excess float64) float64 {
	for i := len(ranked) - 1; i >= 0 && excess > 0; i-- {
		a := ranked[i]
		if !a.active {
			continue
		}
		floor := a.unit.Pmin
		if a.power < floor {
			// Best effort: capacity is below pmin, nothing to give up.
			continue
		}
		// When pmin is zero the unit may be reduced to zero, which
		// deactivates it entirely.
		reducible := a.power - floor
		reduction := reducible
		if reduction > excess {
			reduction = excess
		}
		a.power -= reduction
		excess -= reduction
		if a.power == 0 {
			a.active = false
		}
	}
	return excess
}
