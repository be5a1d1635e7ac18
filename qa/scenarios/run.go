package scenarios

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/gridops/powerplan/core/model"
	"github.com/gridops/powerplan/core/plan"
)

// RunScenario computes the plan for the scenario and checks it against the
// expectations in the file.
func RunScenario(t *testing.T, sc *Scenario) {
	units := make([]model.Unit, len(sc.Units))
	for i, def := range sc.Units {
		u, err := def.ToModel()
		if err != nil {
			t.Fatalf("unit %d: %v", i, err)
		}
		units[i] = u
	}

	result, err := plan.Compute(units, sc.Fuels.ToModel(), sc.Load)
	if sc.ExpectedError != "" {
		if err == nil {
			t.Fatalf("expected %s error, got plan %v", sc.ExpectedError, result)
		}
		if !errors.Is(err, expectedSentinel(t, sc.ExpectedError)) {
			t.Fatalf("expected %s error, got %v", sc.ExpectedError, err)
		}
		return
	}
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	for _, problem := range checkExpectations(sc, result) {
		t.Error(problem)
	}
}

// checkExpectations compares a computed plan against the scenario's pinned
// entries and returns one message per mismatch. An expected name that matches
// no unit in the plan is a mismatch too, so typos in scenario files fail
// loudly.
func checkExpectations(sc *Scenario, result model.ProductionPlan) []string {
	var problems []string
	if diff := math.Abs(result.Total() - sc.Load); diff > plan.Tolerance {
		problems = append(problems, fmt.Sprintf("plan total %.2f misses load %.2f", result.Total(), sc.Load))
	}
	powers := make(map[string]float64, len(result))
	for _, entry := range result {
		powers[entry.Name] = entry.Power
	}
	for _, want := range sc.Expected {
		got, ok := powers[want.Name]
		if !ok {
			problems = append(problems, fmt.Sprintf("expected unit %q not present in plan", want.Name))
			continue
		}
		if math.Abs(got-want.Power) > 1e-9 {
			problems = append(problems, fmt.Sprintf("unit %s: expected %.1f MW, got %.1f MW", want.Name, want.Power, got))
		}
	}
	return problems
}

func expectedSentinel(t *testing.T, name string) error {
	switch name {
	case "under_supply":
		return plan.ErrUnderSupply
	case "pmin_locked":
		return plan.ErrPminLocked
	case "invalid":
		return plan.ErrInvalidInput
	default:
		t.Fatalf("unknown expected_error %q", name)
		return nil
	}
}
