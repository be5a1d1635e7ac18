package plan

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/gridops/powerplan/core/model"
)

func TestLPFirst_MatchesMeritOrderCost(t *testing.T) {
	// Equal-cost units let the simplex split the load differently from the
	// greedy walk, so compare totals and cost rather than exact entries.
	merit, err := New().Compute(challengeUnits, challengeFuels, 910)
	if err != nil {
		t.Fatalf("merit: %v", err)
	}
	lpPlan, err := Planner{LPFirst: true}.Compute(challengeUnits, challengeFuels, 910)
	if err != nil {
		t.Fatalf("lp: %v", err)
	}
	if math.Abs(lpPlan.Total()-910) > Tolerance {
		t.Fatalf("lp plan total %.2f misses load", lpPlan.Total())
	}
	meritCost, err := TotalCost(merit, challengeUnits, challengeFuels)
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	lpCost, err := TotalCost(lpPlan, challengeUnits, challengeFuels)
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	if math.Abs(meritCost-lpCost) > 1 {
		t.Fatalf("lp cost %.2f differs from merit cost %.2f", lpCost, meritCost)
	}
}

func TestLPFirst_FallsBackOnPminViolation(t *testing.T) {
	// The relaxation would run the gas unit below its pmin, so the planner
	// must fall back to greedy allocation plus repair.
	units := []model.Unit{
		{Name: "wp", Kind: model.KindWind, Pmin: 0, Pmax: 120},
		{Name: "g1", Kind: model.KindGas, Efficiency: 0.5, Pmin: 100, Pmax: 200},
	}
	fuels := model.Fuels{GasEuroMWh: 13, CO2EuroTon: 20, WindPercent: 50}
	got, err := Planner{LPFirst: true}.Compute(units, fuels, 110)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.ProductionPlan{{Name: "wp", Power: 10}, {Name: "g1", Power: 100}}
	assertPlanEqual(t, want, got)
}

func TestLPFirst_FallsBackOnSolverFailure(t *testing.T) {
	orig := lpSolve
	lpSolve = func(costs, caps []float64, load float64) ([]float64, error) {
		return nil, errors.New("solver exploded")
	}
	defer func() { lpSolve = orig }()

	merit, err := New().Compute(challengeUnits, challengeFuels, 480)
	if err != nil {
		t.Fatalf("merit: %v", err)
	}
	got, err := Planner{LPFirst: true}.Compute(challengeUnits, challengeFuels, 480)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(merit, got) {
		t.Fatalf("fallback plan differs: %v vs %v", got, merit)
	}
}

func TestSolveLP_CostOptimal(t *testing.T) {
	// Two units, the cheap one large enough: all load goes to it.
	sol, err := solveLP([]float64{10, 50}, []float64{100, 100}, 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sol[0]-80) > 1e-6 || math.Abs(sol[1]) > 1e-6 {
		t.Fatalf("expected [80 0], got %v", sol[:2])
	}
}

func TestLPRelaxationNeverBeatsPlanCost(t *testing.T) {
	// The relaxation ignores pmin, so its cost lower-bounds the final plan.
	plan, err := Compute(challengeUnits, challengeFuels, 480)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	planCost, err := TotalCost(plan, challengeUnits, challengeFuels)
	if err != nil {
		t.Fatalf("cost: %v", err)
	}

	costs := make([]float64, len(challengeUnits))
	caps := make([]float64, len(challengeUnits))
	for i, u := range challengeUnits {
		eco, err := Evaluate(u, challengeFuels)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		costs[i] = eco.CostPerMWh
		caps[i] = eco.EffectivePmax
	}
	sol, err := solveLP(costs, caps, 480)
	if err != nil {
		t.Fatalf("lp: %v", err)
	}
	var lpCost float64
	for i := range challengeUnits {
		lpCost += costs[i] * sol[i]
	}
	if planCost < lpCost-1e-3 {
		t.Fatalf("plan cost %.2f below LP lower bound %.2f", planCost, lpCost)
	}
}
