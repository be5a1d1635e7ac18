package model

import (
	"encoding/json"
	"testing"
)

func TestUnitValidate(t *testing.T) {
	cases := []struct {
		name    string
		unit    Unit
		wantErr bool
	}{
		{"valid gas", Unit{Name: "g", Kind: KindGas, Efficiency: 0.53, Pmin: 100, Pmax: 460}, false},
		{"valid wind without efficiency", Unit{Name: "w", Kind: KindWind, Pmax: 150}, false},
		{"pmin above pmax", Unit{Name: "g", Kind: KindGas, Efficiency: 0.5, Pmin: 20, Pmax: 10}, true},
		{"negative pmin", Unit{Name: "g", Kind: KindGas, Efficiency: 0.5, Pmin: -1, Pmax: 10}, true},
		{"negative pmax", Unit{Name: "g", Kind: KindGas, Efficiency: 0.5, Pmax: -10}, true},
		{"zero efficiency fueled", Unit{Name: "g", Kind: KindGas, Pmax: 10}, true},
		{"efficiency above one", Unit{Name: "g", Kind: KindGas, Efficiency: 1.2, Pmax: 10}, true},
		{"unknown kind", Unit{Name: "x", Kind: UnitKind(9), Pmax: 10}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.unit.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestUnitKindJSONRoundTrip(t *testing.T) {
	for _, kind := range []UnitKind{KindWind, KindGas, KindTurbojet} {
		data, err := json.Marshal(kind)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back UnitKind
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if back != kind {
			t.Errorf("round trip changed %v to %v", kind, back)
		}
	}
}

func TestUnitJSONWireNames(t *testing.T) {
	raw := `{"name": "tj1", "type": "turbojet", "efficiency": 0.3, "pmin": 0, "pmax": 16}`
	var u Unit
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.Kind != KindTurbojet || u.Name != "tj1" {
		t.Fatalf("unexpected unit: %+v", u)
	}
}

func TestFuelsAliases(t *testing.T) {
	raw := `{"gas(euro/MWh)": 13.4, "kerosine(euro/MWh)": 50.8, "co2(euro/ton)": 20, "wind(%)": 60}`
	var f Fuels
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.GasEuroMWh != 13.4 || f.WindPercent != 60 {
		t.Fatalf("aliases not decoded: %+v", f)
	}
	if f.WindFraction() != 0.6 {
		t.Fatalf("wind fraction %.2f", f.WindFraction())
	}
}

func TestFuelsValidate(t *testing.T) {
	if err := (Fuels{WindPercent: 120}).Validate(); err == nil {
		t.Fatalf("wind above 100%% must be rejected")
	}
	if err := (Fuels{GasEuroMWh: -1}).Validate(); err == nil {
		t.Fatalf("negative gas price must be rejected")
	}
	if err := (Fuels{GasEuroMWh: 13.4, KerosineEuroMWh: 50.8, CO2EuroTon: 20, WindPercent: 60}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProductionPlanTotal(t *testing.T) {
	p := ProductionPlan{{Name: "a", Power: 90}, {Name: "b", Power: 20.5}}
	if p.Total() != 110.5 {
		t.Fatalf("total %.2f", p.Total())
	}
}
