package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridops/powerplan/core/model"
)

// UnitDef describes one generation unit in a scenario file.
type UnitDef struct {
	Name       string  `yaml:"name"`
	Type       string  `yaml:"type"`
	Efficiency float64 `yaml:"efficiency"`
	Pmin       float64 `yaml:"pmin"`
	Pmax       float64 `yaml:"pmax"`
}

// ToModel converts the definition into a model unit.
func (u UnitDef) ToModel() (model.Unit, error) {
	kind, err := model.ParseUnitKind(u.Type)
	if err != nil {
		return model.Unit{}, fmt.Errorf("unit %s: %w", u.Name, err)
	}
	return model.Unit{
		Name:       u.Name,
		Kind:       kind,
		Efficiency: u.Efficiency,
		Pmin:       u.Pmin,
		Pmax:       u.Pmax,
	}, nil
}

// FuelsDef mirrors model.Fuels with friendlier YAML keys.
type FuelsDef struct {
	GasEuroMWh      float64 `yaml:"gas_euro_mwh"`
	KerosineEuroMWh float64 `yaml:"kerosine_euro_mwh"`
	CO2EuroTon      float64 `yaml:"co2_euro_ton"`
	WindPercent     float64 `yaml:"wind_percent"`
}

// ToModel converts the definition into model fuels.
func (f FuelsDef) ToModel() model.Fuels {
	return model.Fuels{
		GasEuroMWh:      f.GasEuroMWh,
		KerosineEuroMWh: f.KerosineEuroMWh,
		CO2EuroTon:      f.CO2EuroTon,
		WindPercent:     f.WindPercent,
	}
}

// ExpectedEntry pins the power expected for one unit.
type ExpectedEntry struct {
	Name  string  `yaml:"name"`
	Power float64 `yaml:"power"`
}

// Scenario is one end-to-end planning case.
type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Load        float64         `yaml:"load"`
	Fuels       FuelsDef        `yaml:"fuels"`
	Units       []UnitDef       `yaml:"units"`
	Expected    []ExpectedEntry `yaml:"expected,omitempty"`
	// ExpectedError names the expected failure: "under_supply",
	// "pmin_locked" or "invalid". Empty means the plan must succeed.
	ExpectedError string `yaml:"expected_error,omitempty"`
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
