package model

import (
	"encoding/json"
	"fmt"
)

// UnitKind identifies the generation technology of a unit.
type UnitKind int

const (
	KindWind UnitKind = iota
	KindGas
	KindTurbojet
)

// String returns the wire name of the kind.
func (k UnitKind) String() string {
	switch k {
	case KindWind:
		return "windturbine"
	case KindGas:
		return "gasfired"
	case KindTurbojet:
		return "turbojet"
	default:
		return "unknown"
	}
}

// ParseUnitKind converts a wire name into a UnitKind.
func ParseUnitKind(s string) (UnitKind, error) {
	switch s {
	case "windturbine":
		return KindWind, nil
	case "gasfired":
		return KindGas, nil
	case "turbojet":
		return KindTurbojet, nil
	default:
		return 0, fmt.Errorf("unknown unit kind %q", s)
	}
}

// MarshalJSON encodes the kind using its wire name.
func (k UnitKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes the kind from its wire name.
func (k *UnitKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseUnitKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Unit describes one generation unit of the fleet.
type Unit struct {
	Name string   `json:"name"`
	Kind UnitKind `json:"type"`
	// Efficiency is the thermal-to-electric conversion fraction in (0,1].
	// It is required for gas and turbojet units and ignored for wind.
	Efficiency float64 `json:"efficiency"`
	Pmin       float64 `json:"pmin"` // minimum sustained output once active, MW
	Pmax       float64 `json:"pmax"` // maximum sustained output, MW
}

// IsFueled reports whether the unit burns fuel to produce power.
func (u Unit) IsFueled() bool {
	return u.Kind == KindGas || u.Kind == KindTurbojet
}

// Validate checks that the unit's operating envelope is sound.
func (u Unit) Validate() error {
	if u.Kind != KindWind && u.Kind != KindGas && u.Kind != KindTurbojet {
		return fmt.Errorf("unit %s: unknown kind", u.Name)
	}
	if u.Pmin < 0 {
		return fmt.Errorf("unit %s: pmin must not be negative", u.Name)
	}
	if u.Pmax < 0 {
		return fmt.Errorf("unit %s: pmax must not be negative", u.Name)
	}
	if u.Pmin > u.Pmax {
		return fmt.Errorf("unit %s: pmin %.1f exceeds pmax %.1f", u.Name, u.Pmin, u.Pmax)
	}
	if u.IsFueled() {
		if u.Efficiency <= 0 {
			return fmt.Errorf("unit %s: efficiency must be positive", u.Name)
		}
		if u.Efficiency > 1 {
			return fmt.Errorf("unit %s: efficiency must not exceed 1", u.Name)
		}
	}
	return nil
}
