package plan

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Compute. Callers match them with errors.Is and
// translate them into transport-level responses.
var (
	// ErrInvalidInput marks rejected units, fuels or load values.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnderSupply marks loads exceeding the fleet's available capacity.
	ErrUnderSupply = errors.New("fleet capacity below load")
	// ErrPminLocked marks loads that cannot be met exactly because the
	// minimum output of the committed units exceeds the load.
	ErrPminLocked = errors.New("minimum output constraints prevent meeting load")
)

// InvalidUnitError reports a unit whose configuration was rejected.
type InvalidUnitError struct {
	Name   string
	Reason error
}

func (e InvalidUnitError) Error() string {
	return fmt.Sprintf("invalid unit %s: %v", e.Name, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e InvalidUnitError) Unwrap() error { return ErrInvalidInput }

// UnderSupplyError reports a load above the combined effective capacity.
type UnderSupplyError struct {
	Load     float64
	Capacity float64
}

func (e UnderSupplyError) Error() string {
	return fmt.Sprintf("load %.1f MW exceeds available capacity %.1f MW", e.Load, e.Capacity)
}

func (e UnderSupplyError) Unwrap() error { return ErrUnderSupply }

// PminLockedError reports overproduction that repair could not remove because
// every committed unit is pinned at its minimum output.
type PminLockedError struct {
	Load   float64
	Excess float64
}

func (e PminLockedError) Error() string {
	return fmt.Sprintf("minimum outputs overshoot load %.1f MW by %.1f MW", e.Load, e.Excess)
}

func (e PminLockedError) Unwrap() error { return ErrPminLocked }
