package metrics

import "time"

// Plan computation statuses reported to sinks.
const (
	StatusOK          = "ok"
	StatusInvalid     = "invalid"
	StatusUnderSupply = "under_supply"
	StatusPminLocked  = "pmin_locked"
)

// PlanRecord captures one production-plan computation for observability.
type PlanRecord struct {
	RequestID   string
	Status      string
	LoadMW      float64
	TotalMW     float64
	TotalCost   float64 // euro per hour at the computed outputs
	UnitsTotal  int
	UnitsActive int
	Duration    time.Duration
	Time        time.Time
}

// PlanSink records plan computations for observability purposes.
type PlanSink interface {
	RecordPlan(rec PlanRecord) error
}

// NopSink discards all records.
type NopSink struct{}

// RecordPlan implements PlanSink.
func (NopSink) RecordPlan(PlanRecord) error { return nil }

// MultiSink fans records out to several sinks. The first error encountered is
// returned after every sink has been attempted.
type MultiSink struct {
	sinks []PlanSink
}

// NewMultiSink creates a MultiSink over the given sinks.
func NewMultiSink(sinks ...PlanSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// RecordPlan implements PlanSink.
func (m *MultiSink) RecordPlan(rec PlanRecord) error {
	var first error
	for _, s := range m.sinks {
		if err := s.RecordPlan(rec); err != nil && first == nil {
			first = err
		}
	}
	return first
}
