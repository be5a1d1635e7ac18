package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/gridops/powerplan/core/metrics"
)

// PromSink records plan computations in Prometheus metrics.
type PromSink struct {
	plans    *prometheus.CounterVec
	load     prometheus.Histogram
	cost     prometheus.Histogram
	duration prometheus.Histogram
}

// NewPromSink registers plan metrics on the provided Prometheus registerer.
// If reg is nil, the default registerer is used. If the collectors are already
// registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_requests_total",
		Help: "Total number of production plan computations",
	}, []string{"status"})
	load := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plan_load_mw",
		Help:    "Requested load of plan computations in MW",
		Buckets: prometheus.ExponentialBuckets(10, 2, 10),
	})
	cost := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plan_cost_euro_hour",
		Help:    "Total production cost of computed plans in euro per hour",
		Buckets: prometheus.ExponentialBuckets(100, 2, 12),
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plan_duration_seconds",
		Help:    "Time spent computing a production plan",
		Buckets: prometheus.DefBuckets,
	})

	if err := reg.Register(plans); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			plans = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	for _, h := range []*prometheus.Histogram{&load, &cost, &duration} {
		if err := reg.Register(*h); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				*h = are.ExistingCollector.(prometheus.Histogram)
			} else {
				return nil, err
			}
		}
	}

	return &PromSink{plans: plans, load: load, cost: cost, duration: duration}, nil
}

// RecordPlan implements coremetrics.PlanSink.
func (s *PromSink) RecordPlan(rec coremetrics.PlanRecord) error {
	s.plans.WithLabelValues(rec.Status).Inc()
	s.load.Observe(rec.LoadMW)
	if rec.Status == coremetrics.StatusOK {
		s.cost.Observe(rec.TotalCost)
	}
	s.duration.Observe(rec.Duration.Seconds())
	return nil
}
