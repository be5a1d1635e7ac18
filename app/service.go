package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	planapi "github.com/gridops/powerplan/api/plan"
	"github.com/gridops/powerplan/config"
	coremetrics "github.com/gridops/powerplan/core/metrics"
	"github.com/gridops/powerplan/core/plan"
	"github.com/gridops/powerplan/infra/logger"
	"github.com/gridops/powerplan/infra/metrics"
	"github.com/gridops/powerplan/infra/mqtt"
)

// Service wires the planner, the HTTP API and the observability sinks.
type Service struct {
	planner     plan.Planner
	sink        coremetrics.PlanSink
	publisher   *mqtt.PlanPublisher
	log         logger.Logger
	addr        string
	promEnabled bool
	promAddr    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.PlanSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.PlanSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	var publisher *mqtt.PlanPublisher
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPlanPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("plan publisher: %w", err)
		}
		publisher = pub
	}

	return &Service{
		planner:     plan.Planner{LPFirst: cfg.Planner.LPFirst},
		sink:        sink,
		publisher:   publisher,
		log:         logg,
		addr:        cfg.API.Addr,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddr,
	}, nil
}

// Run starts the HTTP API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	var pub planapi.Publisher
	if s.publisher != nil {
		pub = s.publisher
	}
	mux.Handle("/productionplan", planapi.NewHandler(s.planner, s.sink, pub, s.log))
	mux.Handle("/", planapi.NewInfoHandler())

	srv := &http.Server{Addr: s.addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}()
	s.log.Infof("listening on %s", s.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Close()
	}
	return nil
}
