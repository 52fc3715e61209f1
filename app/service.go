// Package app assembles the planning service: catalogs, planner, transports
// and metric sinks.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	apiplan "github.com/tanklogix/loadplan/api/plan"
	"github.com/tanklogix/loadplan/config"
	"github.com/tanklogix/loadplan/core/catalog"
	coremetrics "github.com/tanklogix/loadplan/core/metrics"
	"github.com/tanklogix/loadplan/core/model"
	"github.com/tanklogix/loadplan/core/plan"
	"github.com/tanklogix/loadplan/infra/ambient"
	"github.com/tanklogix/loadplan/infra/logger"
	"github.com/tanklogix/loadplan/infra/metrics"
	"github.com/tanklogix/loadplan/infra/mqtt"
	"github.com/tanklogix/loadplan/internal/eventbus"
)

// Service wires the planning engine to its transports and observers.
type Service struct {
	cfg     *config.Config
	planner *plan.Planner
	store   *catalog.Store
	ambient *ambient.Client
	bus     *eventbus.Bus
	sink    coremetrics.Sink
	log     logger.Logger

	listener *mqtt.Listener
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	store, err := catalog.LoadFiles(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	svc := &Service{
		cfg:     cfg,
		planner: plan.New(cfg.Plan, logger.New("planner")),
		store:   store,
		bus:     eventbus.New(),
		sink:    sink,
		log:     logg,
	}
	if cfg.Ambient.Enabled {
		svc.ambient = ambient.New(cfg.Ambient)
	}
	return svc, nil
}

// Store exposes the loaded catalogs.
func (s *Service) Store() *catalog.Store { return s.store }

// PlanFromRequest resolves a wire request against the catalogs and computes a
// plan. Pure planner invariants apply; the only errors here are resolution
// errors (unknown trailer).
func (s *Service) PlanFromRequest(ctx context.Context, req plan.Request, source string) (model.PlanResult, error) {
	trailer, ok := s.store.Trailer(req.TrailerID)
	if !ok {
		return model.PlanResult{}, fmt.Errorf("unknown trailer %q", req.TrailerID)
	}

	tempF := s.temperatureF(ctx, req)

	assignments := make(map[int]model.Assignment, len(req.Assignments))
	for id, a := range req.Assignments {
		assignments[id] = a
	}

	in := plan.Inputs{
		Compartments: trailer.Compartments,
		Assignments:  assignments,
		Products:     s.store.ProductMap(),
		Limits:       trailer.Limits(),
		TempF:        tempF,
		BiasSlider:   req.BiasSlider,
		Headspace:    req.Headspace,
	}

	start := time.Now()
	res := s.planner.Plan(in)
	elapsed := time.Since(start)

	planID := req.ID
	if planID == "" {
		planID = uuid.NewString()
	}
	s.bus.Publish(eventbus.PlanComputed{
		PlanID:    planID,
		Source:    source,
		TrailerID: req.TrailerID,
		Result:    res,
		Elapsed:   elapsed,
		At:        time.Now(),
	})
	return res, nil
}

// temperatureF picks the planning temperature: the request's explicit value,
// otherwise the ambient reading, otherwise the configured default.
func (s *Service) temperatureF(ctx context.Context, req plan.Request) float64 {
	if req.TempF != nil {
		return *req.TempF
	}
	if s.ambient != nil {
		if t, err := s.ambient.TemperatureF(ctx); err == nil {
			return t
		} else {
			s.log.Warnf("ambient temperature unavailable: %v", err)
		}
	}
	return s.cfg.Ambient.DefaultTempF
}

// Run starts the transports and the recording loop, blocking until the
// context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	events := s.bus.Subscribe()
	go s.recordLoop(events)

	if s.cfg.MQTT.Enabled {
		listener, err := mqtt.NewListener(s.cfg.MQTT, s)
		if err != nil {
			return fmt.Errorf("mqtt listener: %w", err)
		}
		s.listener = listener
	}

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle("/api/plan", apiplan.NewPlanHandler(s))
	mux.Handle("/api/catalog/trailers", apiplan.NewTrailersHandler(s.store))
	mux.Handle("/api/catalog/products", apiplan.NewProductsHandler(s.store))
	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api shutdown: %v", err)
		}
	}()

	s.log.Infof("serving plans on %s", s.cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Service) recordLoop(events <-chan eventbus.PlanComputed) {
	for ev := range events {
		rec := coremetrics.PlanEvent{
			PlanID:          ev.PlanID,
			Source:          ev.Source,
			TrailerID:       ev.TrailerID,
			FeasibleGallons: ev.Result.FeasibleGallons,
			TotalGallons:    ev.Result.TotalGallons,
			TotalLbs:        ev.Result.TotalLbs,
			MarginLbs:       ev.Result.MarginLbs,
			Rows:            len(ev.Result.Rows),
			Elapsed:         ev.Elapsed,
			ComputedAt:      ev.At,
		}
		if err := s.sink.RecordPlan(rec); err != nil {
			s.log.Errorf("record plan: %v", err)
		}
		s.log.Debugw("plan computed", map[string]any{
			"plan_id":          ev.PlanID,
			"source":           ev.Source,
			"trailer_id":       ev.TrailerID,
			"feasible_gallons": ev.Result.FeasibleGallons,
			"margin_lbs":       ev.Result.MarginLbs,
		})
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.listener != nil {
		s.listener.Close()
	}
	s.bus.Close()
	return nil
}
