package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/tanklogix/loadplan/core/metrics"
)

// PromSink records plan events in Prometheus metrics.
type PromSink struct {
	plans    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	feasible prometheus.Gauge
	margin   prometheus.Gauge
}

// NewPromSink registers planning metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "loadplan_plans_total",
		Help: "Total number of computed load plans",
	}, []string{"source", "trailer_id"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "loadplan_plan_duration_seconds",
		Help:    "Time spent computing a plan",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	feasible := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "loadplan_feasible_gallons",
		Help: "Feasible total volume of the last computed plan",
	})
	margin := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "loadplan_margin_lbs",
		Help: "Payload margin of the last computed plan",
	})

	if err := reg.Register(plans); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			plans = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(feasible); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			feasible = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(margin); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			margin = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	return &PromSink{plans: plans, duration: duration, feasible: feasible, margin: margin}, nil
}

// RecordPlan implements the metrics Sink.
func (s *PromSink) RecordPlan(ev coremetrics.PlanEvent) error {
	s.plans.WithLabelValues(ev.Source, ev.TrailerID).Inc()
	s.duration.WithLabelValues(ev.Source).Observe(ev.Elapsed.Seconds())
	s.feasible.Set(ev.FeasibleGallons)
	s.margin.Set(ev.MarginLbs)
	return nil
}
