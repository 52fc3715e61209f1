package metrics

import "time"

// PlanEvent captures one computed plan for observability purposes.
type PlanEvent struct {
	PlanID          string
	Source          string
	TrailerID       string
	FeasibleGallons float64
	TotalGallons    float64
	TotalLbs        float64
	MarginLbs       float64
	Rows            int
	Elapsed         time.Duration
	ComputedAt      time.Time
}

// Sink records plan events.
type Sink interface {
	RecordPlan(ev PlanEvent) error
}

// NopSink discards all events.
type NopSink struct{}

// RecordPlan implements Sink.
func (NopSink) RecordPlan(PlanEvent) error { return nil }
