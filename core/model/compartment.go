package model

import "fmt"

// MaxHeadspace caps the planning-only derating of a compartment's capacity.
const MaxHeadspace = 0.3

// Compartment describes one tank of a trailer as listed in the equipment
// catalog. Position is a signed longitudinal offset from the pivot; the sign
// convention of the catalog source is handled by the planner configuration,
// not here.
type Compartment struct {
	ID         int     `json:"id"`
	MaxGallons float64 `json:"max_gallons"`
	Position   float64 `json:"position"`
	Active     bool    `json:"active"`
}

// Validate checks that the compartment configuration is sound.
func (c Compartment) Validate() error {
	if c.MaxGallons <= 0 {
		return fmt.Errorf("compartment %d: max gallons must be positive", c.ID)
	}
	return nil
}

// EffectiveMax derates the true maximum by the given headspace fraction for
// planning purposes. The true maximum is never mutated; headspace is a
// transient per-session override clamped to [0, MaxHeadspace].
func (c Compartment) EffectiveMax(headspace float64) float64 {
	if headspace < 0 {
		headspace = 0
	}
	if headspace > MaxHeadspace {
		headspace = MaxHeadspace
	}
	return c.MaxGallons * (1 - headspace)
}
