package plan

import "math"

// BiasCurve maps the operator's longitudinal-bias slider onto a signed bias
// coefficient. Slider 0 is full rear, 1 is full front ("plow"). The three
// segments share one power-curve exponent and are continuous at their
// boundaries: exactly 0 at the neutral point and exactly +1 at the front cap.
type BiasCurve struct {
	Neutral  float64
	FrontCap float64
	PlowMax  float64
	Exponent float64
}

// DefaultBiasCurve returns the curve used when no configuration is supplied.
func DefaultBiasCurve() BiasCurve {
	return BiasCurve{Neutral: 0.5, FrontCap: 0.9, PlowMax: 2.5, Exponent: 1.8}
}

// FromSlider converts a normalized slider value in [0,1] into a bias in
// [-1, PlowMax]. Out-of-range input is clamped.
func (c BiasCurve) FromSlider(s float64) float64 {
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	switch {
	case s < c.Neutral:
		t := (c.Neutral - s) / c.Neutral
		return -math.Pow(t, c.Exponent)
	case s <= c.FrontCap:
		t := (s - c.Neutral) / (c.FrontCap - c.Neutral)
		return math.Pow(t, c.Exponent)
	default:
		t := (s - c.FrontCap) / (1 - c.FrontCap)
		return 1 + (c.PlowMax-1)*math.Pow(t, c.Exponent)
	}
}
