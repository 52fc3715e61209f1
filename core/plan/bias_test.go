package plan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBiasCurveAnchors(t *testing.T) {
	c := DefaultBiasCurve()
	assert.Equal(t, 0.0, c.FromSlider(c.Neutral), "neutral maps to exactly zero")
	assert.Equal(t, 1.0, c.FromSlider(c.FrontCap), "front cap maps to exactly one")
	assert.Equal(t, -1.0, c.FromSlider(0), "full rear maps to -1")
	assert.Equal(t, c.PlowMax, c.FromSlider(1), "full front maps to the plow maximum")
}

func TestBiasCurveContinuity(t *testing.T) {
	c := DefaultBiasCurve()
	const step = 1e-9
	assert.InDelta(t, c.FromSlider(c.Neutral), c.FromSlider(c.Neutral-step), 1e-6)
	assert.InDelta(t, c.FromSlider(c.Neutral), c.FromSlider(c.Neutral+step), 1e-6)
	assert.InDelta(t, c.FromSlider(c.FrontCap), c.FromSlider(c.FrontCap-step), 1e-6)
	assert.InDelta(t, c.FromSlider(c.FrontCap), c.FromSlider(c.FrontCap+step), 1e-6)
}

func TestBiasCurveMonotonic(t *testing.T) {
	c := DefaultBiasCurve()
	prev := math.Inf(-1)
	for s := 0.0; s <= 1.0+1e-12; s += 0.001 {
		b := c.FromSlider(s)
		if b < prev-1e-12 {
			t.Fatalf("curve decreased at slider %v: %v < %v", s, b, prev)
		}
		prev = b
	}
}

func TestBiasCurveClampsInput(t *testing.T) {
	c := DefaultBiasCurve()
	assert.Equal(t, c.FromSlider(0), c.FromSlider(-3))
	assert.Equal(t, c.FromSlider(1), c.FromSlider(7))
}

func TestBiasCurveGentleNearNeutral(t *testing.T) {
	// The power exponent keeps the curve flat near neutral and steep toward
	// the extremes.
	c := DefaultBiasCurve()
	nearNeutral := c.FromSlider(c.Neutral+0.04) - c.FromSlider(c.Neutral)
	nearCap := c.FromSlider(c.FrontCap) - c.FromSlider(c.FrontCap-0.04)
	assert.Less(t, nearNeutral, nearCap)
}
