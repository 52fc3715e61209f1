package plan

import (
	"math"

	"github.com/tanklogix/loadplan/core/model"
)

// waterLbsPerGal is the density of water at 60F, the reference for specific
// gravity.
const waterLbsPerGal = 8.345404

// DensityAt converts an API gravity at 60F and a thermal expansion coefficient
// into lbs per gallon at the given temperature. No bounds checking is applied;
// callers must treat a non-finite or non-positive result as "no density
// available".
func DensityAt(api60, alphaPerF, tempF float64) float64 {
	sg := 141.5 / (api60 + 131.5)
	d60 := sg * waterLbsPerGal
	return d60 / (1 + alphaPerF*(tempF-60))
}

// CorrectedAPI60 back-corrects an observed hydrometer reading to a
// 60F-equivalent API gravity: the returned value reproduces the observed
// density when fed through DensityAt at the observation temperature.
func CorrectedAPI60(observedAPI, alphaPerF, observedTempF float64) float64 {
	dObs := 141.5 / (observedAPI + 131.5) * waterLbsPerGal
	d60 := dObs * (1 + alphaPerF*(observedTempF-60))
	return 141.5/(d60/waterLbsPerGal) - 131.5
}

// ResolveDensity returns the product's density at the planning temperature,
// preferring an operator observation over the catalog reference when one is
// present. A non-finite result is returned as-is for the caller to reject.
func ResolveDensity(p model.Product, tempF float64) float64 {
	api := p.API60
	if p.Observation != nil {
		api = CorrectedAPI60(p.Observation.API, p.AlphaPerF, p.Observation.TempF)
	}
	return DensityAt(api, p.AlphaPerF, tempF)
}

// validDensity reports whether d can contribute weight to a plan.
func validDensity(d float64) bool {
	return d > 0 && !math.IsInf(d, 0) && !math.IsNaN(d)
}
