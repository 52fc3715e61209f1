package plan

import "github.com/tanklogix/loadplan/core/model"

const (
	// solverIterations resolves sub-gallon precision over capacity ranges up
	// to tens of thousands of gallons.
	solverIterations = 22
	// weightTolerance absorbs floating-point noise in the payload comparison.
	weightTolerance = 1e-6
)

// Result is a feasible total volume and its water-fill allocation, one entry
// per active compartment in input order.
type Result struct {
	FeasibleGallons float64
	Planned         []float64
}

// Solver finds the maximum total volume whose allocation stays within the
// payload limit.
type Solver interface {
	Solve(comps []model.ActiveCompartment, payloadLbs, bias float64) Result
}

// BisectSolver performs a bounded binary search on the total requested volume.
type BisectSolver struct {
	MinShapingMult float64
}

// Solve runs the search over [0, sum of effective capacities]. Degenerate
// inputs (no compartments, zero capacity, payload <= 0) return a zero plan
// without searching.
func (s BisectSolver) Solve(comps []model.ActiveCompartment, payloadLbs, bias float64) Result {
	zero := Result{Planned: make([]float64, len(comps))}
	if len(comps) == 0 || payloadLbs <= 0 {
		return zero
	}
	specs := ShapingWeights(comps, bias, s.minMult())
	var totalCap float64
	for _, sp := range specs {
		totalCap += sp.Capacity
	}
	if totalCap <= 0 {
		return zero
	}

	// Capacity-bound fast path: when even a brim-full trailer is within the
	// payload the search is unnecessary.
	full := Allocate(totalCap, specs)
	if allocatedLbs(full, comps) <= payloadLbs+weightTolerance {
		return Result{FeasibleGallons: totalCap, Planned: full}
	}

	lo, hi := 0.0, totalCap
	for i := 0; i < solverIterations; i++ {
		mid := (lo + hi) / 2
		planned := Allocate(mid, specs)
		if allocatedLbs(planned, comps) <= payloadLbs+weightTolerance {
			lo = mid
		} else {
			hi = mid
		}
	}
	return Result{FeasibleGallons: lo, Planned: Allocate(lo, specs)}
}

func (s BisectSolver) minMult() float64 {
	if s.MinShapingMult > 0 {
		return s.MinShapingMult
	}
	return 0.02
}

// allocatedLbs sums planned volume times density. Non-finite densities
// contribute nothing rather than poisoning the aggregate.
func allocatedLbs(planned []float64, comps []model.ActiveCompartment) float64 {
	var lbs float64
	for i, v := range planned {
		if !validDensity(comps[i].LbsPerGallon) {
			continue
		}
		lbs += v * comps[i].LbsPerGallon
	}
	return lbs
}
