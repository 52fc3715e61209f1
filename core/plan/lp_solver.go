package plan

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/tanklogix/loadplan/core/model"
)

// LPSolver finds the feasible volume by solving a linear program: maximise
// total volume subject to per-compartment capacities and the payload weight
// cap. The water-fill allocator is then re-run at the LP optimum so the rows
// keep their bias shaping; if that allocation breaks the weight invariant
// (possible with mixed densities) the solver falls back to bisection.
type LPSolver struct {
	MinShapingMult float64
}

// ErrOverweight indicates the bias-shaped allocation at the LP optimum
// exceeds the payload limit.
var ErrOverweight = errors.New("lp volume not allocatable within payload")

// solveVolumeLP solves the LP in standard form via the simplex method.
// Variables are the n volumes, n capacity slacks and one weight slack.
func solveVolumeLP(caps, densities []float64, payloadLbs float64) ([]float64, error) {
	n := len(caps)
	cols := 2*n + 1
	c := make([]float64, cols)
	for i := 0; i < n; i++ {
		c[i] = -1
	}
	a := mat.NewDense(n+1, cols, nil)
	b := make([]float64, n+1)
	for i := 0; i < n; i++ {
		a.Set(i, i, 1)
		a.Set(i, n+i, 1)
		b[i] = caps[i]
	}
	for i := 0; i < n; i++ {
		a.Set(n, i, densities[i])
	}
	a.Set(n, 2*n, 1)
	b[n] = payloadLbs
	_, sol, err := lp.Simplex(c, a, b, 1e-7, nil)
	if err != nil {
		return nil, err
	}
	return sol[:n], nil
}

// lpSolve points to the LP routine so tests can simulate solver failures.
var lpSolve = solveVolumeLP

// SolveStrict runs the LP and returns an error if the solver fails or the
// bias-shaped allocation at the optimum exceeds the payload. No fallback is
// applied.
func (s LPSolver) SolveStrict(comps []model.ActiveCompartment, payloadLbs, bias float64) (Result, error) {
	zero := Result{Planned: make([]float64, len(comps))}
	if len(comps) == 0 || payloadLbs <= 0 {
		return zero, nil
	}
	specs := ShapingWeights(comps, bias, s.minMult())
	caps := make([]float64, len(comps))
	densities := make([]float64, len(comps))
	var totalCap float64
	for i, sp := range specs {
		caps[i] = sp.Capacity
		totalCap += sp.Capacity
		if validDensity(comps[i].LbsPerGallon) {
			densities[i] = comps[i].LbsPerGallon
		}
	}
	if totalCap <= 0 {
		return zero, nil
	}

	vols, err := lpSolve(caps, densities, payloadLbs)
	if err != nil {
		return zero, err
	}
	var feasible float64
	for i, v := range vols {
		if v < 0 {
			v = 0
		}
		if v > caps[i] {
			v = caps[i]
		}
		feasible += v
	}
	planned := Allocate(feasible, specs)
	if allocatedLbs(planned, comps) > payloadLbs+weightTolerance {
		return zero, ErrOverweight
	}
	return Result{FeasibleGallons: feasible, Planned: planned}, nil
}

// Solve implements the Solver interface, falling back to BisectSolver when
// the strict LP path fails.
func (s LPSolver) Solve(comps []model.ActiveCompartment, payloadLbs, bias float64) Result {
	res, err := s.SolveStrict(comps, payloadLbs, bias)
	if err != nil {
		return BisectSolver{MinShapingMult: s.MinShapingMult}.Solve(comps, payloadLbs, bias)
	}
	return res
}

func (s LPSolver) minMult() float64 {
	if s.MinShapingMult > 0 {
		return s.MinShapingMult
	}
	return 0.02
}
