package plan

import "github.com/tanklogix/loadplan/core/model"

// capEpsilon is the tolerance below which a compartment counts as full.
const capEpsilon = 1e-6

// AllocSpec is one compartment's input to the water-fill: its effective
// capacity and its bias-shaped weight.
type AllocSpec struct {
	Capacity float64
	Weight   float64
}

// ShapingWeights derives the allocator weights from the active compartments
// and a bias coefficient. Each weight is the effective capacity times a
// position multiplier 1 + bias*(pos/maxAbsPos), floored at minMult so no
// compartment is given literally zero share.
func ShapingWeights(comps []model.ActiveCompartment, bias, minMult float64) []AllocSpec {
	specs := make([]AllocSpec, len(comps))
	var maxAbs float64
	for _, c := range comps {
		if a := abs(c.Position); a > maxAbs {
			maxAbs = a
		}
	}
	for i, c := range comps {
		mult := 1.0
		if maxAbs > 0 {
			mult = 1 + bias*(c.Position/maxAbs)
		}
		if mult < minMult {
			mult = minMult
		}
		specs[i] = AllocSpec{Capacity: c.EffectiveMax, Weight: c.EffectiveMax * mult}
	}
	return specs
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Allocate distributes totalVolume across the compartments proportionally to
// their weights, never exceeding any capacity (water-fill). Volume left over
// when a compartment caps is redistributed among the remaining ones in the
// next round. Output order matches input order; the caller re-sorts rows by
// compartment id.
func Allocate(totalVolume float64, specs []AllocSpec) []float64 {
	planned := make([]float64, len(specs))
	if totalVolume <= 0 || len(specs) == 0 {
		return planned
	}

	active := make([]bool, len(specs))
	for i, s := range specs {
		active[i] = s.Capacity > capEpsilon && s.Weight > 0
	}

	// Each round either satisfies the remaining demand or caps at least one
	// compartment, so 2*N rounds always suffice; 20 is a safety margin for
	// small compartment counts.
	maxRounds := 2 * len(specs)
	if maxRounds < 20 {
		maxRounds = 20
	}

	remaining := totalVolume
	for round := 0; round < maxRounds && remaining > capEpsilon; round++ {
		var weightSum float64
		for i, s := range specs {
			if active[i] {
				weightSum += s.Weight
			}
		}
		if weightSum <= 0 {
			break
		}

		newlyCapped := false
		for i, s := range specs {
			if !active[i] {
				continue
			}
			share := remaining * (s.Weight / weightSum)
			room := s.Capacity - planned[i]
			if share >= room-capEpsilon {
				planned[i] = s.Capacity
				active[i] = false
				newlyCapped = true
			} else {
				planned[i] += share
			}
		}

		var sum float64
		for _, v := range planned {
			sum += v
		}
		remaining = totalVolume - sum

		if !newlyCapped {
			break
		}
	}
	return planned
}
