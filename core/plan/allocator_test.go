package plan

import (
	"math"
	"testing"

	"github.com/tanklogix/loadplan/core/model"
)

func specsOf(caps ...float64) []AllocSpec {
	specs := make([]AllocSpec, len(caps))
	for i, c := range caps {
		specs[i] = AllocSpec{Capacity: c, Weight: c}
	}
	return specs
}

func sum(vs []float64) float64 {
	var s float64
	for _, v := range vs {
		s += v
	}
	return s
}

func TestAllocateProportional(t *testing.T) {
	planned := Allocate(1100, specsOf(3000, 2500))
	if math.Abs(planned[0]-600) > 1e-6 || math.Abs(planned[1]-500) > 1e-6 {
		t.Fatalf("expected 600/500 split got %v", planned)
	}
}

func TestAllocateRedistributesOnCap(t *testing.T) {
	// A heavily weighted small compartment caps and its overflow flows to the
	// other one on the next round.
	specs := []AllocSpec{{Capacity: 3000, Weight: 1000}, {Capacity: 500, Weight: 2000}}
	planned := Allocate(2000, specs)
	if math.Abs(planned[1]-500) > 1e-6 {
		t.Fatalf("small compartment should cap at 500, got %v", planned[1])
	}
	if math.Abs(planned[0]-1500) > 1e-6 {
		t.Fatalf("big compartment should absorb the overflow, got %v", planned[0])
	}
}

func TestAllocateNeverExceedsCapacity(t *testing.T) {
	specs := specsOf(100, 250, 40, 900, 12)
	for _, total := range []float64{0, 50, 500, 1302, 5000} {
		planned := Allocate(total, specs)
		for i, v := range planned {
			if v < 0 || v > specs[i].Capacity+capEpsilon {
				t.Fatalf("total %v: compartment %d out of range: %v", total, i, v)
			}
		}
		want := total
		if cap := sum([]float64{100, 250, 40, 900, 12}); want > cap {
			want = cap
		}
		if math.Abs(sum(planned)-want) > 1e-6 {
			t.Fatalf("total %v: allocated %v, want %v", total, sum(planned), want)
		}
	}
}

func TestAllocateDeterministic(t *testing.T) {
	specs := []AllocSpec{{Capacity: 3000, Weight: 3600}, {Capacity: 2500, Weight: 2000}, {Capacity: 1200, Weight: 1200}}
	a := Allocate(4000, specs)
	b := Allocate(4000, specs)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("allocation not deterministic at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestAllocateDegenerate(t *testing.T) {
	if got := Allocate(100, nil); len(got) != 0 {
		t.Fatalf("expected empty output")
	}
	for _, v := range Allocate(-5, specsOf(100, 200)) {
		if v != 0 {
			t.Fatalf("negative demand must allocate nothing")
		}
	}
	for _, v := range Allocate(100, []AllocSpec{{Capacity: 100, Weight: 0}}) {
		if v != 0 {
			t.Fatalf("zero-weight compartment must receive nothing")
		}
	}
}

func TestShapingWeights(t *testing.T) {
	comps := []model.ActiveCompartment{
		{ID: 1, EffectiveMax: 1000, Position: 2},
		{ID: 2, EffectiveMax: 1000, Position: -2},
	}
	neutral := ShapingWeights(comps, 0, 0.02)
	if neutral[0].Weight != 1000 || neutral[1].Weight != 1000 {
		t.Fatalf("neutral bias must leave weights at capacity: %v", neutral)
	}
	front := ShapingWeights(comps, 1, 0.02)
	if !(front[0].Weight > front[1].Weight) {
		t.Fatalf("front bias must favour the front compartment: %v", front)
	}
	// Deep plow bias would drive the rear multiplier negative; the floor
	// keeps a small positive share.
	plow := ShapingWeights(comps, 2.5, 0.02)
	if plow[1].Weight != 1000*0.02 {
		t.Fatalf("expected floored rear weight, got %v", plow[1].Weight)
	}
}
