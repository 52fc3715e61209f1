package plan

import (
	"math"
	"testing"

	"github.com/tanklogix/loadplan/core/model"
)

func TestDensityAtReference(t *testing.T) {
	// At 60F the thermal term vanishes and the reference density comes back
	// exactly: 141.5/171.5 * 8.345404.
	got := DensityAt(40, 0.00035, 60)
	want := 141.5 / 171.5 * 8.345404
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %v got %v", want, got)
	}
	if math.Abs(want-6.897) > 0.01 {
		t.Fatalf("reference density off: %v", want)
	}
}

func TestDensityAtTemperatureDirection(t *testing.T) {
	// Warmer product expands, so lbs per gallon drop.
	cold := DensityAt(40, 0.00035, 30)
	ref := DensityAt(40, 0.00035, 60)
	warm := DensityAt(40, 0.00035, 90)
	if !(cold > ref && ref > warm) {
		t.Fatalf("expected monotonic decrease, got %v %v %v", cold, ref, warm)
	}
}

func TestCorrectedAPI60RoundTrip(t *testing.T) {
	// The corrected gravity must reproduce the observed density at the
	// observation temperature.
	const alpha = 0.0005
	observedAPI, observedTemp := 42.0, 85.0
	api60 := CorrectedAPI60(observedAPI, alpha, observedTemp)
	got := DensityAt(api60, alpha, observedTemp)
	want := 141.5 / (observedAPI + 131.5) * 8.345404
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestResolveDensityPrefersObservation(t *testing.T) {
	p := model.Product{ID: "diesel", API60: 36, AlphaPerF: 0.00045}
	catalog := ResolveDensity(p, 70)
	p.Observation = &model.DensityObservation{API: 34, TempF: 70}
	observed := ResolveDensity(p, 70)
	if catalog == observed {
		t.Fatalf("observation should change the resolved density")
	}
	// Lower API means denser product.
	if observed <= catalog {
		t.Fatalf("expected denser resolution, catalog %v observed %v", catalog, observed)
	}
}

func TestResolveDensityNonFinite(t *testing.T) {
	// api60 = -131.5 divides by zero; callers must get a rejectable value.
	d := DensityAt(-131.5, 0.0004, 60)
	if validDensity(d) {
		t.Fatalf("expected invalid density, got %v", d)
	}
	// A thermal denominator of zero must also be rejectable.
	d = DensityAt(40, -0.1, 70) // 1 + (-0.1)(10) = 0
	if validDensity(d) {
		t.Fatalf("expected invalid density, got %v", d)
	}
}
