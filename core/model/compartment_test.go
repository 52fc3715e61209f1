package model

import "testing"

func TestEffectiveMax(t *testing.T) {
	c := Compartment{ID: 1, MaxGallons: 2000}
	if got := c.EffectiveMax(0); got != 2000 {
		t.Fatalf("expected 2000 got %v", got)
	}
	if got := c.EffectiveMax(0.1); got != 1800 {
		t.Fatalf("expected 1800 got %v", got)
	}
	// headspace is clamped, never mutating the true maximum
	if got := c.EffectiveMax(0.9); got != 2000*(1-MaxHeadspace) {
		t.Fatalf("expected clamp to %v got %v", 2000*(1-MaxHeadspace), got)
	}
	if got := c.EffectiveMax(-0.5); got != 2000 {
		t.Fatalf("expected 2000 got %v", got)
	}
	if c.MaxGallons != 2000 {
		t.Fatalf("true maximum mutated")
	}
}

func TestCompartmentValidate(t *testing.T) {
	if err := (Compartment{ID: 1, MaxGallons: 100}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Compartment{ID: 2}).Validate(); err == nil {
		t.Fatalf("expected error for zero capacity")
	}
}

func TestPayloadLbs(t *testing.T) {
	l := EquipmentLimits{TargetGrossLbs: 80000, TareLbs: 32000}
	if got := l.PayloadLbs(); got != 48000 {
		t.Fatalf("expected 48000 got %v", got)
	}
	// tare above target clamps to zero rather than going negative
	l = EquipmentLimits{TargetGrossLbs: 30000, TareLbs: 32000}
	if got := l.PayloadLbs(); got != 0 {
		t.Fatalf("expected 0 got %v", got)
	}
}
