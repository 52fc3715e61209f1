package plan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanklogix/loadplan/core/model"
)

func testInputs() Inputs {
	return Inputs{
		Compartments: []model.Compartment{
			{ID: 2, MaxGallons: 2500, Position: -1, Active: true},
			{ID: 1, MaxGallons: 3000, Position: 1, Active: true},
			{ID: 3, MaxGallons: 1200, Position: 0, Active: true},
		},
		Assignments: map[int]model.Assignment{
			1: {ProductID: "gas"},
			2: {ProductID: "gas"},
			3: {Empty: true},
		},
		Products: map[string]model.Product{
			"gas": {ID: "gas", API60: 60, AlphaPerF: 0.0007},
		},
		Limits:     model.EquipmentLimits{TargetGrossLbs: 62000, TareLbs: 32000},
		TempF:      60,
		BiasSlider: 0.5,
	}
}

func TestPlannerFiltersInactive(t *testing.T) {
	p := New(Config{}, nil)
	in := testInputs()
	active := p.ActiveCompartments(in)
	require.Len(t, active, 2, "empty compartment must be excluded")

	// Unknown product drops the compartment.
	in.Assignments[1] = model.Assignment{ProductID: "jetA"}
	require.Len(t, p.ActiveCompartments(in), 1)

	// Non-finite density drops the compartment.
	in = testInputs()
	in.Products["gas"] = model.Product{ID: "gas", API60: -131.5}
	require.Empty(t, p.ActiveCompartments(in))

	// Catalog rows flagged inactive never plan.
	in = testInputs()
	in.Compartments[1].Active = false
	require.Len(t, p.ActiveCompartments(in), 1)
}

func TestPlannerHeadspaceDerates(t *testing.T) {
	p := New(Config{}, nil)
	in := testInputs()
	in.Headspace = map[int]float64{1: 0.1}
	active := p.ActiveCompartments(in)
	for _, c := range active {
		if c.ID == 1 {
			assert.InDelta(t, 2700, c.EffectiveMax, 1e-9)
			assert.Equal(t, 3000.0, c.TrueMax, "true maximum must survive derating")
		}
	}
}

func TestPlannerPositionConvention(t *testing.T) {
	in := testInputs()
	// Catalog stores positive = front here; without inversion compartment 1
	// is the front one.
	p := New(Config{}, nil)
	for _, c := range p.ActiveCompartments(in) {
		if c.ID == 1 {
			assert.Equal(t, 1.0, c.Position)
		}
	}
	p = New(Config{InvertPosition: true}, nil)
	for _, c := range p.ActiveCompartments(in) {
		if c.ID == 1 {
			assert.Equal(t, -1.0, c.Position)
		}
	}
}

func TestPlannerPlanAggregates(t *testing.T) {
	p := New(Config{}, nil)
	res := p.Plan(testInputs())

	require.Len(t, res.Rows, 2)
	assert.Equal(t, 1, res.Rows[0].CompartmentID, "rows sorted ascending by id")
	assert.Equal(t, 2, res.Rows[1].CompartmentID)
	assert.Equal(t, 30000.0, res.PayloadLbs)

	var gal, lbs float64
	for _, r := range res.Rows {
		require.GreaterOrEqual(t, r.PlannedGallons, 0.0)
		require.LessOrEqual(t, r.PlannedGallons, r.MaxGallons+1e-6)
		gal += r.PlannedGallons
		lbs += r.PlannedLbs
	}
	assert.InDelta(t, gal, res.TotalGallons, 1e-9)
	assert.InDelta(t, lbs, res.TotalLbs, 1e-9)
	assert.InDelta(t, res.PayloadLbs-res.TotalLbs, res.MarginLbs, 1e-9)
	assert.LessOrEqual(t, res.TotalLbs, res.PayloadLbs+1e-6)
}

func TestPlannerZeroPayload(t *testing.T) {
	p := New(Config{}, nil)
	in := testInputs()
	in.Limits = model.EquipmentLimits{}
	res := p.Plan(in)
	assert.Zero(t, res.FeasibleGallons)
	for _, r := range res.Rows {
		assert.Zero(t, r.PlannedGallons)
	}
}

func TestPlannerNoActiveCompartments(t *testing.T) {
	p := New(Config{}, nil)
	in := testInputs()
	in.Assignments = nil
	res := p.Plan(in)
	assert.Empty(t, res.Rows)
	assert.Zero(t, res.FeasibleGallons)
	assert.Zero(t, res.TotalGallons)
}

func TestPlannerPure(t *testing.T) {
	p := New(Config{}, nil)
	in := testInputs()
	a := p.Plan(in)
	b := p.Plan(in)
	require.Equal(t, a, b, "identical inputs must give identical results")
}

func TestPlannerObservedDensityChangesPlan(t *testing.T) {
	p := New(Config{}, nil)
	in := testInputs()
	base := p.Plan(in)

	gas := in.Products["gas"]
	gas.Observation = &model.DensityObservation{API: 50, TempF: 75}
	in.Products["gas"] = gas
	observed := p.Plan(in)

	// A denser observed reading lowers the feasible volume under the same
	// payload.
	if !(observed.FeasibleGallons < base.FeasibleGallons) {
		t.Fatalf("expected lower feasible volume, base %v observed %v", base.FeasibleGallons, observed.FeasibleGallons)
	}
	if math.Abs(observed.TotalLbs-base.TotalLbs) > 1 {
		t.Fatalf("both plans should exhaust the payload: %v vs %v", observed.TotalLbs, base.TotalLbs)
	}
}
