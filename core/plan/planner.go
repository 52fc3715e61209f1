package plan

import (
	"sort"

	"github.com/tanklogix/loadplan/core/logger"
	"github.com/tanklogix/loadplan/core/model"
)

// Inputs is the full state a planning pass depends on. The planner is a pure
// function of it: identical inputs always produce identical results.
type Inputs struct {
	Compartments []model.Compartment
	Assignments  map[int]model.Assignment
	Products     map[string]model.Product
	Limits       model.EquipmentLimits
	TempF        float64
	BiasSlider   float64
	Headspace    map[int]float64
}

// Planner assembles the active compartment set, invokes the capacity solver
// and exposes the row-level plan plus aggregates. It holds no state between
// calls.
type Planner struct {
	cfg    Config
	solver Solver
	log    logger.Logger
}

// New creates a Planner from the engine configuration.
func New(cfg Config, log logger.Logger) *Planner {
	cfg.SetDefaults()
	var solver Solver
	switch cfg.Strategy {
	case StrategyLP:
		solver = LPSolver{MinShapingMult: cfg.MinShapingMult}
	default:
		solver = BisectSolver{MinShapingMult: cfg.MinShapingMult}
	}
	return &Planner{cfg: cfg, solver: solver, log: log}
}

// ActiveCompartments filters to compartments eligible for planning: a
// non-empty assignment, a resolvable finite positive density and a positive
// effective capacity. Catalog positions are sign-flipped here when the
// configuration says the source stores positive = rear.
func (p *Planner) ActiveCompartments(in Inputs) []model.ActiveCompartment {
	var active []model.ActiveCompartment
	for _, c := range in.Compartments {
		if !c.Active || c.MaxGallons <= 0 {
			continue
		}
		asn, ok := in.Assignments[c.ID]
		if !ok || asn.Empty || asn.ProductID == "" {
			continue
		}
		prod, ok := in.Products[asn.ProductID]
		if !ok {
			continue
		}
		d := ResolveDensity(prod, in.TempF)
		if !validDensity(d) {
			if p.log != nil {
				p.log.Debugf("compartment %d: no usable density for %s, skipping", c.ID, asn.ProductID)
			}
			continue
		}
		eff := c.EffectiveMax(in.Headspace[c.ID])
		if eff <= 0 {
			continue
		}
		pos := c.Position
		if p.cfg.InvertPosition {
			pos = -pos
		}
		active = append(active, model.ActiveCompartment{
			ID:           c.ID,
			TrueMax:      c.MaxGallons,
			EffectiveMax: eff,
			Position:     pos,
			LbsPerGallon: d,
			ProductID:    asn.ProductID,
		})
	}
	return active
}

// Plan computes a full planning pass. The worst outcome is an empty or
// all-zero plan; nothing here is fatal.
func (p *Planner) Plan(in Inputs) model.PlanResult {
	active := p.ActiveCompartments(in)
	payload := in.Limits.PayloadLbs()
	bias := p.cfg.Curve().FromSlider(in.BiasSlider)

	res := p.solver.Solve(active, payload, bias)

	rows := make([]model.PlanRow, len(active))
	var totalGal, totalLbs float64
	for i, c := range active {
		gal := res.Planned[i]
		lbs := 0.0
		if validDensity(c.LbsPerGallon) {
			lbs = gal * c.LbsPerGallon
		}
		rows[i] = model.PlanRow{
			CompartmentID:  c.ID,
			MaxGallons:     c.TrueMax,
			PlannedGallons: gal,
			LbsPerGallon:   c.LbsPerGallon,
			PlannedLbs:     lbs,
			Position:       c.Position,
			ProductID:      c.ProductID,
		}
		totalGal += gal
		totalLbs += lbs
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CompartmentID < rows[j].CompartmentID })

	return model.PlanResult{
		Rows:            rows,
		TotalGallons:    totalGal,
		TotalLbs:        totalLbs,
		MarginLbs:       payload - totalLbs,
		FeasibleGallons: res.FeasibleGallons,
		PayloadLbs:      payload,
	}
}
