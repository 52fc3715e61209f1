package model

// EquipmentLimits holds the weight limits of a truck/trailer combination.
type EquipmentLimits struct {
	TargetGrossLbs float64 `json:"target_gross_lbs"`
	TareLbs        float64 `json:"tare_lbs"`
}

// PayloadLbs returns the allowed weight of loaded product. It is never
// negative: with no equipment selected the payload is simply zero.
func (l EquipmentLimits) PayloadLbs() float64 {
	p := l.TargetGrossLbs - l.TareLbs
	if p < 0 {
		return 0
	}
	return p
}

// ActiveCompartment is the derived, ephemeral planning view of a compartment:
// a non-empty assignment with a resolvable density. Position carries the
// planner's sign convention (positive = front).
type ActiveCompartment struct {
	ID           int
	TrueMax      float64
	EffectiveMax float64
	Position     float64
	LbsPerGallon float64
	ProductID    string
}

// PlanRow is one compartment's slice of a computed plan.
type PlanRow struct {
	CompartmentID  int     `json:"compartment_id"`
	MaxGallons     float64 `json:"max_gallons"`
	PlannedGallons float64 `json:"planned_gallons"`
	LbsPerGallon   float64 `json:"lbs_per_gallon"`
	PlannedLbs     float64 `json:"planned_lbs"`
	Position       float64 `json:"position"`
	ProductID      string  `json:"product_id"`
}

// PlanResult is the engine's primary output: rows in ascending compartment-id
// order plus the aggregate figures surfaced to the operator.
type PlanResult struct {
	Rows            []PlanRow `json:"rows"`
	TotalGallons    float64   `json:"total_gallons"`
	TotalLbs        float64   `json:"total_lbs"`
	MarginLbs       float64   `json:"margin_lbs"`
	FeasibleGallons float64   `json:"feasible_gallons"`
	PayloadLbs      float64   `json:"payload_lbs"`
}
