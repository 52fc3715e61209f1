package plan

import "fmt"

// Solver strategy names accepted in the configuration.
const (
	StrategyBisect = "bisect"
	StrategyLP     = "lp"
)

// Config defines the planning engine settings. The bias breakpoints and the
// position sign convention are deliberate configuration constants, never
// computed values.
type Config struct {
	// Neutral is the slider position mapping to zero bias.
	Neutral float64 `json:"neutral"`
	// FrontCap is the slider position mapping to bias +1; beyond it lies the
	// plow zone.
	FrontCap float64 `json:"front_cap"`
	// PlowMax is the bias reached at slider 1.
	PlowMax float64 `json:"plow_max"`
	// Exponent shapes all three bias segments; must be > 1 so the curve is
	// gentle near neutral.
	Exponent float64 `json:"exponent"`
	// InvertPosition flips the sign of catalog positions. Set it when the
	// equipment source stores positive = rear instead of positive = front.
	InvertPosition bool `json:"invert_position"`
	// MinShapingMult floors the per-compartment bias multiplier so no
	// compartment is given literally zero share.
	MinShapingMult float64 `json:"min_shaping_mult"`
	// Strategy selects the capacity solver: "bisect" or "lp".
	Strategy string `json:"strategy"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Neutral == 0 {
		c.Neutral = 0.5
	}
	if c.FrontCap == 0 {
		c.FrontCap = 0.9
	}
	if c.PlowMax == 0 {
		c.PlowMax = 2.5
	}
	if c.Exponent == 0 {
		c.Exponent = 1.8
	}
	if c.MinShapingMult == 0 {
		c.MinShapingMult = 0.02
	}
	if c.Strategy == "" {
		c.Strategy = StrategyBisect
	}
}

// Validate checks the breakpoint ordering and the strategy name.
func (c Config) Validate() error {
	if c.Neutral <= 0 || c.Neutral >= 1 {
		return fmt.Errorf("neutral must be in (0,1), got %v", c.Neutral)
	}
	if c.FrontCap <= c.Neutral || c.FrontCap >= 1 {
		return fmt.Errorf("front_cap must be in (neutral,1), got %v", c.FrontCap)
	}
	if c.PlowMax < 1 {
		return fmt.Errorf("plow_max must be >= 1, got %v", c.PlowMax)
	}
	if c.Exponent <= 1 {
		return fmt.Errorf("exponent must be > 1, got %v", c.Exponent)
	}
	if c.MinShapingMult <= 0 || c.MinShapingMult >= 1 {
		return fmt.Errorf("min_shaping_mult must be in (0,1), got %v", c.MinShapingMult)
	}
	if c.Strategy != StrategyBisect && c.Strategy != StrategyLP {
		return fmt.Errorf("unknown strategy %s", c.Strategy)
	}
	return nil
}

// Curve returns the bias curve defined by the configuration.
func (c Config) Curve() BiasCurve {
	return BiasCurve{Neutral: c.Neutral, FrontCap: c.FrontCap, PlowMax: c.PlowMax, Exponent: c.Exponent}
}
