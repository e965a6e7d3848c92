package strategy

// Strategy tags in fixed predicate order. Dominant-tag selection uses this
// order as the tie-break, so it must never be reordered.
const (
	TagTradeHeavy           = "Trade-Heavy"
	TagResourceConservative = "Resource-Conservative"
	TagGrowthFocused        = "Growth-Focused"
	TagWelfarePriority      = "Welfare-Priority"
	TagMigrationAttracting  = "Migration-Attracting"
	TagClimateResilient     = "Climate-Resilient"
	TagBalanced             = "Balanced"
)

// Thresholds are the classification calibration constants. The defaults are
// the compatibility values consumers depend on; they are configuration, not
// derived from data, and changing any of them is a deliberate recalibration.
type Thresholds struct {
	// TradeHeavyRate is the execution rate above which a state is Trade-Heavy.
	TradeHeavyRate float64 `yaml:"trade_heavy_rate"`
	// ConservativeRatio bounds consumption relative to generation for
	// Resource-Conservative: consumed < ratio x generated.
	ConservativeRatio float64 `yaml:"conservative_ratio"`
	// GrowthFocusedGDP is the mean GDP growth (percent) above which a state
	// is Growth-Focused.
	GrowthFocusedGDP float64 `yaml:"growth_focused_gdp"`
	// WelfarePriorityIndex is the mean welfare above which a state is
	// Welfare-Priority.
	WelfarePriorityIndex float64 `yaml:"welfare_priority_index"`
	// ResilientWelfare and ResilientShock gate Climate-Resilient: the state
	// keeps welfare above the floor despite shock exposure above the floor.
	ResilientWelfare float64 `yaml:"resilient_welfare"`
	ResilientShock   float64 `yaml:"resilient_shock"`

	// GDPGrowthScale normalizes mean GDP growth (percent) before clamping
	// into [0, 1] for the resilience composite. 15 percent is an assumed
	// realistic growth ceiling, not a data-derived figure.
	GDPGrowthScale float64 `yaml:"gdp_growth_scale"`

	// Resilience composite weights. They sum to 1 so the score stays in [0, 1].
	WeightWelfare float64 `yaml:"weight_welfare"`
	WeightGrowth  float64 `yaml:"weight_growth"`
	WeightTrade   float64 `yaml:"weight_trade"`
	WeightEquity  float64 `yaml:"weight_equity"`

	// Critical-state cutoffs evaluated on the final-tick snapshot, distinct
	// from the range-mean tag predicates above.
	CriticalWelfare float64 `yaml:"critical_welfare"`
	CriticalGrowth  float64 `yaml:"critical_growth"`
}

// DefaultThresholds returns the compatibility calibration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TradeHeavyRate:       0.50,
		ConservativeRatio:    0.85,
		GrowthFocusedGDP:     3.0,
		WelfarePriorityIndex: 0.5,
		ResilientWelfare:     0.4,
		ResilientShock:       0.4,
		GDPGrowthScale:       15.0,
		WeightWelfare:        0.35,
		WeightGrowth:         0.25,
		WeightTrade:          0.20,
		WeightEquity:         0.20,
		CriticalWelfare:      0.3,
		CriticalGrowth:       0.0,
	}
}
