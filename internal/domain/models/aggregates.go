package models

// RangeAggregates are one state's aggregates over a queried tick range, the
// input to strategy classification. Means of non-trade fields are taken over
// per-tick states (deduplicated), never over raw order rows; trade figures
// are taken over every order row.
type RangeAggregates struct {
	State string

	AvgWelfare    float64
	AvgGDPGrowth  float64
	AvgInequality float64
	// AvgShock is the mean shock intensity over ticks where a climate event
	// occurred; 0 when the range saw no events.
	AvgShock float64

	TotalGenerated float64
	TotalConsumed  float64
	NetMigration   int64

	TotalOrders        int
	ExecutedTrades     int
	TradeVolume        float64
	TradeExecutionRate float64
}
