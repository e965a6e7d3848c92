package models

// SimulationResult is the complete payload for one analysis run. Field names
// are part of the consumer contract and must not change.
type SimulationResult struct {
	Summary             Summary                  `json:"summary"`
	States              []StateReport            `json:"states"`
	StrategyMix         []StrategyCount          `json:"strategy_mix"`
	ResilienceRanking   []ResilienceEntry        `json:"resilience_ranking"`
	Trade               TradeSummary             `json:"trade"`
	Climate             ClimateSummary           `json:"climate"`
	Series              GlobalSeries             `json:"series"`
	StateSeries         map[string]StateSeries   `json:"state_series"`
	BidAskByState       []StateBidAsk            `json:"bid_ask_by_state"`
	BidAskOverTime      []TickBidAsk             `json:"bid_ask_over_time"`
	ResourceConsumption []ResourceConsumptionRow `json:"resource_consumption"`
}

// Summary is the final-tick roll-up across all states.
type Summary struct {
	TickRange           [2]int   `json:"tick_range"`
	FinalTick           int      `json:"final_tick"`
	TotalStates         int      `json:"total_states"`
	TotalPopulation     float64  `json:"total_population"`
	TotalGDP            float64  `json:"total_gdp"`
	AvgWelfare          float64  `json:"avg_welfare"`
	AvgInequality       float64  `json:"avg_inequality"`
	TotalTradesExecuted int      `json:"total_trades_executed"`
	TradeExecutionRate  float64  `json:"trade_execution_rate"`
	ClimateEvents       int      `json:"climate_events"`
	TotalDataRows       int      `json:"total_data_rows"`
	HealthyStates       []string `json:"healthy_states"`
	CriticalStates      []string `json:"critical_states"`
}

// Snapshot is a state's final-tick economic state plus trade activity
// accumulated over the whole queried range.
type Snapshot struct {
	State           string       `json:"state"`
	Population      float64      `json:"population"`
	StateGDP        float64      `json:"state_gdp"`
	GDPGrowthRate   float64      `json:"gdp_growth_rate"`
	WelfareIndex    float64      `json:"welfare_index"`
	InequalityIndex float64      `json:"inequality_index"`
	WaterSupply     float64      `json:"water_supply"`
	FoodSupply      float64      `json:"food_supply"`
	EnergySupply    float64      `json:"energy_supply"`
	NetMigration    int64        `json:"net_migration"`
	ExecutedTrades  int          `json:"executed_trades"`
	TotalOrders     int          `json:"total_orders"`
	TradeVolume     float64      `json:"trade_volume"`
	ClimateEvent    ClimateEvent `json:"climate_event"`
}

// StateReport is a Snapshot joined with the state's strategy classification.
type StateReport struct {
	Snapshot
	DominantStrategy string         `json:"dominant_strategy"`
	StrategyTags     []string       `json:"strategy_tags"`
	Scores           StrategyScores `json:"scores"`
}

// StrategyScores are the range-level aggregates a classification was built from.
type StrategyScores struct {
	AvgGDPGrowth         float64 `json:"avg_gdp_growth"`
	AvgWelfare           float64 `json:"avg_welfare"`
	AvgInequality        float64 `json:"avg_inequality"`
	AvgShock             float64 `json:"avg_shock"`
	TradeExecutionRate   float64 `json:"trade_execution_rate"`
	NetMigration         int64   `json:"net_migration"`
	ResourceSurplusRatio float64 `json:"resource_surplus_ratio"`
}

// StrategyCount is one bucket of the dominant-strategy histogram.
type StrategyCount struct {
	Strategy string `json:"strategy"`
	Count    int    `json:"count"`
}

// ResilienceEntry is one row of the resilience ranking.
type ResilienceEntry struct {
	State            string   `json:"state"`
	ResilienceScore  float64  `json:"resilience_score"`
	DominantStrategy string   `json:"dominant_strategy"`
	Tags             []string `json:"tags"`
}

// ResourceTradeStats is the per-resource order-book breakdown.
type ResourceTradeStats struct {
	Orders         int     `json:"orders"`
	ExecutedVolume float64 `json:"executed_volume"`
}

// TradeSummary aggregates the order book across the range and all states.
type TradeSummary struct {
	TotalOrders   int                           `json:"total_orders"`
	TotalExecuted int                           `json:"total_executed"`
	ExecutionRate float64                       `json:"execution_rate"`
	ByResource    map[string]ResourceTradeStats `json:"by_resource"`
}

// ClimateSummary aggregates climate shocks across the range and all states.
// Counts are tick-state occurrences; None never appears.
type ClimateSummary struct {
	EventCounts     map[string]int     `json:"event_counts"`
	AvgShockByEvent map[string]float64 `json:"avg_shock_by_event"`
}

// GlobalSeries is the cross-state time series, one entry per tick.
type GlobalSeries struct {
	Ticks            []int     `json:"ticks"`
	TotalPopulation  []float64 `json:"total_population"`
	TotalGDP         []float64 `json:"total_gdp"`
	AvgWelfare       []float64 `json:"avg_welfare"`
	TotalTradeVolume []float64 `json:"total_trade_volume"`
}

// StateSeries is one state's non-trade fields as parallel arrays ordered by tick.
type StateSeries struct {
	Ticks           []int     `json:"ticks"`
	Population      []float64 `json:"population"`
	StateGDP        []float64 `json:"state_gdp"`
	GDPGrowthRate   []float64 `json:"gdp_growth_rate"`
	WelfareIndex    []float64 `json:"welfare_index"`
	InequalityIndex []float64 `json:"inequality_index"`
	WaterSupply     []float64 `json:"water_supply"`
	FoodSupply      []float64 `json:"food_supply"`
	EnergySupply    []float64 `json:"energy_supply"`
}

// TickBidAsk is the per-tick order-book side summary across all states.
// Average prices are nil when the side had no orders at that tick.
type TickBidAsk struct {
	Tick        int      `json:"tick"`
	BidCount    int      `json:"bid_count"`
	AskCount    int      `json:"ask_count"`
	AvgBidPrice *float64 `json:"avg_bid_price,omitempty"`
	AvgAskPrice *float64 `json:"avg_ask_price,omitempty"`
}

// StateBidAsk is the per-state order-book side summary across the range.
type StateBidAsk struct {
	State       string   `json:"state"`
	BidCount    int      `json:"bid_count"`
	AskCount    int      `json:"ask_count"`
	AvgBidPrice *float64 `json:"avg_bid_price,omitempty"`
	AvgAskPrice *float64 `json:"avg_ask_price,omitempty"`
}

// ResourceConsumptionRow is a state's generation/consumption flows at the final tick.
type ResourceConsumptionRow struct {
	State           string  `json:"state"`
	WaterGenerated  float64 `json:"water_generated"`
	WaterConsumed   float64 `json:"water_consumed"`
	FoodGenerated   float64 `json:"food_generated"`
	FoodConsumed    float64 `json:"food_consumed"`
	EnergyGenerated float64 `json:"energy_generated"`
	EnergyConsumed  float64 `json:"energy_consumed"`
}

// RunEvent is the compact record published after a completed analysis run.
type RunEvent struct {
	Seed       int    `json:"seed"`
	TickStart  int    `json:"tick_start"`
	TickEnd    int    `json:"tick_end"`
	TotalRows  int    `json:"total_rows"`
	DurationMS int64  `json:"duration_ms"`
	Cached     bool   `json:"cached"`
	CreatedAt  string `json:"created_at"`
}
