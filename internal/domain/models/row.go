package models

// OrderType is the side of a trade order.
type OrderType string

const (
	OrderBid OrderType = "bid"
	OrderAsk OrderType = "ask"
)

// ResourceType is one of the three tracked resource markets.
type ResourceType string

const (
	ResourceWater  ResourceType = "Water"
	ResourceFood   ResourceType = "Food"
	ResourceEnergy ResourceType = "Energy"
)

// ResourceTypes lists all resource markets in canonical order.
var ResourceTypes = []ResourceType{ResourceWater, ResourceFood, ResourceEnergy}

// ClimateEvent is the climate event active for a state at a tick.
type ClimateEvent string

const (
	ClimateNone     ClimateEvent = "None"
	ClimateHeatwave ClimateEvent = "Heatwave"
	ClimateDrought  ClimateEvent = "Drought"
	ClimateFlood    ClimateEvent = "Flood"
	ClimateCyclone  ClimateEvent = "Cyclone"
)

// ClimateEvents lists the events that count as shocks (None excluded).
var ClimateEvents = []ClimateEvent{ClimateHeatwave, ClimateDrought, ClimateFlood, ClimateCyclone}

// Row is one dataset record: the per-(tick, state) economic state duplicated
// onto one trade-order row. Non-trade fields are identical across all rows
// sharing the same (tick, state); trade fields differ per order.
type Row struct {
	Tick  int
	State string

	Population      float64
	WaterSupply     float64
	FoodSupply      float64
	EnergySupply    float64
	WaterGenerated  float64
	FoodGenerated   float64
	EnergyGenerated float64
	WaterConsumed   float64
	FoodConsumed    float64
	EnergyConsumed  float64
	StateGDP        float64
	GDPGrowthRate   float64
	WelfareIndex    float64
	InequalityIndex float64
	MigrationIn     int64
	MigrationOut    int64

	OrderType     OrderType
	ResourceType  ResourceType
	TradeQuantity float64
	TradePrice    float64
	TradeExecuted bool

	ClimateEvent   ClimateEvent
	ShockIntensity float64
}

// ValidOrderType reports whether s is a recognized order side.
func ValidOrderType(s string) bool {
	return s == string(OrderBid) || s == string(OrderAsk)
}

// ValidResourceType reports whether s is a recognized resource market.
func ValidResourceType(s string) bool {
	for _, r := range ResourceTypes {
		if s == string(r) {
			return true
		}
	}
	return false
}

// ValidClimateEvent reports whether s is a recognized climate event, None included.
func ValidClimateEvent(s string) bool {
	if s == string(ClimateNone) {
		return true
	}
	for _, e := range ClimateEvents {
		if s == string(e) {
			return true
		}
	}
	return false
}
