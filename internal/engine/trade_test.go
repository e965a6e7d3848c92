package engine

import (
	"strings"
	"testing"

	"WorldSim/internal/dataset"
)

func TestTradeSummary(t *testing.T) {
	ds := loadFixture(t)
	w, _ := New(ds, 1, 3)
	sum := w.TradeSummary()

	if sum.TotalOrders != 7 {
		t.Fatalf("orders = %d, want 7", sum.TotalOrders)
	}
	if sum.TotalExecuted != 4 {
		t.Fatalf("executed = %d, want 4", sum.TotalExecuted)
	}
	approx(t, sum.ExecutionRate, 4.0/7.0, "execution rate")

	// All three resources are present even when one saw no activity.
	for _, r := range []string{"Water", "Food", "Energy"} {
		if _, ok := sum.ByResource[r]; !ok {
			t.Fatalf("resource %s missing", r)
		}
	}
	water := sum.ByResource["Water"]
	if water.Orders != 3 {
		t.Fatalf("water orders = %d, want 3", water.Orders)
	}
	approx(t, water.ExecutedVolume, 10, "water volume")
	energy := sum.ByResource["Energy"]
	if energy.Orders != 2 {
		t.Fatalf("energy orders = %d, want 2", energy.Orders)
	}
	approx(t, energy.ExecutedVolume, 29, "energy volume")
}

func TestBidAskOverTime(t *testing.T) {
	ds := loadFixture(t)
	w, _ := New(ds, 1, 3)
	out := w.BidAskOverTime()
	if len(out) != 3 {
		t.Fatalf("entries = %d, want 3", len(out))
	}

	t1 := out[0]
	if t1.BidCount != 1 || t1.AskCount != 2 {
		t.Fatalf("tick 1 counts = %d/%d, want 1/2", t1.BidCount, t1.AskCount)
	}
	if t1.AvgBidPrice == nil || t1.AvgAskPrice == nil {
		t.Fatalf("tick 1 averages missing")
	}
	approx(t, *t1.AvgBidPrice, 20, "tick 1 bid avg")
	approx(t, *t1.AvgAskPrice, 24, "tick 1 ask avg")

	// Tick 3 has no bids: the average is omitted, not zero.
	t3 := out[2]
	if t3.BidCount != 0 || t3.AvgBidPrice != nil {
		t.Fatalf("tick 3 bid side should be empty, got count=%d avg=%v", t3.BidCount, t3.AvgBidPrice)
	}
	if t3.AvgAskPrice == nil {
		t.Fatalf("tick 3 ask avg missing")
	}
	approx(t, *t3.AvgAskPrice, 21.5, "tick 3 ask avg")
}

func TestBidAskByState(t *testing.T) {
	ds := loadFixture(t)
	w, _ := New(ds, 1, 3)
	out := w.BidAskByState()
	if len(out) != 2 || out[0].State != "Kerala" || out[1].State != "Punjab" {
		t.Fatalf("states = %+v, want Kerala then Punjab", out)
	}
	kerala := out[0]
	if kerala.BidCount != 2 || kerala.AskCount != 2 {
		t.Fatalf("kerala counts = %d/%d, want 2/2", kerala.BidCount, kerala.AskCount)
	}
	approx(t, *kerala.AvgBidPrice, 22.5, "kerala bid avg")
	approx(t, *kerala.AvgAskPrice, 26, "kerala ask avg")
}

func TestClimateSummary(t *testing.T) {
	ds := loadFixture(t)
	w, _ := New(ds, 1, 3)
	sum := w.ClimateSummary()

	if len(sum.EventCounts) != 2 {
		t.Fatalf("event kinds = %d, want 2", len(sum.EventCounts))
	}
	if sum.EventCounts["Heatwave"] != 1 || sum.EventCounts["Drought"] != 1 {
		t.Fatalf("counts = %v", sum.EventCounts)
	}
	approx(t, sum.AvgShockByEvent["Heatwave"], 0.5, "heatwave shock")
	approx(t, sum.AvgShockByEvent["Drought"], 0.7, "drought shock")
	if _, ok := sum.EventCounts["None"]; ok {
		t.Fatalf("None must be excluded")
	}
	if w.TotalClimateEvents() != 2 {
		t.Fatalf("total events = %d, want 2", w.TotalClimateEvents())
	}
}

func TestClimateCountsDeduplicated(t *testing.T) {
	// Three order rows share one (tick, state) with a Flood; it is one
	// occurrence, not three.
	csv := `tick,state,population,water_supply,food_supply,energy_supply,water_generated,food_generated,energy_generated,water_consumed,food_consumed,energy_consumed,state_gdp,gdp_growth_rate,welfare_index,inequality_index,migration_in,migration_out,order_type,resource_type,trade_quantity,trade_price,trade_executed,climate_event,shock_intensity
1,Kerala,100,50,40,30,10,10,10,8,8,8,10,2,0.6,0.3,0,0,bid,Water,10,20,true,Flood,0.8
1,Kerala,100,50,40,30,10,10,10,8,8,8,10,2,0.6,0.3,0,0,ask,Food,5,30,false,Flood,0.8
1,Kerala,100,50,40,30,10,10,10,8,8,8,10,2,0.6,0.3,0,0,bid,Energy,7,25,true,Flood,0.8
`
	ds, err := dataset.ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("fixture load: %v", err)
	}
	w, _ := New(ds, 1, 1)
	sum := w.ClimateSummary()
	if sum.EventCounts["Flood"] != 1 {
		t.Fatalf("flood count = %d, want 1", sum.EventCounts["Flood"])
	}
	approx(t, sum.AvgShockByEvent["Flood"], 0.8, "flood shock")
}
