package engine

import (
	"errors"
	"math"
	"strings"
	"testing"

	"WorldSim/internal/dataset"
)

// Two states over three ticks, with multiple order rows on Kerala tick 1.
// Kerala executes at ticks 1 and 2; Punjab at ticks 1 and 3. Climate events
// hit Kerala at tick 2 (Heatwave 0.5) and Punjab at tick 2 (Drought 0.7).
const fixtureCSV = `tick,state,population,water_supply,food_supply,energy_supply,water_generated,food_generated,energy_generated,water_consumed,food_consumed,energy_consumed,state_gdp,gdp_growth_rate,welfare_index,inequality_index,migration_in,migration_out,order_type,resource_type,trade_quantity,trade_price,trade_executed,climate_event,shock_intensity
1,Kerala,100,50,40,30,10,10,10,8,8,8,10,2,0.6,0.3,10,5,bid,Water,10,20,true,None,0
1,Kerala,100,50,40,30,10,10,10,8,8,8,10,2,0.6,0.3,10,5,ask,Food,5,30,false,None,0
2,Kerala,101,51,41,31,10,10,10,8,8,8,10.5,3,0.62,0.29,8,2,bid,Energy,20,25,true,Heatwave,0.5
3,Kerala,102,52,42,32,10,10,10,8,8,8,11,4,0.64,0.28,6,1,ask,Water,15,22,false,None,0
1,Punjab,200,60,50,40,12,12,12,11,11,11,20,1,0.5,0.4,3,9,ask,Food,8,18,true,None,0
2,Punjab,199,60,50,40,12,12,12,11,11,11,20.2,1.5,0.49,0.41,2,8,bid,Water,12,19,false,Drought,0.7
3,Punjab,198,60,50,40,12,12,12,11,11,11,20.4,2,0.48,0.42,1,7,ask,Energy,9,21,true,None,0
`

func loadFixture(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.ReadCSV(strings.NewReader(fixtureCSV))
	if err != nil {
		t.Fatalf("fixture load: %v", err)
	}
	return ds
}

func approx(t *testing.T, got, want float64, what string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", what, got, want)
	}
}

func TestNewRejectsInvalidRanges(t *testing.T) {
	ds := loadFixture(t)
	for _, tr := range [][2]int{{2, 1}, {0, 3}, {1, 4}} {
		_, err := New(ds, tr[0], tr[1])
		var ire *InvalidRangeError
		if !errors.As(err, &ire) {
			t.Fatalf("range %v: expected InvalidRangeError, got %v", tr, err)
		}
	}
	if _, err := New(ds, 1, 3); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}
}

func TestStateSnapshot(t *testing.T) {
	ds := loadFixture(t)
	w, err := New(ds, 1, 3)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}

	snap, err := w.StateSnapshot("Kerala")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	// Stocks come from the final tick only.
	approx(t, snap.Population, 102, "population")
	approx(t, snap.StateGDP, 11, "gdp")
	approx(t, snap.GDPGrowthRate, 4, "growth")
	approx(t, snap.WelfareIndex, 0.64, "welfare")
	approx(t, snap.WaterSupply, 52, "water supply")
	// Activity accumulates over the whole range.
	if snap.TotalOrders != 4 {
		t.Fatalf("orders = %d, want 4", snap.TotalOrders)
	}
	if snap.ExecutedTrades != 2 {
		t.Fatalf("executed = %d, want 2", snap.ExecutedTrades)
	}
	approx(t, snap.TradeVolume, 30, "volume")
	if snap.NetMigration != 16 {
		t.Fatalf("net migration = %d, want 16", snap.NetMigration)
	}

	_, err = w.StateSnapshot("Goa")
	var use *UnknownStateError
	if !errors.As(err, &use) {
		t.Fatalf("expected UnknownStateError, got %v", err)
	}
}

func TestStateSnapshotSingleTick(t *testing.T) {
	ds := loadFixture(t)
	w, _ := New(ds, 2, 2)
	snap, err := w.StateSnapshot("Kerala")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	approx(t, snap.Population, 101, "population")
	if snap.TotalOrders != 1 || snap.ExecutedTrades != 1 {
		t.Fatalf("orders = %d/%d, want 1/1", snap.ExecutedTrades, snap.TotalOrders)
	}
	approx(t, snap.TradeVolume, 20, "volume")
	if snap.NetMigration != 6 {
		t.Fatalf("net migration = %d, want 6", snap.NetMigration)
	}
	if string(snap.ClimateEvent) != "Heatwave" {
		t.Fatalf("climate = %s, want Heatwave", snap.ClimateEvent)
	}
}

func TestStateSeries(t *testing.T) {
	ds := loadFixture(t)
	w, _ := New(ds, 1, 3)
	series, err := w.StateSeries("Kerala")
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(series.Ticks) != 3 || series.Ticks[0] != 1 || series.Ticks[2] != 3 {
		t.Fatalf("ticks = %v", series.Ticks)
	}
	approx(t, series.Population[1], 101, "population[1]")
	approx(t, series.WelfareIndex[2], 0.64, "welfare[2]")
	// Duplicated order rows at tick 1 must not produce duplicate samples.
	if len(series.Population) != 3 {
		t.Fatalf("samples = %d, want 3", len(series.Population))
	}
}

func TestGlobalSeries(t *testing.T) {
	ds := loadFixture(t)
	w, _ := New(ds, 1, 3)
	series, err := w.GlobalSeries()
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	approx(t, series.TotalPopulation[0], 300, "population[0]")
	approx(t, series.TotalGDP[0], 30, "gdp[0]")
	// Unweighted mean across states.
	approx(t, series.AvgWelfare[0], 0.55, "welfare[0]")
	// Executed volume only: Kerala 10 + Punjab 8.
	approx(t, series.TotalTradeVolume[0], 18, "volume[0]")
	approx(t, series.TotalTradeVolume[2], 9, "volume[2]")
}

func TestRangeAggregates(t *testing.T) {
	ds := loadFixture(t)
	w, _ := New(ds, 1, 3)
	agg, err := w.RangeAggregates("Kerala")
	if err != nil {
		t.Fatalf("aggregates: %v", err)
	}
	approx(t, agg.AvgWelfare, 0.62, "avg welfare")
	approx(t, agg.AvgGDPGrowth, 3, "avg growth")
	approx(t, agg.AvgInequality, 0.87/3, "avg inequality")
	// Shock averages over event ticks only, not the whole range.
	approx(t, agg.AvgShock, 0.5, "avg shock")
	approx(t, agg.TotalGenerated, 90, "generated")
	approx(t, agg.TotalConsumed, 72, "consumed")
	if agg.NetMigration != 16 {
		t.Fatalf("net migration = %d, want 16", agg.NetMigration)
	}
	if agg.TotalOrders != 4 || agg.ExecutedTrades != 2 {
		t.Fatalf("orders = %d/%d, want 2/4", agg.ExecutedTrades, agg.TotalOrders)
	}
	approx(t, agg.TradeExecutionRate, 0.5, "execution rate")
}

func TestRangeAggregatesNoEvents(t *testing.T) {
	ds := loadFixture(t)
	w, _ := New(ds, 1, 1)
	agg, err := w.RangeAggregates("Kerala")
	if err != nil {
		t.Fatalf("aggregates: %v", err)
	}
	approx(t, agg.AvgShock, 0, "avg shock with no events")
}

func TestRangeMonotonicity(t *testing.T) {
	ds := loadFixture(t)
	wide, _ := New(ds, 1, 3)
	narrow, _ := New(ds, 2, 3)

	wa, err := wide.RangeAggregates("Kerala")
	if err != nil {
		t.Fatalf("wide: %v", err)
	}
	na, err := narrow.RangeAggregates("Kerala")
	if err != nil {
		t.Fatalf("narrow: %v", err)
	}
	if na.TotalOrders > wa.TotalOrders || na.TradeVolume > wa.TradeVolume {
		t.Fatalf("narrow range exceeds wide: %+v vs %+v", na, wa)
	}
	if wide.RowsInRange() != 7 || narrow.RowsInRange() != 4 {
		t.Fatalf("rows = %d/%d, want 7/4", wide.RowsInRange(), narrow.RowsInRange())
	}
}

func TestResourceConsumption(t *testing.T) {
	ds := loadFixture(t)
	w, _ := New(ds, 1, 3)
	row, err := w.ResourceConsumption("Punjab")
	if err != nil {
		t.Fatalf("consumption: %v", err)
	}
	approx(t, row.WaterGenerated, 12, "water generated")
	approx(t, row.EnergyConsumed, 11, "energy consumed")
}
