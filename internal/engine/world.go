// Package engine is the query layer over the loaded dataset. A World is a
// cheap per-query view bound to one inclusive tick range; every method is a
// pure function over the immutable dataset, so concurrent queries with
// different ranges share one table safely.
package engine

import (
	"WorldSim/internal/dataset"
	"WorldSim/internal/domain/models"
)

// World answers snapshot, series and summary queries for one tick range.
//
// Stocks (population, supplies, GDP) are reported at the final tick of the
// range; trade and climate activity is accumulated over the whole range.
// That asymmetry is deliberate: stocks are instantaneous, activity is a rate
// over the observed window, and classification depends on both.
type World struct {
	ds        *dataset.Dataset
	tickStart int
	tickEnd   int
}

// New binds a query view to ds for the inclusive range [tickStart, tickEnd].
func New(ds *dataset.Dataset, tickStart, tickEnd int) (*World, error) {
	if tickStart > tickEnd || tickStart < ds.MinTick() || tickEnd > ds.MaxTick() {
		return nil, &InvalidRangeError{
			Start: tickStart, End: tickEnd,
			Min: ds.MinTick(), Max: ds.MaxTick(),
		}
	}
	return &World{ds: ds, tickStart: tickStart, tickEnd: tickEnd}, nil
}

// TickStart returns the first tick of the queried range.
func (w *World) TickStart() int { return w.tickStart }

// TickEnd returns the last tick of the queried range.
func (w *World) TickEnd() int { return w.tickEnd }

// States returns the fixed state set, sorted by name.
func (w *World) States() []string { return w.ds.States() }

// RowsInRange counts order rows in the queried range across all states.
func (w *World) RowsInRange() int {
	total := 0
	for _, s := range w.ds.States() {
		for t := w.tickStart; t <= w.tickEnd; t++ {
			total += len(w.ds.Orders(t, s))
		}
	}
	return total
}

// StateSnapshot returns the final-tick non-trade state for one state plus
// trade counts and executed volume accumulated over the whole range.
func (w *World) StateSnapshot(state string) (models.Snapshot, error) {
	var snap models.Snapshot
	if !w.ds.HasState(state) {
		return snap, &UnknownStateError{State: state}
	}

	var totalOrders, executed int
	var volume float64
	var netMigration int64
	found := false
	for t := w.tickStart; t <= w.tickEnd; t++ {
		orders := w.ds.Orders(t, state)
		if len(orders) == 0 {
			continue
		}
		found = true
		totalOrders += len(orders)
		for _, o := range orders {
			if o.TradeExecuted {
				executed++
				volume += o.TradeQuantity
			}
		}
		// Non-trade fields are constant across order rows of one tick.
		netMigration += orders[0].MigrationIn - orders[0].MigrationOut
	}
	if !found {
		return snap, &EmptyRangeError{State: state}
	}

	final, ok := w.ds.StateAt(w.tickEnd, state)
	if !ok {
		return snap, &DataGapError{State: state, Tick: w.tickEnd}
	}

	snap = models.Snapshot{
		State:           state,
		Population:      final.Population,
		StateGDP:        final.StateGDP,
		GDPGrowthRate:   final.GDPGrowthRate,
		WelfareIndex:    final.WelfareIndex,
		InequalityIndex: final.InequalityIndex,
		WaterSupply:     final.WaterSupply,
		FoodSupply:      final.FoodSupply,
		EnergySupply:    final.EnergySupply,
		NetMigration:    netMigration,
		ExecutedTrades:  executed,
		TotalOrders:     totalOrders,
		TradeVolume:     volume,
		ClimateEvent:    final.ClimateEvent,
	}
	return snap, nil
}

// StateSeries returns the non-trade state fields for one state as parallel
// arrays ordered by ascending tick. A missing tick is a data-integrity fault,
// never silently skipped.
func (w *World) StateSeries(state string) (models.StateSeries, error) {
	var series models.StateSeries
	if !w.ds.HasState(state) {
		return series, &UnknownStateError{State: state}
	}
	n := w.tickEnd - w.tickStart + 1
	series = models.StateSeries{
		Ticks:           make([]int, 0, n),
		Population:      make([]float64, 0, n),
		StateGDP:        make([]float64, 0, n),
		GDPGrowthRate:   make([]float64, 0, n),
		WelfareIndex:    make([]float64, 0, n),
		InequalityIndex: make([]float64, 0, n),
		WaterSupply:     make([]float64, 0, n),
		FoodSupply:      make([]float64, 0, n),
		EnergySupply:    make([]float64, 0, n),
	}
	for t := w.tickStart; t <= w.tickEnd; t++ {
		st, ok := w.ds.StateAt(t, state)
		if !ok {
			return models.StateSeries{}, &DataGapError{State: state, Tick: t}
		}
		series.Ticks = append(series.Ticks, t)
		series.Population = append(series.Population, st.Population)
		series.StateGDP = append(series.StateGDP, st.StateGDP)
		series.GDPGrowthRate = append(series.GDPGrowthRate, st.GDPGrowthRate)
		series.WelfareIndex = append(series.WelfareIndex, st.WelfareIndex)
		series.InequalityIndex = append(series.InequalityIndex, st.InequalityIndex)
		series.WaterSupply = append(series.WaterSupply, st.WaterSupply)
		series.FoodSupply = append(series.FoodSupply, st.FoodSupply)
		series.EnergySupply = append(series.EnergySupply, st.EnergySupply)
	}
	return series, nil
}

// GlobalSeries returns per-tick cross-state sums of population and GDP, the
// arithmetic (population-unweighted) mean of welfare, and total executed
// trade volume.
func (w *World) GlobalSeries() (models.GlobalSeries, error) {
	states := w.ds.States()
	n := w.tickEnd - w.tickStart + 1
	series := models.GlobalSeries{
		Ticks:            make([]int, 0, n),
		TotalPopulation:  make([]float64, 0, n),
		TotalGDP:         make([]float64, 0, n),
		AvgWelfare:       make([]float64, 0, n),
		TotalTradeVolume: make([]float64, 0, n),
	}
	for t := w.tickStart; t <= w.tickEnd; t++ {
		var pop, gdp, welfare, volume float64
		for _, s := range states {
			st, ok := w.ds.StateAt(t, s)
			if !ok {
				return models.GlobalSeries{}, &DataGapError{State: s, Tick: t}
			}
			pop += st.Population
			gdp += st.StateGDP
			welfare += st.WelfareIndex
			for _, o := range w.ds.Orders(t, s) {
				if o.TradeExecuted {
					volume += o.TradeQuantity
				}
			}
		}
		series.Ticks = append(series.Ticks, t)
		series.TotalPopulation = append(series.TotalPopulation, pop)
		series.TotalGDP = append(series.TotalGDP, gdp)
		series.AvgWelfare = append(series.AvgWelfare, welfare/float64(len(states)))
		series.TotalTradeVolume = append(series.TotalTradeVolume, volume)
	}
	return series, nil
}

// ResourceConsumption returns the six generation/consumption flows for one
// state at the final tick, matching StateSnapshot's final-tick convention.
func (w *World) ResourceConsumption(state string) (models.ResourceConsumptionRow, error) {
	var row models.ResourceConsumptionRow
	if !w.ds.HasState(state) {
		return row, &UnknownStateError{State: state}
	}
	st, ok := w.ds.StateAt(w.tickEnd, state)
	if !ok {
		return row, &DataGapError{State: state, Tick: w.tickEnd}
	}
	row = models.ResourceConsumptionRow{
		State:           state,
		WaterGenerated:  st.WaterGenerated,
		WaterConsumed:   st.WaterConsumed,
		FoodGenerated:   st.FoodGenerated,
		FoodConsumed:    st.FoodConsumed,
		EnergyGenerated: st.EnergyGenerated,
		EnergyConsumed:  st.EnergyConsumed,
	}
	return row, nil
}

// RangeAggregates computes one state's classification inputs over the range.
func (w *World) RangeAggregates(state string) (models.RangeAggregates, error) {
	var agg models.RangeAggregates
	if !w.ds.HasState(state) {
		return agg, &UnknownStateError{State: state}
	}
	agg.State = state

	var welfareSum, growthSum, inequalitySum float64
	var shockSum float64
	shockTicks := 0
	ticks := 0
	for t := w.tickStart; t <= w.tickEnd; t++ {
		st, ok := w.ds.StateAt(t, state)
		if !ok {
			return models.RangeAggregates{}, &DataGapError{State: state, Tick: t}
		}
		ticks++
		welfareSum += st.WelfareIndex
		growthSum += st.GDPGrowthRate
		inequalitySum += st.InequalityIndex
		if st.ClimateEvent != models.ClimateNone {
			shockSum += st.ShockIntensity
			shockTicks++
		}
		agg.TotalGenerated += st.WaterGenerated + st.FoodGenerated + st.EnergyGenerated
		agg.TotalConsumed += st.WaterConsumed + st.FoodConsumed + st.EnergyConsumed
		agg.NetMigration += st.MigrationIn - st.MigrationOut

		for _, o := range w.ds.Orders(t, state) {
			agg.TotalOrders++
			if o.TradeExecuted {
				agg.ExecutedTrades++
				agg.TradeVolume += o.TradeQuantity
			}
		}
	}
	if ticks == 0 {
		return models.RangeAggregates{}, &EmptyRangeError{State: state}
	}

	agg.AvgWelfare = welfareSum / float64(ticks)
	agg.AvgGDPGrowth = growthSum / float64(ticks)
	agg.AvgInequality = inequalitySum / float64(ticks)
	if shockTicks > 0 {
		agg.AvgShock = shockSum / float64(shockTicks)
	}
	if agg.TotalOrders > 0 {
		agg.TradeExecutionRate = float64(agg.ExecutedTrades) / float64(agg.TotalOrders)
	}
	return agg, nil
}
