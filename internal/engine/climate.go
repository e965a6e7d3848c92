package engine

import (
	"WorldSim/internal/domain/models"
)

// ClimateSummary counts tick-state climate occurrences per event type across
// the range and all states, with the mean shock intensity per event type.
// The climate fields are per-(tick, state) state, so occurrences are counted
// once per tick-state, not once per order row; None is excluded entirely.
func (w *World) ClimateSummary() models.ClimateSummary {
	summary := models.ClimateSummary{
		EventCounts:     make(map[string]int),
		AvgShockByEvent: make(map[string]float64),
	}
	shockSums := make(map[string]float64)
	for _, s := range w.ds.States() {
		for t := w.tickStart; t <= w.tickEnd; t++ {
			st, ok := w.ds.StateAt(t, s)
			if !ok || st.ClimateEvent == models.ClimateNone {
				continue
			}
			key := string(st.ClimateEvent)
			summary.EventCounts[key]++
			shockSums[key] += st.ShockIntensity
		}
	}
	for key, count := range summary.EventCounts {
		summary.AvgShockByEvent[key] = shockSums[key] / float64(count)
	}
	return summary
}

// TotalClimateEvents is the total number of tick-state shock occurrences in range.
func (w *World) TotalClimateEvents() int {
	total := 0
	for _, count := range w.ClimateSummary().EventCounts {
		total += count
	}
	return total
}
