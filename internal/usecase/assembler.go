package usecase

import (
	"sort"

	"WorldSim/internal/domain/models"
	"WorldSim/internal/engine"
	"WorldSim/internal/strategy"
)

// Assemble packages World Engine and Strategy Analyzer outputs into the
// response payload. Pure structural composition: no computation beyond
// sorting and the summary roll-up, and every state appears in every section
// even when it matched nothing.
func Assemble(w *engine.World, an *strategy.Analyzer) (*models.SimulationResult, error) {
	states := w.States()

	reports := make([]models.StateReport, 0, len(states))
	classifications := make([]strategy.Classification, 0, len(states))
	stateSeries := make(map[string]models.StateSeries, len(states))
	consumption := make([]models.ResourceConsumptionRow, 0, len(states))
	healthy := make([]string, 0, len(states))
	critical := make([]string, 0, len(states))

	var totalPopulation, totalGDP, welfareSum, inequalitySum float64

	for _, s := range states {
		snap, err := w.StateSnapshot(s)
		if err != nil {
			return nil, err
		}
		agg, err := w.RangeAggregates(s)
		if err != nil {
			return nil, err
		}
		series, err := w.StateSeries(s)
		if err != nil {
			return nil, err
		}
		flows, err := w.ResourceConsumption(s)
		if err != nil {
			return nil, err
		}

		cls := an.Classify(agg)
		classifications = append(classifications, cls)
		reports = append(reports, models.StateReport{
			Snapshot:         snap,
			DominantStrategy: cls.Dominant,
			StrategyTags:     cls.Tags,
			Scores:           cls.Scores,
		})
		stateSeries[s] = series
		consumption = append(consumption, flows)

		if an.IsCritical(snap) {
			critical = append(critical, s)
		} else {
			healthy = append(healthy, s)
		}
		totalPopulation += snap.Population
		totalGDP += snap.StateGDP
		welfareSum += snap.WelfareIndex
		inequalitySum += snap.InequalityIndex
	}

	// Largest states first; name order keeps equal populations stable.
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Population != reports[j].Population {
			return reports[i].Population > reports[j].Population
		}
		return reports[i].State < reports[j].State
	})

	global, err := w.GlobalSeries()
	if err != nil {
		return nil, err
	}
	trade := w.TradeSummary()
	climate := w.ClimateSummary()

	result := &models.SimulationResult{
		Summary: models.Summary{
			TickRange:           [2]int{w.TickStart(), w.TickEnd()},
			FinalTick:           w.TickEnd(),
			TotalStates:         len(states),
			TotalPopulation:     totalPopulation,
			TotalGDP:            totalGDP,
			AvgWelfare:          welfareSum / float64(len(states)),
			AvgInequality:       inequalitySum / float64(len(states)),
			TotalTradesExecuted: trade.TotalExecuted,
			TradeExecutionRate:  trade.ExecutionRate,
			ClimateEvents:       w.TotalClimateEvents(),
			TotalDataRows:       w.RowsInRange(),
			HealthyStates:       healthy,
			CriticalStates:      critical,
		},
		States:              reports,
		StrategyMix:         strategy.StrategyMix(classifications),
		ResilienceRanking:   strategy.ResilienceRanking(classifications),
		Trade:               trade,
		Climate:             climate,
		Series:              global,
		StateSeries:         stateSeries,
		BidAskByState:       w.BidAskByState(),
		BidAskOverTime:      w.BidAskOverTime(),
		ResourceConsumption: consumption,
	}
	return result, nil
}
