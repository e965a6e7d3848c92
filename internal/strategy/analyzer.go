// Package strategy classifies states into behavioral tags from their
// range-level aggregates and ranks them by a composite resilience score.
package strategy

import (
	"math"
	"sort"

	"WorldSim/internal/domain/models"
)

// Classification is the full result of classifying one state.
type Classification struct {
	State      string
	Tags       []string
	Dominant   string
	Resilience float64
	Scores     models.StrategyScores
}

// Analyzer applies the fixed predicate table and resilience composite.
type Analyzer struct {
	th Thresholds
}

// NewAnalyzer builds an analyzer with the given calibration.
func NewAnalyzer(th Thresholds) *Analyzer {
	return &Analyzer{th: th}
}

// Classify evaluates every tag predicate independently; a state may match
// several. The dominant tag is the first match in table order, or Balanced
// when nothing matched.
func (a *Analyzer) Classify(agg models.RangeAggregates) Classification {
	tags := make([]string, 0, 6)
	if agg.TradeExecutionRate > a.th.TradeHeavyRate {
		tags = append(tags, TagTradeHeavy)
	}
	if agg.TotalConsumed < agg.TotalGenerated*a.th.ConservativeRatio {
		tags = append(tags, TagResourceConservative)
	}
	if agg.AvgGDPGrowth > a.th.GrowthFocusedGDP {
		tags = append(tags, TagGrowthFocused)
	}
	if agg.AvgWelfare > a.th.WelfarePriorityIndex {
		tags = append(tags, TagWelfarePriority)
	}
	if agg.NetMigration > 0 {
		tags = append(tags, TagMigrationAttracting)
	}
	if agg.AvgWelfare > a.th.ResilientWelfare && agg.AvgShock > a.th.ResilientShock {
		tags = append(tags, TagClimateResilient)
	}

	dominant := TagBalanced
	if len(tags) > 0 {
		dominant = tags[0]
	}

	return Classification{
		State:      agg.State,
		Tags:       tags,
		Dominant:   dominant,
		Resilience: a.Resilience(agg),
		Scores: models.StrategyScores{
			AvgGDPGrowth:         round(agg.AvgGDPGrowth, 2),
			AvgWelfare:           round(agg.AvgWelfare, 4),
			AvgInequality:        round(agg.AvgInequality, 4),
			AvgShock:             round(agg.AvgShock, 4),
			TradeExecutionRate:   round(agg.TradeExecutionRate, 4),
			NetMigration:         agg.NetMigration,
			ResourceSurplusRatio: round(agg.TotalGenerated/math.Max(agg.TotalConsumed, 1), 4),
		},
	}
}

// Resilience is the weighted composite of welfare, normalized GDP growth,
// trade execution rate and equity (1 - inequality). Inputs within their
// documented domains keep the score in [0, 1].
func (a *Analyzer) Resilience(agg models.RangeAggregates) float64 {
	growth := clamp01(agg.AvgGDPGrowth / a.th.GDPGrowthScale)
	score := a.th.WeightWelfare*agg.AvgWelfare +
		a.th.WeightGrowth*growth +
		a.th.WeightTrade*agg.TradeExecutionRate +
		a.th.WeightEquity*(1.0-agg.AvgInequality)
	return round(score, 4)
}

// IsCritical evaluates the final-tick snapshot, not range aggregates: a state
// is critical when welfare has fallen under the floor or growth is negative.
func (a *Analyzer) IsCritical(snap models.Snapshot) bool {
	return snap.WelfareIndex < a.th.CriticalWelfare || snap.GDPGrowthRate < a.th.CriticalGrowth
}

// StrategyMix counts states per dominant tag, most common first; name order
// breaks count ties so repeated runs emit identical output.
func StrategyMix(cls []Classification) []models.StrategyCount {
	counts := make(map[string]int)
	for _, c := range cls {
		counts[c.Dominant]++
	}
	out := make([]models.StrategyCount, 0, len(counts))
	for strat, n := range counts {
		out = append(out, models.StrategyCount{Strategy: strat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Strategy < out[j].Strategy
	})
	return out
}

// ResilienceRanking orders classifications by score descending; name order
// breaks score ties so the ranking is a total order.
func ResilienceRanking(cls []Classification) []models.ResilienceEntry {
	out := make([]models.ResilienceEntry, 0, len(cls))
	for _, c := range cls {
		out = append(out, models.ResilienceEntry{
			State:            c.State,
			ResilienceScore:  c.Resilience,
			DominantStrategy: c.Dominant,
			Tags:             c.Tags,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ResilienceScore != out[j].ResilienceScore {
			return out[i].ResilienceScore > out[j].ResilienceScore
		}
		return out[i].State < out[j].State
	})
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
