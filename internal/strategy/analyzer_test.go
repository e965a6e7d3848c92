package strategy

import (
	"math"
	"reflect"
	"testing"

	"WorldSim/internal/domain/models"
)

func newAnalyzer() *Analyzer { return NewAnalyzer(DefaultThresholds()) }

func TestTagPredicates(t *testing.T) {
	an := newAnalyzer()

	cases := []struct {
		name string
		agg  models.RangeAggregates
		tag  string
	}{
		{"trade heavy", models.RangeAggregates{TradeExecutionRate: 0.6}, TagTradeHeavy},
		{"resource conservative", models.RangeAggregates{TotalGenerated: 100, TotalConsumed: 50}, TagResourceConservative},
		{"growth focused", models.RangeAggregates{AvgGDPGrowth: 5}, TagGrowthFocused},
		{"welfare priority", models.RangeAggregates{AvgWelfare: 0.6}, TagWelfarePriority},
		{"migration attracting", models.RangeAggregates{NetMigration: 1}, TagMigrationAttracting},
	}
	for _, tc := range cases {
		cls := an.Classify(tc.agg)
		found := false
		for _, tag := range cls.Tags {
			if tag == tc.tag {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: tags = %v, want %s", tc.name, cls.Tags, tc.tag)
		}
	}
}

func TestClimateResilientNeedsBothFloors(t *testing.T) {
	an := newAnalyzer()

	cls := an.Classify(models.RangeAggregates{AvgWelfare: 0.6, AvgShock: 0.5})
	found := false
	for _, tag := range cls.Tags {
		if tag == TagClimateResilient {
			found = true
		}
	}
	if !found {
		t.Fatalf("welfare 0.6 shock 0.5 should be Climate-Resilient: %v", cls.Tags)
	}

	// Shock exposure alone is not resilience.
	cls = an.Classify(models.RangeAggregates{AvgWelfare: 0.2, AvgShock: 0.9})
	for _, tag := range cls.Tags {
		if tag == TagClimateResilient {
			t.Fatalf("low welfare must not be Climate-Resilient")
		}
	}
}

func TestDominantIsFirstMatch(t *testing.T) {
	an := newAnalyzer()
	// Matches Welfare-Priority, Migration-Attracting and Climate-Resilient;
	// Welfare-Priority comes first in table order.
	cls := an.Classify(models.RangeAggregates{AvgWelfare: 0.6, AvgShock: 0.5, NetMigration: 10})
	if cls.Dominant != TagWelfarePriority {
		t.Fatalf("dominant = %s, want %s", cls.Dominant, TagWelfarePriority)
	}
	if len(cls.Tags) != 3 {
		t.Fatalf("tags = %v, want 3 matches", cls.Tags)
	}
}

func TestBalancedFallback(t *testing.T) {
	an := newAnalyzer()
	cls := an.Classify(models.RangeAggregates{State: "Kerala"})
	if len(cls.Tags) != 0 {
		t.Fatalf("tags = %v, want none", cls.Tags)
	}
	if cls.Dominant != TagBalanced {
		t.Fatalf("dominant = %s, want %s", cls.Dominant, TagBalanced)
	}
}

func TestResilienceComposite(t *testing.T) {
	an := newAnalyzer()

	agg := models.RangeAggregates{
		AvgWelfare:         0.8,
		AvgGDPGrowth:       7.5, // normalizes to 0.5
		AvgInequality:      0.2,
		TradeExecutionRate: 0.5,
	}
	// 0.35*0.8 + 0.25*0.5 + 0.2*0.5 + 0.2*0.8 = 0.665
	if got := an.Resilience(agg); got != 0.665 {
		t.Fatalf("resilience = %v, want 0.665", got)
	}

	// Growth above the scale clamps to 1; the score cannot exceed 1.
	best := models.RangeAggregates{AvgWelfare: 1, AvgGDPGrowth: 30, TradeExecutionRate: 1}
	if got := an.Resilience(best); got != 1.0 {
		t.Fatalf("resilience = %v, want 1.0", got)
	}
	worst := models.RangeAggregates{AvgInequality: 1, AvgGDPGrowth: -5}
	if got := an.Resilience(worst); got != 0.0 {
		t.Fatalf("resilience = %v, want 0.0", got)
	}
}

func TestScoresRounding(t *testing.T) {
	an := newAnalyzer()
	cls := an.Classify(models.RangeAggregates{
		AvgGDPGrowth:   3.14159,
		AvgWelfare:     0.123456,
		TotalGenerated: 10,
	})
	if cls.Scores.AvgGDPGrowth != 3.14 {
		t.Fatalf("growth = %v, want 3.14", cls.Scores.AvgGDPGrowth)
	}
	if cls.Scores.AvgWelfare != 0.1235 {
		t.Fatalf("welfare = %v, want 0.1235", cls.Scores.AvgWelfare)
	}
	// Zero consumption uses a floor of 1, not a division by zero.
	if cls.Scores.ResourceSurplusRatio != 10 {
		t.Fatalf("surplus ratio = %v, want 10", cls.Scores.ResourceSurplusRatio)
	}
	if math.IsNaN(cls.Scores.ResourceSurplusRatio) {
		t.Fatalf("surplus ratio is NaN")
	}
}

func TestIsCritical(t *testing.T) {
	an := newAnalyzer()
	if !an.IsCritical(models.Snapshot{WelfareIndex: 0.29, GDPGrowthRate: 5}) {
		t.Fatalf("low welfare should be critical")
	}
	if !an.IsCritical(models.Snapshot{WelfareIndex: 0.9, GDPGrowthRate: -0.1}) {
		t.Fatalf("negative growth should be critical")
	}
	if an.IsCritical(models.Snapshot{WelfareIndex: 0.3, GDPGrowthRate: 0}) {
		t.Fatalf("boundary values should not be critical")
	}
}

func TestStrategyMixOrdering(t *testing.T) {
	cls := []Classification{
		{Dominant: TagGrowthFocused},
		{Dominant: TagGrowthFocused},
		{Dominant: TagBalanced},
		{Dominant: TagTradeHeavy},
	}
	mix := StrategyMix(cls)
	want := []string{TagGrowthFocused, TagBalanced, TagTradeHeavy}
	got := make([]string, len(mix))
	for i, m := range mix {
		got[i] = m.Strategy
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mix order = %v, want %v", got, want)
	}
	if mix[0].Count != 2 {
		t.Fatalf("top count = %d, want 2", mix[0].Count)
	}
}

func TestResilienceRankingDeterministic(t *testing.T) {
	cls := []Classification{
		{State: "Punjab", Resilience: 0.5, Dominant: TagBalanced},
		{State: "Kerala", Resilience: 0.5, Dominant: TagBalanced},
		{State: "Gujarat", Resilience: 0.9, Dominant: TagGrowthFocused},
	}
	ranking := ResilienceRanking(cls)
	if ranking[0].State != "Gujarat" {
		t.Fatalf("top = %s, want Gujarat", ranking[0].State)
	}
	// Equal scores break ties by name for a stable total order.
	if ranking[1].State != "Kerala" || ranking[2].State != "Punjab" {
		t.Fatalf("tie order = %s, %s, want Kerala, Punjab", ranking[1].State, ranking[2].State)
	}
}
