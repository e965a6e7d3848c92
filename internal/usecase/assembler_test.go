package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"WorldSim/internal/dataset"
	"WorldSim/internal/domain/models"
	"WorldSim/internal/engine"
	"WorldSim/internal/strategy"
	pkgcache "WorldSim/pkg/cache"
	xlogger "WorldSim/pkg/logger"
	"WorldSim/pkg/metrics"
)

// Punjab ends the range below the welfare floor, so the fixture exercises the
// healthy/critical split as well as the aggregation paths.
const fixtureCSV = `tick,state,population,water_supply,food_supply,energy_supply,water_generated,food_generated,energy_generated,water_consumed,food_consumed,energy_consumed,state_gdp,gdp_growth_rate,welfare_index,inequality_index,migration_in,migration_out,order_type,resource_type,trade_quantity,trade_price,trade_executed,climate_event,shock_intensity
1,Kerala,100,50,40,30,10,10,10,8,8,8,10,2,0.6,0.3,10,5,bid,Water,10,20,true,None,0
1,Kerala,100,50,40,30,10,10,10,8,8,8,10,2,0.6,0.3,10,5,ask,Food,5,30,false,None,0
2,Kerala,101,51,41,31,10,10,10,8,8,8,10.5,3,0.62,0.29,8,2,bid,Energy,20,25,true,Heatwave,0.5
3,Kerala,102,52,42,32,10,10,10,8,8,8,11,4,0.64,0.28,6,1,ask,Water,15,22,false,None,0
1,Punjab,200,60,50,40,12,12,12,11,11,11,20,1,0.5,0.4,3,9,ask,Food,8,18,true,None,0
2,Punjab,199,60,50,40,12,12,12,11,11,11,20.2,1.5,0.4,0.41,2,8,bid,Water,12,19,false,Drought,0.7
3,Punjab,198,60,50,40,12,12,12,11,11,11,20.4,2,0.28,0.42,1,7,ask,Energy,9,21,true,None,0
`

// promauto collectors register against the default registry once per binary.
var testRec = metrics.New()

func intp(v int) *int { return &v }

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func loadFixture(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.ReadCSV(strings.NewReader(fixtureCSV))
	if err != nil {
		t.Fatalf("fixture load: %v", err)
	}
	return ds
}

func TestAssembleFullPayload(t *testing.T) {
	ds := loadFixture(t)
	w, err := engine.New(ds, 1, 3)
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	an := strategy.NewAnalyzer(strategy.DefaultThresholds())

	res, err := Assemble(w, an)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	s := res.Summary
	if s.TickRange != [2]int{1, 3} || s.FinalTick != 3 {
		t.Fatalf("tick range = %v final = %d", s.TickRange, s.FinalTick)
	}
	if s.TotalStates != 2 || s.TotalDataRows != 7 {
		t.Fatalf("states/rows = %d/%d, want 2/7", s.TotalStates, s.TotalDataRows)
	}
	if s.TotalPopulation != 300 {
		t.Fatalf("population = %v, want 300", s.TotalPopulation)
	}
	if s.TotalTradesExecuted != 4 {
		t.Fatalf("executed = %d, want 4", s.TotalTradesExecuted)
	}
	if s.ClimateEvents != 2 {
		t.Fatalf("climate events = %d, want 2", s.ClimateEvents)
	}

	// Largest population first.
	if len(res.States) != 2 || res.States[0].State != "Punjab" || res.States[1].State != "Kerala" {
		t.Fatalf("state order = %v", []string{res.States[0].State, res.States[1].State})
	}

	// Punjab's final welfare 0.28 is under the floor.
	if !reflect.DeepEqual(s.HealthyStates, []string{"Kerala"}) {
		t.Fatalf("healthy = %v, want [Kerala]", s.HealthyStates)
	}
	if !reflect.DeepEqual(s.CriticalStates, []string{"Punjab"}) {
		t.Fatalf("critical = %v, want [Punjab]", s.CriticalStates)
	}

	// Every section covers every state.
	if len(res.StateSeries) != 2 || len(res.ResourceConsumption) != 2 || len(res.BidAskByState) != 2 {
		t.Fatalf("incomplete per-state sections")
	}
	if len(res.ResilienceRanking) != 2 {
		t.Fatalf("ranking entries = %d, want 2", len(res.ResilienceRanking))
	}
	total := 0
	for _, m := range res.StrategyMix {
		total += m.Count
	}
	if total != 2 {
		t.Fatalf("strategy mix total = %d, want 2", total)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	ds := loadFixture(t)
	an := strategy.NewAnalyzer(strategy.DefaultThresholds())

	w1, _ := engine.New(ds, 1, 3)
	w2, _ := engine.New(ds, 1, 3)
	r1, err := Assemble(w1, an)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	r2, err := Assemble(w2, an)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Fatalf("repeated assembly differs")
	}
}

func TestSimulateRunAndCache(t *testing.T) {
	ds := loadFixture(t)
	an := strategy.NewAnalyzer(strategy.DefaultThresholds())
	uc := NewSimulate(ds, an, testRec, testLogger(t),
		WithCache(pkgcache.NewMemoryCache(), time.Minute))

	req := models.SimulateRequest{Seed: intp(42), TickStart: intp(1), TickEnd: intp(3)}
	first, err := uc.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	second, err := uc.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("cached run: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached result differs from computed result")
	}
}

func TestSimulateRunRejectsInvalidRange(t *testing.T) {
	ds := loadFixture(t)
	an := strategy.NewAnalyzer(strategy.DefaultThresholds())
	uc := NewSimulate(ds, an, testRec, testLogger(t))

	_, err := uc.Run(context.Background(), models.SimulateRequest{TickStart: intp(3), TickEnd: intp(1)})
	var ire *engine.InvalidRangeError
	if !errors.As(err, &ire) {
		t.Fatalf("expected InvalidRangeError, got %v", err)
	}
}
