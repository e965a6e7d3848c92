// Command datagen emits a deterministic simulation CSV for local development
// and tests. The same seed always produces the same file, so aggregation
// results over a generated dataset are reproducible end to end.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"

	"WorldSim/internal/dataset"
	"WorldSim/internal/domain/models"
)

var states = []string{
	"Maharashtra", "Tamil Nadu", "Karnataka", "Gujarat", "Punjab",
	"Kerala", "Rajasthan", "West Bengal", "Uttar Pradesh", "Bihar",
}

type stateBase struct {
	population float64
	gdp        float64
	welfare    float64
	inequality float64
	supply     [3]float64 // water, food, energy
}

func main() {
	seed := flag.Int64("seed", 42, "rng seed")
	ticks := flag.Int("ticks", 120, "number of ticks")
	out := flag.String("out", "data/worldsim.csv", "output csv path")
	flag.Parse()

	if err := run(*seed, *ticks, *out); err != nil {
		log.Fatalf("datagen failed: %v", err)
	}
	log.Printf("wrote %s (seed=%d ticks=%d states=%d)", *out, *seed, *ticks, len(states))
}

func run(seed int64, ticks int, out string) error {
	rng := rand.New(rand.NewSource(seed))

	bases := make(map[string]*stateBase, len(states))
	for _, s := range states {
		bases[s] = &stateBase{
			population: 20 + rng.Float64()*180, // millions
			gdp:        2 + rng.Float64()*28,   // lakh crore
			welfare:    0.35 + rng.Float64()*0.45,
			inequality: 0.25 + rng.Float64()*0.4,
			supply:     [3]float64{400 + rng.Float64()*600, 300 + rng.Float64()*500, 200 + rng.Float64()*400},
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(dataset.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	resources := []models.ResourceType{models.ResourceWater, models.ResourceFood, models.ResourceEnergy}
	events := []models.ClimateEvent{models.ClimateHeatwave, models.ClimateDrought, models.ClimateFlood, models.ClimateCyclone}

	for tick := 1; tick <= ticks; tick++ {
		for _, name := range states {
			b := bases[name]

			// Smooth drift plus a seasonal wobble so series look alive.
			wave := math.Sin(float64(tick) / 12.0)
			growth := rng.NormFloat64()*2.5 + wave
			b.gdp = math.Max(0.5, b.gdp*(1+growth/400))
			b.population *= 1 + rng.Float64()*0.002
			b.welfare = clamp01(b.welfare + rng.NormFloat64()*0.01)
			b.inequality = clamp01(b.inequality + rng.NormFloat64()*0.008)

			event := models.ClimateNone
			shock := 0.0
			if rng.Float64() < 0.08 {
				event = events[rng.Intn(len(events))]
				shock = 0.2 + rng.Float64()*0.7
				b.welfare = clamp01(b.welfare - shock*0.02)
			}

			generated := [3]float64{}
			consumed := [3]float64{}
			for i := range b.supply {
				generated[i] = b.supply[i] * (0.08 + rng.Float64()*0.04) * (1 - shock*0.5)
				consumed[i] = b.supply[i] * (0.07 + rng.Float64()*0.05)
				b.supply[i] = math.Max(10, b.supply[i]+generated[i]-consumed[i])
			}

			migIn := rng.Intn(5000)
			migOut := rng.Intn(5000)

			// Several order rows per (tick, state); non-trade fields repeat
			// verbatim on each of them.
			orders := 1 + rng.Intn(3)
			for o := 0; o < orders; o++ {
				side := models.OrderBid
				if rng.Float64() < 0.5 {
					side = models.OrderAsk
				}
				res := resources[rng.Intn(len(resources))]
				qty := 5 + rng.Float64()*95
				price := 10 + rng.Float64()*40
				executed := rng.Float64() < 0.55

				rec := []string{
					strconv.Itoa(tick),
					name,
					ftoa(b.population),
					ftoa(b.supply[0]), ftoa(b.supply[1]), ftoa(b.supply[2]),
					ftoa(generated[0]), ftoa(generated[1]), ftoa(generated[2]),
					ftoa(consumed[0]), ftoa(consumed[1]), ftoa(consumed[2]),
					ftoa(b.gdp),
					ftoa(growth),
					ftoa(b.welfare),
					ftoa(b.inequality),
					strconv.Itoa(migIn),
					strconv.Itoa(migOut),
					string(side),
					string(res),
					ftoa(qty),
					ftoa(price),
					strconv.FormatBool(executed),
					string(event),
					ftoa(shock),
				}
				if err := w.Write(rec); err != nil {
					return fmt.Errorf("write row: %w", err)
				}
			}
		}
	}

	w.Flush()
	return w.Error()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
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
