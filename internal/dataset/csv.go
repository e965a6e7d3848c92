package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"WorldSim/internal/domain/models"
)

// Columns is the required CSV column set, in reference order.
var Columns = []string{
	"tick", "state", "population",
	"water_supply", "food_supply", "energy_supply",
	"water_generated", "food_generated", "energy_generated",
	"water_consumed", "food_consumed", "energy_consumed",
	"state_gdp", "gdp_growth_rate", "welfare_index", "inequality_index",
	"migration_in", "migration_out",
	"order_type", "resource_type", "trade_quantity", "trade_price", "trade_executed",
	"climate_event", "shock_intensity",
}

// LoadCSV reads the dataset from a CSV file with the reference column set.
// Column order in the file does not matter; only the header names do.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses dataset rows from r and builds the indexed table.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range Columns {
		if _, ok := cols[name]; !ok {
			return nil, &SchemaError{Column: name}
		}
	}

	var rows []models.Row
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line+1, err)
		}
		line++
		row, err := parseRecord(rec, cols, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	return build(rows)
}

func parseRecord(rec []string, cols map[string]int, line int) (models.Row, error) {
	var row models.Row
	var err error

	get := func(name string) string { return rec[cols[name]] }

	intField := func(name string) (int64, error) {
		v, perr := strconv.ParseInt(get(name), 10, 64)
		if perr != nil {
			return 0, &SchemaError{Column: name, Value: get(name), Line: line}
		}
		return v, nil
	}
	floatField := func(name string) (float64, error) {
		v, perr := strconv.ParseFloat(get(name), 64)
		if perr != nil {
			return 0, &SchemaError{Column: name, Value: get(name), Line: line}
		}
		return v, nil
	}

	tick, err := intField("tick")
	if err != nil {
		return row, err
	}
	if tick < 1 {
		return row, &RangeError{Column: "tick", Value: float64(tick), Line: line}
	}
	row.Tick = int(tick)
	row.State = get("state")
	if row.State == "" {
		return row, &SchemaError{Column: "state", Value: "<empty>", Line: line}
	}

	// Non-negative numeric fields.
	nonNeg := []struct {
		name string
		dst  *float64
	}{
		{"population", &row.Population},
		{"water_supply", &row.WaterSupply},
		{"food_supply", &row.FoodSupply},
		{"energy_supply", &row.EnergySupply},
		{"water_generated", &row.WaterGenerated},
		{"food_generated", &row.FoodGenerated},
		{"energy_generated", &row.EnergyGenerated},
		{"water_consumed", &row.WaterConsumed},
		{"food_consumed", &row.FoodConsumed},
		{"energy_consumed", &row.EnergyConsumed},
		{"trade_quantity", &row.TradeQuantity},
		{"trade_price", &row.TradePrice},
	}
	for _, f := range nonNeg {
		v, ferr := floatField(f.name)
		if ferr != nil {
			return row, ferr
		}
		if v < 0 {
			return row, &RangeError{Column: f.name, Value: v, Line: line}
		}
		*f.dst = v
	}

	// Unbounded monetary fields.
	if row.StateGDP, err = floatField("state_gdp"); err != nil {
		return row, err
	}
	if row.GDPGrowthRate, err = floatField("gdp_growth_rate"); err != nil {
		return row, err
	}

	// [0, 1] indices.
	unit := []struct {
		name string
		dst  *float64
	}{
		{"welfare_index", &row.WelfareIndex},
		{"inequality_index", &row.InequalityIndex},
		{"shock_intensity", &row.ShockIntensity},
	}
	for _, f := range unit {
		v, ferr := floatField(f.name)
		if ferr != nil {
			return row, ferr
		}
		if v < 0 || v > 1 {
			return row, &RangeError{Column: f.name, Value: v, Line: line}
		}
		*f.dst = v
	}

	migIn, err := intField("migration_in")
	if err != nil {
		return row, err
	}
	migOut, err := intField("migration_out")
	if err != nil {
		return row, err
	}
	if migIn < 0 {
		return row, &RangeError{Column: "migration_in", Value: float64(migIn), Line: line}
	}
	if migOut < 0 {
		return row, &RangeError{Column: "migration_out", Value: float64(migOut), Line: line}
	}
	row.MigrationIn = migIn
	row.MigrationOut = migOut

	if v := get("order_type"); models.ValidOrderType(v) {
		row.OrderType = models.OrderType(v)
	} else {
		return row, &SchemaError{Column: "order_type", Value: v, Line: line}
	}
	if v := get("resource_type"); models.ValidResourceType(v) {
		row.ResourceType = models.ResourceType(v)
	} else {
		return row, &SchemaError{Column: "resource_type", Value: v, Line: line}
	}
	if v := get("climate_event"); models.ValidClimateEvent(v) {
		row.ClimateEvent = models.ClimateEvent(v)
	} else {
		return row, &SchemaError{Column: "climate_event", Value: v, Line: line}
	}

	executed, perr := strconv.ParseBool(get("trade_executed"))
	if perr != nil {
		return row, &SchemaError{Column: "trade_executed", Value: get("trade_executed"), Line: line}
	}
	row.TradeExecuted = executed

	return row, nil
}
