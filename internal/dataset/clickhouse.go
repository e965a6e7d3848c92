package dataset

import (
	"context"
	"database/sql"
	"fmt"

	"WorldSim/internal/domain/models"
)

// LoadClickHouse reads the dataset from a ClickHouse table with the reference
// column set, as an alternative to the CSV file backend.
func LoadClickHouse(ctx context.Context, db *sql.DB, table string) (*Dataset, error) {
	query := fmt.Sprintf(`SELECT
		tick, state, population,
		water_supply, food_supply, energy_supply,
		water_generated, food_generated, energy_generated,
		water_consumed, food_consumed, energy_consumed,
		state_gdp, gdp_growth_rate, welfare_index, inequality_index,
		migration_in, migration_out,
		order_type, resource_type, trade_quantity, trade_price, trade_executed,
		climate_event, shock_intensity
	FROM %s ORDER BY tick, state`, table)

	rs, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query dataset: %w", err)
	}
	defer rs.Close()

	var rows []models.Row
	line := 1
	for rs.Next() {
		line++
		var r models.Row
		var orderType, resourceType, climateEvent string
		var executed uint8
		if err := rs.Scan(
			&r.Tick, &r.State, &r.Population,
			&r.WaterSupply, &r.FoodSupply, &r.EnergySupply,
			&r.WaterGenerated, &r.FoodGenerated, &r.EnergyGenerated,
			&r.WaterConsumed, &r.FoodConsumed, &r.EnergyConsumed,
			&r.StateGDP, &r.GDPGrowthRate, &r.WelfareIndex, &r.InequalityIndex,
			&r.MigrationIn, &r.MigrationOut,
			&orderType, &resourceType, &r.TradeQuantity, &r.TradePrice, &executed,
			&climateEvent, &r.ShockIntensity,
		); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", line, err)
		}
		if !models.ValidOrderType(orderType) {
			return nil, &SchemaError{Column: "order_type", Value: orderType, Line: line}
		}
		if !models.ValidResourceType(resourceType) {
			return nil, &SchemaError{Column: "resource_type", Value: resourceType, Line: line}
		}
		if !models.ValidClimateEvent(climateEvent) {
			return nil, &SchemaError{Column: "climate_event", Value: climateEvent, Line: line}
		}
		r.OrderType = models.OrderType(orderType)
		r.ResourceType = models.ResourceType(resourceType)
		r.ClimateEvent = models.ClimateEvent(climateEvent)
		r.TradeExecuted = executed != 0

		if err := validateDomains(r, line); err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset table %s is empty", table)
	}
	return build(rows)
}

// validateDomains checks the numeric domains documented for a row.
func validateDomains(r models.Row, line int) error {
	if r.Tick < 1 {
		return &RangeError{Column: "tick", Value: float64(r.Tick), Line: line}
	}
	nonNeg := map[string]float64{
		"population":       r.Population,
		"water_supply":     r.WaterSupply,
		"food_supply":      r.FoodSupply,
		"energy_supply":    r.EnergySupply,
		"water_generated":  r.WaterGenerated,
		"food_generated":   r.FoodGenerated,
		"energy_generated": r.EnergyGenerated,
		"water_consumed":   r.WaterConsumed,
		"food_consumed":    r.FoodConsumed,
		"energy_consumed":  r.EnergyConsumed,
		"trade_quantity":   r.TradeQuantity,
		"trade_price":      r.TradePrice,
		"migration_in":     float64(r.MigrationIn),
		"migration_out":    float64(r.MigrationOut),
	}
	for name, v := range nonNeg {
		if v < 0 {
			return &RangeError{Column: name, Value: v, Line: line}
		}
	}
	unit := map[string]float64{
		"welfare_index":    r.WelfareIndex,
		"inequality_index": r.InequalityIndex,
		"shock_intensity":  r.ShockIntensity,
	}
	for name, v := range unit {
		if v < 0 || v > 1 {
			return &RangeError{Column: name, Value: v, Line: line}
		}
	}
	return nil
}
