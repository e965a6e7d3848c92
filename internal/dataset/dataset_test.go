package dataset

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// testRow renders one CSV record in the reference column order. Zero-value
// fields fall back to plausible defaults so tests only spell out what they
// assert on.
type testRow struct {
	tick     int
	state    string
	pop      float64
	welfare  float64
	ineq     float64
	growth   float64
	gdp      float64
	migIn    int
	migOut   int
	order    string
	resource string
	qty      float64
	price    float64
	executed bool
	event    string
	shock    float64
}

func (r testRow) render() string {
	if r.pop == 0 {
		r.pop = 100
	}
	if r.welfare == 0 {
		r.welfare = 0.6
	}
	if r.ineq == 0 {
		r.ineq = 0.3
	}
	if r.gdp == 0 {
		r.gdp = 10
	}
	if r.order == "" {
		r.order = "bid"
	}
	if r.resource == "" {
		r.resource = "Water"
	}
	if r.qty == 0 {
		r.qty = 10
	}
	if r.price == 0 {
		r.price = 20
	}
	if r.event == "" {
		r.event = "None"
	}
	return fmt.Sprintf("%d,%s,%g,50,40,30,10,10,10,8,8,8,%g,%g,%g,%g,%d,%d,%s,%s,%g,%g,%t,%s,%g",
		r.tick, r.state, r.pop, r.gdp, r.growth, r.welfare, r.ineq,
		r.migIn, r.migOut, r.order, r.resource, r.qty, r.price, r.executed, r.event, r.shock)
}

func buildCSV(rows ...testRow) string {
	lines := []string{strings.Join(Columns, ",")}
	for _, r := range rows {
		lines = append(lines, r.render())
	}
	return strings.Join(lines, "\n") + "\n"
}

func TestReadCSVBasic(t *testing.T) {
	csv := buildCSV(
		testRow{tick: 1, state: "Punjab", qty: 11, executed: true},
		testRow{tick: 1, state: "Kerala", qty: 7},
		testRow{tick: 1, state: "Kerala", order: "ask", qty: 9},
		testRow{tick: 2, state: "Punjab"},
		testRow{tick: 2, state: "Kerala"},
	)
	ds, err := ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.NumRows() != 5 {
		t.Fatalf("rows = %d, want 5", ds.NumRows())
	}
	if ds.MinTick() != 1 || ds.MaxTick() != 2 {
		t.Fatalf("tick range = [%d, %d], want [1, 2]", ds.MinTick(), ds.MaxTick())
	}
	states := ds.States()
	if len(states) != 2 || states[0] != "Kerala" || states[1] != "Punjab" {
		t.Fatalf("states = %v, want sorted [Kerala Punjab]", states)
	}
	if !ds.HasState("Punjab") || ds.HasState("Goa") {
		t.Fatalf("HasState misreports membership")
	}
}

func TestOrdersReturnsAllRows(t *testing.T) {
	csv := buildCSV(
		testRow{tick: 1, state: "Kerala", qty: 7},
		testRow{tick: 1, state: "Kerala", order: "ask", qty: 9},
	)
	ds, err := ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orders := ds.Orders(1, "Kerala")
	if len(orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(orders))
	}
	if orders[0].TradeQuantity != 7 || orders[1].TradeQuantity != 9 {
		t.Fatalf("order quantities = %g, %g", orders[0].TradeQuantity, orders[1].TradeQuantity)
	}
	if ds.Orders(2, "Kerala") != nil {
		t.Fatalf("expected nil for absent tick")
	}
}

func TestStateAtDeduplicates(t *testing.T) {
	csv := buildCSV(
		testRow{tick: 1, state: "Kerala", qty: 7},
		testRow{tick: 1, state: "Kerala", order: "ask", qty: 9},
	)
	ds, err := ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st, ok := ds.StateAt(1, "Kerala")
	if !ok {
		t.Fatalf("expected state present")
	}
	// StateAt returns the first row; the duplicated non-trade fields are
	// read exactly once regardless of order-row count.
	if st.TradeQuantity != 7 {
		t.Fatalf("expected first row, got qty %g", st.TradeQuantity)
	}
	if _, ok := ds.StateAt(5, "Kerala"); ok {
		t.Fatalf("expected miss for absent tick")
	}
}

func TestGapDetection(t *testing.T) {
	csv := buildCSV(
		testRow{tick: 1, state: "Kerala"},
		testRow{tick: 1, state: "Punjab"},
		testRow{tick: 2, state: "Kerala"},
		testRow{tick: 3, state: "Kerala"},
		testRow{tick: 3, state: "Punjab"},
	)
	_, err := ReadCSV(strings.NewReader(csv))
	var gap *GapError
	if !errors.As(err, &gap) {
		t.Fatalf("expected GapError, got %v", err)
	}
	if gap.State != "Punjab" || gap.Tick != 2 {
		t.Fatalf("gap = %s@%d, want Punjab@2", gap.State, gap.Tick)
	}
}

func TestRangeErrorOnUnitInterval(t *testing.T) {
	csv := buildCSV(testRow{tick: 1, state: "Kerala", welfare: 1.5})
	_, err := ReadCSV(strings.NewReader(csv))
	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RangeError, got %v", err)
	}
	if re.Column != "welfare_index" {
		t.Fatalf("column = %s, want welfare_index", re.Column)
	}
}

func TestSchemaErrorOnBadEnum(t *testing.T) {
	csv := buildCSV(testRow{tick: 1, state: "Kerala", order: "buy"})
	_, err := ReadCSV(strings.NewReader(csv))
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Column != "order_type" {
		t.Fatalf("column = %s, want order_type", se.Column)
	}
}

func TestSchemaErrorOnMissingColumn(t *testing.T) {
	csv := "tick,state\n1,Kerala\n"
	_, err := ReadCSV(strings.NewReader(csv))
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestNegativeSupplyRejected(t *testing.T) {
	row := testRow{tick: 1, state: "Kerala"}.render()
	row = strings.Replace(row, ",50,", ",-50,", 1)
	csv := strings.Join(Columns, ",") + "\n" + row + "\n"
	_, err := ReadCSV(strings.NewReader(csv))
	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RangeError, got %v", err)
	}
	if re.Column != "water_supply" {
		t.Fatalf("column = %s, want water_supply", re.Column)
	}
}
