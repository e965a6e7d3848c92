package dataset

import "fmt"

// SchemaError reports a missing column or an unrecognized enum value.
type SchemaError struct {
	Column string
	Value  string
	Line   int
}

func (e *SchemaError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("dataset schema: missing column %q", e.Column)
	}
	return fmt.Sprintf("dataset schema: line %d: unrecognized %s value %q", e.Line, e.Column, e.Value)
}

// RangeError reports a numeric value outside its documented domain.
type RangeError struct {
	Column string
	Value  float64
	Line   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("dataset range: line %d: %s=%v out of domain", e.Line, e.Column, e.Value)
}

// GapError reports a (tick, state) combination with no rows. Ticks are
// required to be dense and contiguous per state, so a gap means the dataset
// cannot be trusted.
type GapError struct {
	State string
	Tick  int
}

func (e *GapError) Error() string {
	return fmt.Sprintf("dataset gap: state %q has no rows at tick %d", e.State, e.Tick)
}
