package engine

import "fmt"

// InvalidRangeError reports a tick range outside the dataset bounds or with
// start > end. This is a caller error, not a data fault.
type InvalidRangeError struct {
	Start, End int
	Min, Max   int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid tick range [%d, %d]: must satisfy %d <= start <= end <= %d",
		e.Start, e.End, e.Min, e.Max)
}

// UnknownStateError reports a state name outside the fixed dataset set.
type UnknownStateError struct {
	State string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("unknown state %q", e.State)
}

// DataGapError reports a missing (tick, state) combination found mid-query.
// Ticks are dense by load-time invariant, so a gap means the affected
// aggregates cannot be trusted.
type DataGapError struct {
	State string
	Tick  int
}

func (e *DataGapError) Error() string {
	return fmt.Sprintf("data gap: state %q has no rows at tick %d", e.State, e.Tick)
}

// EmptyRangeError reports a state with zero rows in the queried range.
// Failing loudly here avoids silently misclassifying the state as critical.
type EmptyRangeError struct {
	State string
}

func (e *EmptyRangeError) Error() string {
	return fmt.Sprintf("state %q has no rows in the queried range", e.State)
}
