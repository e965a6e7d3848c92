// Package dataset loads the fixed synthetic dataset into an immutable
// in-memory table indexed by (tick, state). Loading is the only I/O boundary
// of the analysis core; everything downstream is a pure function over the
// loaded table.
package dataset

import (
	"sort"

	"WorldSim/internal/domain/models"
)

type tickState struct {
	tick  int
	state string
}

// Dataset is the loaded row table plus its (tick, state) index. It is
// read-only after construction, which makes concurrent queries safe without
// locking.
type Dataset struct {
	rows    []models.Row
	index   map[tickState][]int
	states  []string
	stateSet map[string]struct{}
	minTick int
	maxTick int
}

// build indexes validated rows and enforces the dense-tick invariant: every
// state must have at least one row at every tick in [minTick, maxTick].
func build(rows []models.Row) (*Dataset, error) {
	d := &Dataset{
		rows:     rows,
		index:    make(map[tickState][]int),
		stateSet: make(map[string]struct{}),
	}
	for i, r := range rows {
		if d.minTick == 0 || r.Tick < d.minTick {
			d.minTick = r.Tick
		}
		if r.Tick > d.maxTick {
			d.maxTick = r.Tick
		}
		key := tickState{r.Tick, r.State}
		d.index[key] = append(d.index[key], i)
		if _, ok := d.stateSet[r.State]; !ok {
			d.stateSet[r.State] = struct{}{}
			d.states = append(d.states, r.State)
		}
	}
	sort.Strings(d.states)

	for _, s := range d.states {
		for t := d.minTick; t <= d.maxTick; t++ {
			if len(d.index[tickState{t, s}]) == 0 {
				return nil, &GapError{State: s, Tick: t}
			}
		}
	}
	return d, nil
}

// NumRows returns the total row count.
func (d *Dataset) NumRows() int { return len(d.rows) }

// MinTick returns the first tick present in the dataset.
func (d *Dataset) MinTick() int { return d.minTick }

// MaxTick returns the last tick present in the dataset.
func (d *Dataset) MaxTick() int { return d.maxTick }

// States returns the fixed state set, sorted by name.
func (d *Dataset) States() []string {
	out := make([]string, len(d.states))
	copy(out, d.states)
	return out
}

// HasState reports whether the state exists in the dataset.
func (d *Dataset) HasState(state string) bool {
	_, ok := d.stateSet[state]
	return ok
}

// Orders returns copies of all trade-order rows for (tick, state). Trade
// statistics must use every row; non-trade aggregates must go through
// StateAt instead.
func (d *Dataset) Orders(tick int, state string) []models.Row {
	idx := d.index[tickState{tick, state}]
	if len(idx) == 0 {
		return nil
	}
	out := make([]models.Row, len(idx))
	for i, j := range idx {
		out[i] = d.rows[j]
	}
	return out
}

// StateAt returns the per-(tick, state) non-trade state exactly once. The
// source data duplicates these fields onto every order row of the same
// (tick, state); this accessor is the single place that deduplication
// happens, so non-trade aggregates can never double count.
func (d *Dataset) StateAt(tick int, state string) (models.Row, bool) {
	idx := d.index[tickState{tick, state}]
	if len(idx) == 0 {
		return models.Row{}, false
	}
	return d.rows[idx[0]], true
}
