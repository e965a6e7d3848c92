package models

// Requests for the analysis HTTP endpoints. Numeric fields are pointers so
// an omitted value (filled from the default tag) stays distinct from an
// explicit zero, which must fail the gte bound instead of being rewritten.

// SimulateRequest selects the tick window to aggregate. The seed is accepted
// for API compatibility with older clients; aggregation over the fixed
// dataset is deterministic and the seed never influences the result.
type SimulateRequest struct {
	Seed      *int `query:"seed" json:"seed" default:"42" validate:"required,gte=1,lte=999999"`
	TickStart *int `query:"tick_start" json:"tick_start" default:"1" validate:"required,gte=1,lte=120"`
	TickEnd   *int `query:"tick_end" json:"tick_end" default:"120" validate:"required,gte=1,lte=120"`
}

// Values returns seed and tick window with defaults applied to nil fields,
// for callers constructing the request outside the HTTP binding path.
func (r SimulateRequest) Values() (seed, tickStart, tickEnd int) {
	return intOr(r.Seed, 42), intOr(r.TickStart, 1), intOr(r.TickEnd, 120)
}

// BriefingRequest carries the pre-rendered summary text and state table that
// the language model turns into an executive briefing.
type BriefingRequest struct {
	Model      string          `json:"model" default:"gemma3:4b"`
	Summary    string          `json:"summary" validate:"required"`
	StateTable []StateTableRow `json:"state_table"`
}

// StateTableRow is the subset of per-state fields shown to the language model.
type StateTableRow struct {
	State            string  `json:"state"`
	Population       float64 `json:"population"`
	WelfareIndex     float64 `json:"welfare_index"`
	GDPGrowthRate    float64 `json:"gdp_growth_rate"`
	DominantStrategy string  `json:"dominant_strategy"`
}

// SeriesFeedRequest selects the tick window for the websocket series feed.
type SeriesFeedRequest struct {
	TickStart *int `query:"tick_start" json:"tick_start" default:"1" validate:"required,gte=1,lte=120"`
	TickEnd   *int `query:"tick_end" json:"tick_end" default:"120" validate:"required,gte=1,lte=120"`
}

// Window returns the tick range with defaults applied to nil fields.
func (r SeriesFeedRequest) Window() (tickStart, tickEnd int) {
	return intOr(r.TickStart, 1), intOr(r.TickEnd, 120)
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
