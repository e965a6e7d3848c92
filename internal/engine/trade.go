package engine

import (
	"WorldSim/internal/domain/models"
)

// TradeSummary aggregates the order book across the range and all states.
// Every order row counts here; no deduplication applies to trade fields.
func (w *World) TradeSummary() models.TradeSummary {
	summary := models.TradeSummary{
		ByResource: make(map[string]models.ResourceTradeStats, len(models.ResourceTypes)),
	}
	for _, r := range models.ResourceTypes {
		summary.ByResource[string(r)] = models.ResourceTradeStats{}
	}
	for _, s := range w.ds.States() {
		for t := w.tickStart; t <= w.tickEnd; t++ {
			for _, o := range w.ds.Orders(t, s) {
				summary.TotalOrders++
				stats := summary.ByResource[string(o.ResourceType)]
				stats.Orders++
				if o.TradeExecuted {
					summary.TotalExecuted++
					stats.ExecutedVolume += o.TradeQuantity
				}
				summary.ByResource[string(o.ResourceType)] = stats
			}
		}
	}
	if summary.TotalOrders > 0 {
		summary.ExecutionRate = float64(summary.TotalExecuted) / float64(summary.TotalOrders)
	}
	return summary
}

// BidAskOverTime returns per-tick bid/ask counts across all states with the
// arithmetic mean price per side. A side with no orders at a tick has a nil
// average rather than a misleading zero.
func (w *World) BidAskOverTime() []models.TickBidAsk {
	states := w.ds.States()
	out := make([]models.TickBidAsk, 0, w.tickEnd-w.tickStart+1)
	for t := w.tickStart; t <= w.tickEnd; t++ {
		entry := models.TickBidAsk{Tick: t}
		var bidPrice, askPrice float64
		for _, s := range states {
			for _, o := range w.ds.Orders(t, s) {
				if o.OrderType == models.OrderBid {
					entry.BidCount++
					bidPrice += o.TradePrice
				} else {
					entry.AskCount++
					askPrice += o.TradePrice
				}
			}
		}
		if entry.BidCount > 0 {
			avg := bidPrice / float64(entry.BidCount)
			entry.AvgBidPrice = &avg
		}
		if entry.AskCount > 0 {
			avg := askPrice / float64(entry.AskCount)
			entry.AvgAskPrice = &avg
		}
		out = append(out, entry)
	}
	return out
}

// BidAskByState returns per-state bid/ask counts over the range with the
// arithmetic mean price per side, states ordered by name.
func (w *World) BidAskByState() []models.StateBidAsk {
	states := w.ds.States()
	out := make([]models.StateBidAsk, 0, len(states))
	for _, s := range states {
		entry := models.StateBidAsk{State: s}
		var bidPrice, askPrice float64
		for t := w.tickStart; t <= w.tickEnd; t++ {
			for _, o := range w.ds.Orders(t, s) {
				if o.OrderType == models.OrderBid {
					entry.BidCount++
					bidPrice += o.TradePrice
				} else {
					entry.AskCount++
					askPrice += o.TradePrice
				}
			}
		}
		if entry.BidCount > 0 {
			avg := bidPrice / float64(entry.BidCount)
			entry.AvgBidPrice = &avg
		}
		if entry.AskCount > 0 {
			avg := askPrice / float64(entry.AskCount)
			entry.AvgAskPrice = &avg
		}
		out = append(out, entry)
	}
	return out
}
