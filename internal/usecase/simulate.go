// Package usecase orchestrates the analysis pipeline: range-bound engine
// queries, strategy classification, and payload assembly, with response
// memoization and run events layered on top.
package usecase

import (
	"context"
	"time"

	"WorldSim/internal/dataset"
	"WorldSim/internal/domain/models"
	"WorldSim/internal/engine"
	"WorldSim/internal/repository"
	"WorldSim/internal/strategy"
	pkgcache "WorldSim/pkg/cache"
	"WorldSim/pkg/metrics"

	xlogger "WorldSim/pkg/logger"
)

// Simulate runs one deterministic analysis over the loaded dataset. The
// dataset is immutable, so concurrent Run calls are safe and repeated calls
// with the same range produce identical payloads whether or not the cache
// is enabled.
type Simulate struct {
	ds       *dataset.Dataset
	analyzer *strategy.Analyzer
	cache    pkgcache.Service
	cacheTTL time.Duration
	events   repository.RunEvents
	metrics  *metrics.Recorder
	logger   *xlogger.Logger
}

// SimulateOption configures optional collaborators.
type SimulateOption func(*Simulate)

// WithCache enables response memoization keyed by tick range.
func WithCache(c pkgcache.Service, ttl time.Duration) SimulateOption {
	return func(uc *Simulate) {
		uc.cache = c
		uc.cacheTTL = ttl
	}
}

// WithRunEvents enables run-completed event publishing.
func WithRunEvents(events repository.RunEvents) SimulateOption {
	return func(uc *Simulate) { uc.events = events }
}

// NewSimulate creates the analysis use case.
func NewSimulate(
	ds *dataset.Dataset,
	analyzer *strategy.Analyzer,
	rec *metrics.Recorder,
	logger *xlogger.Logger,
	opts ...SimulateOption,
) *Simulate {
	uc := &Simulate{
		ds:       ds,
		analyzer: analyzer,
		metrics:  rec,
		logger:   logger,
		cacheTTL: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Dataset exposes the loaded table for collaborators that build their own
// engine views (the websocket series feed).
func (uc *Simulate) Dataset() *dataset.Dataset { return uc.ds }

// Run computes the full analysis payload for the requested tick range. The
// seed is echoed into the run event and otherwise ignored; the aggregation
// path has no randomness.
func (uc *Simulate) Run(ctx context.Context, req models.SimulateRequest) (*models.SimulationResult, error) {
	start := time.Now()
	seed, tickStart, tickEnd := req.Values()
	key := pkgcache.GenerateKeyWithParams("simulate", tickStart, tickEnd)

	if uc.cache != nil {
		var cached models.SimulationResult
		if err := uc.cache.Get(ctx, key, &cached); err == nil {
			uc.metrics.RecordCache("simulate", true)
			uc.publishRunEvent(seed, tickStart, tickEnd, cached.Summary.TotalDataRows, start, true)
			return &cached, nil
		}
		uc.metrics.RecordCache("simulate", false)
	}

	world, err := engine.New(uc.ds, tickStart, tickEnd)
	if err != nil {
		uc.metrics.RecordQuery("simulate", "rejected")
		return nil, err
	}

	result, err := Assemble(world, uc.analyzer)
	if err != nil {
		uc.metrics.RecordQuery("simulate", "error")
		uc.logger.Error("analysis failed",
			xlogger.Int("tick_start", tickStart),
			xlogger.Int("tick_end", tickEnd),
			xlogger.Error(err),
		)
		return nil, err
	}

	uc.metrics.RecordQuery("simulate", "ok")
	uc.metrics.RecordQueryDuration("simulate", time.Since(start).Seconds())
	uc.logger.Info("analysis complete",
		xlogger.Int("tick_start", tickStart),
		xlogger.Int("tick_end", tickEnd),
		xlogger.Int("rows", result.Summary.TotalDataRows),
		xlogger.Float64("avg_welfare", result.Summary.AvgWelfare),
		xlogger.Float64("execution_rate", result.Summary.TradeExecutionRate),
		xlogger.Duration("duration_ms", time.Since(start)),
	)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, result, uc.cacheTTL); err != nil {
			uc.logger.Warn("cache set failed", xlogger.Error(err))
		}
	}
	uc.publishRunEvent(seed, tickStart, tickEnd, result.Summary.TotalDataRows, start, false)
	return result, nil
}

func (uc *Simulate) publishRunEvent(seed, tickStart, tickEnd, rows int, start time.Time, cached bool) {
	if uc.events == nil {
		return
	}
	event := models.RunEvent{
		Seed:       seed,
		TickStart:  tickStart,
		TickEnd:    tickEnd,
		TotalRows:  rows,
		DurationMS: time.Since(start).Milliseconds(),
		Cached:     cached,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.events.Publish(ctx, event); err != nil {
			uc.logger.Warn("run event publish failed", xlogger.Error(err))
		}
	}()
}
