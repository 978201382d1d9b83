// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

package generator

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/fraudforge/fraudforge/internal/event"
	"github.com/fraudforge/fraudforge/internal/logging"
	"github.com/fraudforge/fraudforge/internal/metrics"
	"github.com/fraudforge/fraudforge/internal/sink"
)

// DriverConfig holds the streaming loop tunables.
type DriverConfig struct {
	// EntityMin and EntityMax bound the simulated card identifier range,
	// inclusive. Defaults: 1000 and 1050.
	EntityMin int
	EntityMax int

	// BatchSize is the number of records per sink call. Default: 10.
	BatchSize int

	// Interval is the pause between batches, the sole backpressure
	// mechanism. Default: 2s.
	Interval time.Duration
}

// DefaultDriverConfig returns the stock streaming parameters.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		EntityMin: 1000,
		EntityMax: 1050,
		BatchSize: 10,
		Interval:  2 * time.Second,
	}
}

// Driver runs the generation loop: pick an entity, consult the scheduler,
// synthesize, promote state, accumulate a batch, hand it to the sink.
//
// Driver implements suture.Service. It is a single sequential loop, which
// is what guarantees that no two synthesis calls for the same entity run
// concurrently.
type Driver struct {
	cfg        DriverConfig
	synth      *Synthesizer
	sched      *Scheduler
	state      *StateStore
	serializer *event.Serializer
	sink       sink.Sink
	rng        *rand.Rand
	now        func() time.Time
	logger     zerolog.Logger

	seq              atomic.Uint64
	totalTxns        atomic.Uint64
	totalAnomalies   atomic.Uint64
	totalFallbacks   atomic.Uint64
	totalFailedSends atomic.Uint64
}

// Totals is a snapshot of the driver's running counters.
type Totals struct {
	Transactions  uint64
	Anomalies     uint64
	Fallbacks     uint64
	FailedBatches uint64
}

// NewDriver creates a driver. Zero config values fall back to defaults.
func NewDriver(cfg DriverConfig, synth *Synthesizer, sched *Scheduler, state *StateStore, snk sink.Sink, rng *rand.Rand) *Driver {
	def := DefaultDriverConfig()
	if cfg.EntityMin <= 0 {
		cfg.EntityMin = def.EntityMin
	}
	if cfg.EntityMax < cfg.EntityMin {
		cfg.EntityMax = cfg.EntityMin + (def.EntityMax - def.EntityMin)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}

	return &Driver{
		cfg:        cfg,
		synth:      synth,
		sched:      sched,
		state:      state,
		serializer: event.NewSerializer(),
		sink:       snk,
		rng:        rng,
		now:        time.Now,
		logger:     logging.With().Str("component", "driver").Logger(),
	}
}

// Serve implements suture.Service. It generates and submits batches until
// the context is canceled; the in-flight batch always completes before
// the loop exits, then the final summary is logged.
func (d *Driver) Serve(ctx context.Context) error {
	d.logger.Info().
		Int("entity_min", d.cfg.EntityMin).
		Int("entity_max", d.cfg.EntityMax).
		Int("batch_size", d.cfg.BatchSize).
		Dur("interval", d.cfg.Interval).
		Msg("Streaming driver started")

	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	for {
		d.runBatch(ctx)

		select {
		case <-ctx.Done():
			d.logSummary()
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Totals returns a snapshot of the running counters.
func (d *Driver) Totals() Totals {
	return Totals{
		Transactions:  d.totalTxns.Load(),
		Anomalies:     d.totalAnomalies.Load(),
		Fallbacks:     d.totalFallbacks.Load(),
		FailedBatches: d.totalFailedSends.Load(),
	}
}

// runBatch generates one batch and hands it to the sink. A sink failure
// is isolated to this iteration: it is logged and counted, the batch's
// records are dropped, and the loop continues (at-most-once delivery).
func (d *Driver) runBatch(ctx context.Context) {
	batch := make([][]byte, 0, d.cfg.BatchSize)

	for i := 0; i < d.cfg.BatchSize; i++ {
		seq := d.seq.Add(1)
		entityID := d.cfg.EntityMin + d.rng.Intn(d.cfg.EntityMax-d.cfg.EntityMin+1)
		prior, hasHistory := d.state.Get(entityID)
		force := d.sched.ShouldForceAnomaly(seq, hasHistory)

		res := d.synth.Synthesize(entityID, prior, force, d.now())

		payload, err := d.serializer.Marshal(res.Transaction)
		if err != nil {
			// A record the synthesizer built should always serialize;
			// failing here is a bug, not a data condition.
			d.logger.Error().Err(err).Int("entity_id", entityID).Msg("Dropping unserializable record")
			continue
		}

		d.state.Put(entityID, res.Transaction)
		batch = append(batch, payload)

		d.totalTxns.Add(1)
		metrics.RecordTransaction(res.Anomalous)

		if res.Anomalous {
			d.totalAnomalies.Add(1)
			evt := d.logger.Warn().
				Int("entity_id", entityID).
				Str("from", prior.Location).
				Str("to", res.Transaction.Location).
				Float64("distance_km", res.DistanceKm).
				Dur("gap", res.Gap)
			if res.UsedFallback {
				d.totalFallbacks.Add(1)
				metrics.RecordAnomalyFallback()
				evt.Bool("fallback", true).Msg("Anomaly degraded to fallback city; distance threshold not met")
			} else {
				evt.Msg("Impossible-travel anomaly injected")
			}
		}
	}

	metrics.SetEntitiesTracked(d.state.Len())

	// The batch in flight finishes even when the loop is being canceled.
	start := time.Now()
	err := d.sink.Publish(context.WithoutCancel(ctx), batch)
	metrics.RecordBatch(err, time.Since(start))

	if err != nil {
		d.totalFailedSends.Add(1)
		d.logger.Error().Err(err).
			Int("batch_size", len(batch)).
			Msg("Batch publish failed; records dropped")
		return
	}

	d.logger.Info().
		Int("batch_size", len(batch)).
		Uint64("total_transactions", d.totalTxns.Load()).
		Uint64("total_anomalies", d.totalAnomalies.Load()).
		Msg("Batch sent")

	if d.totalTxns.Load()%100 == 0 {
		if id, txn, ok := d.state.Sample(); ok {
			d.logger.Debug().
				Int("entity_id", id).
				Str("location", txn.Location).
				Float64("amount", txn.Amount).
				Msg("Sample entity state")
		}
	}
}

// logSummary emits the shutdown totals.
func (d *Driver) logSummary() {
	totals := d.Totals()
	d.logger.Info().
		Uint64("total_transactions", totals.Transactions).
		Uint64("total_anomalies", totals.Anomalies).
		Uint64("total_fallbacks", totals.Fallbacks).
		Uint64("failed_batches", totals.FailedBatches).
		Msg("Streaming driver stopped")
}
