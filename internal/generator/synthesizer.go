// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/fraudforge/fraudforge/internal/catalog"
	"github.com/fraudforge/fraudforge/internal/event"
	"github.com/fraudforge/fraudforge/internal/geo"
)

// SynthesizerConfig holds the tunables of the transaction state machine.
type SynthesizerConfig struct {
	// Currency is stamped on every record.
	// Default: USD
	Currency string

	// DistanceThresholdKm is the minimum great-circle distance an anomaly
	// must jump. Default: 5000
	DistanceThresholdKm float64

	// FallbackLocation is used when no city exceeds the threshold from
	// the entity's current city. Impossible with the default reference
	// table, but custom tables can trigger it. Default: Tokyo
	FallbackLocation string

	// MinAnomalyGap and MaxAnomalyGap bound the timestamp delta of an
	// anomalous transaction (inclusive). Defaults: 10m and 30m.
	MinAnomalyGap time.Duration
	MaxAnomalyGap time.Duration
}

// DefaultSynthesizerConfig returns the generator's stock policy.
func DefaultSynthesizerConfig() SynthesizerConfig {
	return SynthesizerConfig{
		Currency:            "USD",
		DistanceThresholdKm: 5000,
		FallbackLocation:    "Tokyo",
		MinAnomalyGap:       10 * time.Minute,
		MaxAnomalyGap:       30 * time.Minute,
	}
}

// Result is the outcome of one synthesis call.
type Result struct {
	Transaction *event.Transaction

	// Anomalous is true when the record is an injected impossible-travel
	// anomaly (requires prior history).
	Anomalous bool

	// UsedFallback is true when the anomaly degraded to the fallback
	// city because no candidate exceeded the distance threshold. The
	// caller must surface this; it weakens the anomaly guarantee.
	UsedFallback bool

	// DistanceKm and Gap describe the jump for anomalous records.
	DistanceKm float64
	Gap        time.Duration
}

// Synthesizer produces the next transaction for an entity given its prior
// record. It is a pure function of its inputs plus the injected random
// source and is not safe for concurrent use (the rand source is not).
type Synthesizer struct {
	cfg        SynthesizerConfig
	table      geo.Table
	locations  []string
	catalog    catalog.Catalog
	categories []string
	rng        *rand.Rand
}

// NewSynthesizer validates the reference data and builds a synthesizer.
// Empty reference tables are configuration errors caught here, at startup,
// so synthesis itself never fails.
func NewSynthesizer(table geo.Table, cat catalog.Catalog, cfg SynthesizerConfig, rng *rand.Rand) (*Synthesizer, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	if cfg.DistanceThresholdKm <= 0 {
		cfg.DistanceThresholdKm = 5000
	}
	if cfg.MinAnomalyGap <= 0 {
		cfg.MinAnomalyGap = 10 * time.Minute
	}
	if cfg.MaxAnomalyGap <= 0 {
		cfg.MaxAnomalyGap = 30 * time.Minute
	}
	if cfg.MaxAnomalyGap < cfg.MinAnomalyGap {
		return nil, fmt.Errorf("generator: max anomaly gap %v below min %v", cfg.MaxAnomalyGap, cfg.MinAnomalyGap)
	}
	if cfg.FallbackLocation == "" {
		cfg.FallbackLocation = "Tokyo"
	}
	if _, ok := table.Lookup(cfg.FallbackLocation); !ok {
		return nil, fmt.Errorf("generator: fallback location %q not in reference table", cfg.FallbackLocation)
	}

	return &Synthesizer{
		cfg:        cfg,
		table:      table,
		locations:  table.Names(),
		catalog:    cat,
		categories: cat.Categories(),
		rng:        rng,
	}, nil
}

// Synthesize produces the next transaction for entityID.
//
// With no prior record the entity starts in a uniformly random city at
// `now`; forceAnomaly is ignored because an anomaly needs a previous place
// to jump from. With history and forceAnomaly=false the entity stays in
// its city at `now`, clamped so per-entity timestamps never move backwards
// (a prior anomaly can sit ahead of the wall clock). With
// forceAnomaly=true the entity jumps to a uniformly random city beyond the
// distance threshold, 10–30 minutes after its prior record.
func (s *Synthesizer) Synthesize(entityID int, prior *event.Transaction, forceAnomaly bool, now time.Time) Result {
	res := Result{}

	var location string
	var timestamp time.Time

	switch {
	case prior == nil:
		location = s.locations[s.rng.Intn(len(s.locations))]
		timestamp = now.UTC()

	case forceAnomaly:
		location, res.UsedFallback = s.pickDistantLocation(prior.Location)
		res.Anomalous = true
		res.Gap = s.anomalyGap()
		res.DistanceKm = s.table.DistanceKm(prior.Location, location)
		timestamp = prior.Timestamp.Add(res.Gap)

	default:
		location = prior.Location
		timestamp = now.UTC()
		if timestamp.Before(prior.Timestamp) {
			timestamp = prior.Timestamp
		}
	}

	coords, _ := s.table.Lookup(location)
	category := s.categories[s.rng.Intn(len(s.categories))]
	merchants := s.catalog.Merchants(category)

	txn := event.New(entityID)
	txn.TransactionID = event.NewTransactionID(timestamp, s.rng)
	txn.Location = location
	txn.Latitude = coords.Latitude
	txn.Longitude = coords.Longitude
	txn.Timestamp = timestamp
	txn.Amount = roundTo2Decimals(5.0 + s.rng.Float64()*495.0)
	txn.MerchantCategory = category
	txn.Merchant = merchants[s.rng.Intn(len(merchants))]
	txn.Currency = s.cfg.Currency

	res.Transaction = txn
	return res
}

// pickDistantLocation returns a uniformly random city beyond the distance
// threshold from `from`, or the fallback city when none exists.
func (s *Synthesizer) pickDistantLocation(from string) (location string, usedFallback bool) {
	candidates := make([]string, 0, len(s.locations))
	for _, name := range s.locations {
		if name != from && s.table.DistanceKm(from, name) > s.cfg.DistanceThresholdKm {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return s.cfg.FallbackLocation, true
	}
	return candidates[s.rng.Intn(len(candidates))], false
}

// anomalyGap draws a uniform duration in [MinAnomalyGap, MaxAnomalyGap],
// inclusive on both ends.
func (s *Synthesizer) anomalyGap() time.Duration {
	span := int64(s.cfg.MaxAnomalyGap-s.cfg.MinAnomalyGap) + 1
	return s.cfg.MinAnomalyGap + time.Duration(s.rng.Int63n(span))
}

// roundTo2Decimals rounds a float64 to 2 decimal places.
func roundTo2Decimals(f float64) float64 {
	return math.Round(f*100) / 100
}
