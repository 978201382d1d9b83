// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

package generator

// DefaultCadence is the stock injection cadence: one anomaly attempt per
// 50 generated transactions.
const DefaultCadence = 50

// Scheduler decides when to force an anomaly based on the global sequence
// number. An attempt lands only if the chosen entity already has history;
// missed slots are not banked, so the realized anomaly rate is at most
// 1/cadence, not exactly 1/cadence.
type Scheduler struct {
	cadence uint64
}

// NewScheduler creates a scheduler with the given cadence.
// Non-positive cadences fall back to DefaultCadence.
func NewScheduler(cadence int) *Scheduler {
	if cadence <= 0 {
		cadence = DefaultCadence
	}
	return &Scheduler{cadence: uint64(cadence)}
}

// ShouldForceAnomaly reports whether the record at the given global
// sequence number (1-based) should be an injected anomaly.
func (s *Scheduler) ShouldForceAnomaly(seq uint64, entityHasHistory bool) bool {
	return seq%s.cadence == 0 && entityHasHistory
}
