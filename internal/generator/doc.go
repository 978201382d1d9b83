// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

// Package generator contains the per-entity transaction state machine and
// anomaly-injection policy: the synthesizer, the injection scheduler, the
// entity state store, and the streaming driver that ties them to a sink.
//
// Baseline behavior keeps each entity in its last known city with a
// current timestamp. On the scheduler's cadence an entity with history is
// teleported to a city more than the distance threshold away with only a
// 10–30 minute gap, producing a classifiable impossible-travel anomaly
// for downstream fraud-detection pipelines.
//
// The driver owns all mutable state (entity records, counters). Synthesis
// for a given entity is never concurrent with a state write for that
// entity; the reference driver is a single sequential loop.
package generator
