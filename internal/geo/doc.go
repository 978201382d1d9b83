// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

// Package geo provides the fixed geographic reference table used by the
// transaction synthesizer and great-circle distance math over it.
//
// The table maps city names to WGS84 coordinates and is loaded once at
// process start. Distances use the Haversine formula over a spherical
// Earth, which is accurate to within ~0.5% — more than enough precision
// for a 5000 km anomaly threshold.
package geo
