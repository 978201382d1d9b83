// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

package generator

import "testing"

func TestScheduler_ShouldForceAnomaly(t *testing.T) {
	s := NewScheduler(50)

	for seq := uint64(1); seq < 50; seq++ {
		if s.ShouldForceAnomaly(seq, true) {
			t.Fatalf("seq %d forced an anomaly before the cadence boundary", seq)
		}
	}
	if !s.ShouldForceAnomaly(50, true) {
		t.Error("seq 50 with history did not force an anomaly")
	}
	if s.ShouldForceAnomaly(50, false) {
		t.Error("seq 50 without history forced an anomaly")
	}
	if !s.ShouldForceAnomaly(100, true) {
		t.Error("seq 100 with history did not force an anomaly")
	}
	// Missed slots are not banked
	if s.ShouldForceAnomaly(51, true) {
		t.Error("seq 51 forced an anomaly; missed slots must not carry over")
	}
}

func TestNewScheduler_CadenceDefaults(t *testing.T) {
	tests := []struct {
		name    string
		cadence int
		wantHit uint64
	}{
		{"explicit cadence", 10, 10},
		{"zero falls back", 0, DefaultCadence},
		{"negative falls back", -1, DefaultCadence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(tt.cadence)
			if !s.ShouldForceAnomaly(tt.wantHit, true) {
				t.Errorf("seq %d with history not forced", tt.wantHit)
			}
			if s.ShouldForceAnomaly(tt.wantHit-1, true) {
				t.Errorf("seq %d forced before cadence boundary", tt.wantHit-1)
			}
		})
	}
}
