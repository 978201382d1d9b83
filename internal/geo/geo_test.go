// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

package geo

import (
	"math"
	"sort"
	"testing"
)

func TestDistanceKm_KnownDistances(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name      string
		from      string
		to        string
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "London to New York",
			from:      "London",
			to:        "New York",
			wantKm:    5570,
			tolerance: 60,
		},
		{
			name:      "London to Paris",
			from:      "London",
			to:        "Paris",
			wantKm:    344,
			tolerance: 10,
		},
		{
			name:      "Tokyo to Sydney",
			from:      "Tokyo",
			to:        "Sydney",
			wantKm:    7820,
			tolerance: 80,
		},
		{
			name:      "New York to Los Angeles",
			from:      "New York",
			to:        "Los Angeles",
			wantKm:    3940,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.DistanceKm(tt.from, tt.to)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("DistanceKm(%q, %q) = %.1f, want %.1f ± %.0f",
					tt.from, tt.to, got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestDistanceKm_SymmetryAndIdentity(t *testing.T) {
	table := DefaultTable()
	names := table.Names()

	for _, a := range names {
		if d := table.DistanceKm(a, a); d != 0 {
			t.Errorf("DistanceKm(%q, %q) = %v, want 0", a, a, d)
		}
		for _, b := range names {
			ab := table.DistanceKm(a, b)
			ba := table.DistanceKm(b, a)
			if ab != ba {
				t.Errorf("DistanceKm not symmetric: (%q,%q)=%v (%q,%q)=%v", a, b, ab, b, a, ba)
			}
			if a != b && ab <= 0 {
				t.Errorf("DistanceKm(%q, %q) = %v, want > 0 for distinct cities", a, b, ab)
			}
		}
	}
}

func TestDistanceKm_UnknownLocationPanics(t *testing.T) {
	table := DefaultTable()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("DistanceKm with unknown location did not panic")
		}
	}()
	table.DistanceKm("London", "Atlantis")
}

func TestDefaultTable_EveryCityHasDistantCandidate(t *testing.T) {
	// The anomaly injector needs at least one city >5000 km from any
	// starting point, otherwise it degrades to the fallback city.
	table := DefaultTable()

	for _, from := range table.Names() {
		found := false
		for _, to := range table.Names() {
			if from != to && table.DistanceKm(from, to) > 5000 {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no city more than 5000 km from %q in default table", from)
		}
	}
}

func TestNames_Sorted(t *testing.T) {
	names := DefaultTable().Names()
	if len(names) != 10 {
		t.Fatalf("got %d names, want 10", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
}

func TestLookup(t *testing.T) {
	table := DefaultTable()

	c, ok := table.Lookup("London")
	if !ok {
		t.Fatal("Lookup(London) not found")
	}
	if c.Latitude != 51.5074 || c.Longitude != -0.1278 {
		t.Errorf("London = %+v, want {51.5074 -0.1278}", c)
	}

	if _, ok := table.Lookup("Atlantis"); ok {
		t.Error("Lookup(Atlantis) = found, want missing")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		wantErr bool
	}{
		{name: "default table", table: DefaultTable(), wantErr: false},
		{name: "empty table", table: Table{}, wantErr: true},
		{name: "bad latitude", table: Table{"Nowhere": {Latitude: 91, Longitude: 0}}, wantErr: true},
		{name: "bad longitude", table: Table{"Nowhere": {Latitude: 0, Longitude: -181}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
