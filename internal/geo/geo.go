// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

package geo

import (
	"fmt"
	"math"
	"sort"
)

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Table maps location names to coordinates. It is immutable after
// construction; all methods are safe for concurrent readers.
type Table map[string]Coordinates

// DefaultTable returns the built-in city reference table.
// Every pair of continents is represented so that any city has at least
// one other city more than 5000 km away.
func DefaultTable() Table {
	return Table{
		"London":      {Latitude: 51.5074, Longitude: -0.1278},
		"New York":    {Latitude: 40.7128, Longitude: -74.0060},
		"Tokyo":       {Latitude: 35.6762, Longitude: 139.6503},
		"Sydney":      {Latitude: -33.8688, Longitude: 151.2093},
		"Dubai":       {Latitude: 25.2048, Longitude: 55.2708},
		"São Paulo":   {Latitude: -23.5505, Longitude: -46.6333},
		"Singapore":   {Latitude: 1.3521, Longitude: 103.8198},
		"Mumbai":      {Latitude: 19.0760, Longitude: 72.8777},
		"Paris":       {Latitude: 48.8566, Longitude: 2.3522},
		"Los Angeles": {Latitude: 34.0522, Longitude: -118.2437},
	}
}

// Lookup returns the coordinates for a location name.
func (t Table) Lookup(name string) (Coordinates, bool) {
	c, ok := t[name]
	return c, ok
}

// Names returns the location names in sorted order. Sorted output keeps
// random selection deterministic under a seeded source.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DistanceKm returns the great-circle distance in kilometers between two
// named locations. Passing a name that is not in the table is a
// programming error and panics; callers draw names from the table itself.
func (t Table) DistanceKm(a, b string) float64 {
	ca, ok := t[a]
	if !ok {
		panic(fmt.Sprintf("geo: unknown location %q", a))
	}
	cb, ok := t[b]
	if !ok {
		panic(fmt.Sprintf("geo: unknown location %q", b))
	}
	return haversineDistance(ca.Latitude, ca.Longitude, cb.Latitude, cb.Longitude)
}

// Validate checks that the table is usable as a reference dataset.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("geo: reference table is empty")
	}
	for name, c := range t {
		if c.Latitude < -90 || c.Latitude > 90 {
			return fmt.Errorf("geo: location %q has invalid latitude %v", name, c.Latitude)
		}
		if c.Longitude < -180 || c.Longitude > 180 {
			return fmt.Errorf("geo: location %q has invalid longitude %v", name, c.Longitude)
		}
	}
	return nil
}

// haversineDistance calculates the great-circle distance between two points
// on Earth using the Haversine formula. Returns distance in kilometers.
func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := lat1 * math.Pi / 180.0
	lon1Rad := lon1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	lon2Rad := lon2 * math.Pi / 180.0

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
