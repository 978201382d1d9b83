// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

// Package catalog provides the fixed merchant-category reference data used
// when shaping transaction records. Like the geo table, it is loaded once
// at process start and never mutated.
package catalog

import (
	"fmt"
	"sort"
)

// Catalog maps a merchant category to the merchants trading in it.
type Catalog map[string][]string

// Default returns the built-in merchant catalog.
func Default() Catalog {
	return Catalog{
		"retail": {"Amazon", "Walmart", "Target", "Tesco", "IKEA"},
		"gas":    {"Shell", "BP", "Exxon", "Chevron"},
		"food":   {"Starbucks", "McDonald's", "Subway", "Chipotle"},
		"tech":   {"Apple Store", "Best Buy", "Microsoft Store"},
		"travel": {"British Airways", "Hilton", "Marriott", "Uber"},
	}
}

// Categories returns the category names in sorted order. Sorted output
// keeps random selection deterministic under a seeded source.
func (c Catalog) Categories() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merchants returns the merchant names for a category, or nil if the
// category is unknown.
func (c Catalog) Merchants(category string) []string {
	return c[category]
}

// Validate checks that the catalog is usable as reference data.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("catalog: no merchant categories defined")
	}
	for category, merchants := range c {
		if len(merchants) == 0 {
			return fmt.Errorf("catalog: category %q has no merchants", category)
		}
	}
	return nil
}
