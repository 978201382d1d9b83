// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

package catalog

import (
	"sort"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()

	if err := c.Validate(); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}

	categories := c.Categories()
	if len(categories) != 5 {
		t.Errorf("got %d categories, want 5", len(categories))
	}
	if !sort.StringsAreSorted(categories) {
		t.Errorf("Categories() not sorted: %v", categories)
	}

	for _, category := range categories {
		if len(c.Merchants(category)) == 0 {
			t.Errorf("category %q has no merchants", category)
		}
	}
}

func TestMerchants_UnknownCategory(t *testing.T) {
	if got := Default().Merchants("crypto"); got != nil {
		t.Errorf("Merchants(crypto) = %v, want nil", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		wantErr bool
	}{
		{name: "valid", catalog: Catalog{"retail": {"Amazon"}}, wantErr: false},
		{name: "empty catalog", catalog: Catalog{}, wantErr: true},
		{name: "empty category", catalog: Catalog{"retail": {}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
