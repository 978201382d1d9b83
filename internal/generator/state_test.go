// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

package generator

import (
	"sync"
	"testing"
	"time"

	"github.com/fraudforge/fraudforge/internal/event"
)

func TestStateStore_DepthOne(t *testing.T) {
	s := NewStateStore()

	if _, ok := s.Get(1000); ok {
		t.Error("empty store returned a record")
	}
	if s.Has(1000) {
		t.Error("Has() = true on empty store")
	}

	first := priorAt("London", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.Put(1000, first)

	got, ok := s.Get(1000)
	if !ok || got != first {
		t.Fatalf("Get() = %v, %v; want stored record", got, ok)
	}

	// Depth is 1: a second Put replaces, not appends
	second := priorAt("Tokyo", time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC))
	s.Put(1000, second)

	got, _ = s.Get(1000)
	if got != second {
		t.Error("Put() did not replace the prior record")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStateStore_Sample(t *testing.T) {
	s := NewStateStore()
	if _, _, ok := s.Sample(); ok {
		t.Error("Sample() on empty store reported a record")
	}

	s.Put(1000, priorAt("London", time.Now()))
	id, txn, ok := s.Sample()
	if !ok || id != 1000 || txn == nil {
		t.Errorf("Sample() = %d, %v, %v; want the only record", id, txn, ok)
	}
}

func TestStateStore_ConcurrentAccess(t *testing.T) {
	s := NewStateStore()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Put(id, &event.Transaction{EntityID: id, Location: "London"})
				s.Get(id)
				s.Has(id)
				s.Len()
				s.Sample()
			}
		}(1000 + i)
	}
	wg.Wait()

	if s.Len() != 8 {
		t.Errorf("Len() = %d, want 8", s.Len())
	}
}
