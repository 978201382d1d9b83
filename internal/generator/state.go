// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

package generator

import (
	"sync"

	"github.com/fraudforge/fraudforge/internal/event"
)

// StateStore holds the most recent transaction per entity. History depth
// is exactly 1; a Put replaces the prior record. The store is created at
// driver start and torn down with it — state does not survive a restart,
// so every entity begins a new process with no history.
//
// The lock keeps the store safe if generation is ever split across
// workers; the reference driver is a single writer.
type StateStore struct {
	mu      sync.RWMutex
	records map[int]*event.Transaction
}

// NewStateStore creates an empty state store.
func NewStateStore() *StateStore {
	return &StateStore{records: make(map[int]*event.Transaction)}
}

// Get returns the entity's most recent transaction, if any.
func (s *StateStore) Get(entityID int) (*event.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txn, ok := s.records[entityID]
	return txn, ok
}

// Put promotes a transaction to the entity's current state.
func (s *StateStore) Put(entityID int, txn *event.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[entityID] = txn
}

// Has reports whether the entity has transacted before.
func (s *StateStore) Has(entityID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[entityID]
	return ok
}

// Len returns the number of entities with history.
func (s *StateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Sample returns an arbitrary tracked entity and its record, for
// heartbeat logging. Order is map-iteration order; callers must not rely
// on which entry is returned.
func (s *StateStore) Sample() (int, *event.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, txn := range s.records {
		return id, txn, true
	}
	return 0, nil, false
}
