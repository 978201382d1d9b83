// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

package event

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Serializer handles transaction encoding/decoding for sink payloads.
type Serializer struct{}

// NewSerializer creates a new serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Marshal converts a transaction to JSON bytes. The record is validated
// first so malformed events never reach the wire.
func (s *Serializer) Marshal(txn *Transaction) ([]byte, error) {
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("validate transaction: %w", err)
	}

	data, err := json.Marshal(txn)
	if err != nil {
		return nil, fmt.Errorf("marshal transaction: %w", err)
	}

	return data, nil
}

// Unmarshal converts JSON bytes to a transaction.
func (s *Serializer) Unmarshal(data []byte) (*Transaction, error) {
	var txn Transaction
	if err := json.Unmarshal(data, &txn); err != nil {
		return nil, fmt.Errorf("unmarshal transaction: %w", err)
	}

	return &txn, nil
}
