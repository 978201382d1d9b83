// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

// Package event defines the canonical transaction record emitted by the
// generator and its JSON wire encoding.
package event

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the current event schema version.
// Increment this when making breaking changes to Transaction.
const SchemaVersion = 1

// Transaction is the unit of output: one synthesized card transaction.
//
// Records are created once by the synthesizer and never updated. Latitude
// and longitude are denormalized from the geo reference table at synthesis
// time so consumers do not need the table to score events.
type Transaction struct {
	// Schema version for forward/backward compatibility.
	SchemaVersion int `json:"schema_version,omitempty"`

	// EventID uniquely identifies this record on the wire.
	EventID string `json:"event_id"`

	// TransactionID is a human-traceable identifier derived from the
	// timestamp plus a random suffix. Uniqueness is best-effort only;
	// consumers needing a hard guarantee should key on EventID.
	TransactionID string `json:"transaction_id"`

	// EntityID identifies the simulated account/card.
	EntityID int `json:"entity_id"`

	// Location is the city name, a key into the geo reference table.
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Timestamp is UTC; JSON encoding is RFC 3339 (ISO-8601).
	Timestamp time.Time `json:"timestamp"`

	// Amount is in [5.00, 500.00], rounded to 2 fraction digits.
	Amount float64 `json:"amount"`

	Merchant         string `json:"merchant"`
	MerchantCategory string `json:"merchant_category"`

	// Currency is a fixed constant per generator instance.
	Currency string `json:"currency"`
}

// New creates a transaction shell with a unique event ID and schema version.
// The synthesizer fills in the remaining fields.
func New(entityID int) *Transaction {
	return &Transaction{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		EntityID:      entityID,
	}
}

// NewTransactionID builds the traceable transaction identifier:
// "TXN-" + timestamp (yyyymmddhhmmss) + "-" + 4-digit random suffix.
func NewTransactionID(ts time.Time, rng *rand.Rand) string {
	return fmt.Sprintf("TXN-%s-%04d", ts.UTC().Format("20060102150405"), 1000+rng.Intn(9000))
}

// Validate checks required fields and returns an error if validation fails.
func (t *Transaction) Validate() error {
	if t.EventID == "" {
		return &ValidationError{Field: "event_id", Message: "required"}
	}
	if t.TransactionID == "" {
		return &ValidationError{Field: "transaction_id", Message: "required"}
	}
	if t.EntityID == 0 {
		return &ValidationError{Field: "entity_id", Message: "required"}
	}
	if t.Location == "" {
		return &ValidationError{Field: "location", Message: "required"}
	}
	if t.Timestamp.IsZero() {
		return &ValidationError{Field: "timestamp", Message: "required"}
	}
	if t.Amount < 5.00 || t.Amount > 500.00 {
		return &ValidationError{Field: "amount", Message: "out of range [5.00, 500.00]"}
	}
	if t.Merchant == "" {
		return &ValidationError{Field: "merchant", Message: "required"}
	}
	if t.MerchantCategory == "" {
		return &ValidationError{Field: "merchant_category", Message: "required"}
	}
	if t.Currency == "" {
		return &ValidationError{Field: "currency", Message: "required"}
	}
	return nil
}

// Topic returns the NATS subject for this transaction.
// Format: transactions.<currency>
// Example: transactions.usd
func (t *Transaction) Topic() string {
	return "transactions." + strings.ToLower(t.Currency)
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
