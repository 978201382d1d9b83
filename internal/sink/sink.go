// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

// Package sink abstracts batch delivery of serialized transactions.
//
// The core generator only depends on the Sink interface; the NATS
// JetStream implementation (Watermill publisher with reconnection and
// circuit breaker protection) and the console implementation are the two
// shipped transports.
package sink

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Sink accepts ordered batches of serialized transaction records.
// A batch either fully succeeds or the whole batch is reported failed;
// the caller decides what to do with failed batches (the driver drops
// them — at-most-once delivery).
type Sink interface {
	Publish(ctx context.Context, batch [][]byte) error
	Close() error
}

// ConsoleSink writes newline-delimited JSON payloads to a writer.
// It is the development transport and the zero-dependency fallback.
type ConsoleSink struct {
	mu     sync.Mutex
	w      io.Writer
	closed bool
}

// NewConsoleSink creates a console sink writing to w.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// Publish writes each payload on its own line.
func (s *ConsoleSink) Publish(_ context.Context, batch [][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("console sink is closed")
	}

	for _, payload := range batch {
		if _, err := s.w.Write(payload); err != nil {
			return fmt.Errorf("write payload: %w", err)
		}
		if _, err := s.w.Write([]byte("\n")); err != nil {
			return fmt.Errorf("write payload: %w", err)
		}
	}
	return nil
}

// Close marks the sink closed. Closing twice is a no-op.
func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
