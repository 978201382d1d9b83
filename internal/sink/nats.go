// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

package sink

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	gobreaker "github.com/sony/gobreaker/v2"
)

// NATSSink publishes batches to NATS JetStream through Watermill, with
// reconnection handling and optional circuit breaker protection.
type NATSSink struct {
	publisher      message.Publisher
	topic          string
	circuitBreaker *gobreaker.CircuitBreaker[interface{}]
	logger         watermill.LoggerAdapter
	mu             sync.RWMutex
	closed         bool
}

// NewNATSSink creates a resilient Watermill NATS sink publishing to topic.
// The publisher is configured for JetStream with message ID tracking so
// the stream's duplicate window can drop replayed payloads.
func NewNATSSink(cfg PublisherConfig, topic string, logger watermill.LoggerAdapter) (*NATSSink, error) {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.ReconnectBufSize(cfg.ReconnectBuffer),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}

	wmConfig := wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: false, // Stream is pre-created by StreamManager
			TrackMsgId:    cfg.EnableTrackMsgID,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}

	pub, err := wmNats.NewPublisher(wmConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	return &NATSSink{
		publisher: pub,
		topic:     topic,
		logger:    logger,
	}, nil
}

// NewNATSSinkFromPublisher wraps an existing Watermill publisher.
// Used by tests and by callers that manage publisher construction.
func NewNATSSinkFromPublisher(pub message.Publisher, topic string, logger watermill.LoggerAdapter) *NATSSink {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}
	return &NATSSink{publisher: pub, topic: topic, logger: logger}
}

// SetCircuitBreaker configures circuit breaker protection for publishes.
func (s *NATSSink) SetCircuitBreaker(cb *gobreaker.CircuitBreaker[interface{}]) {
	s.circuitBreaker = cb
}

// Publish sends a batch to the sink topic. Publishing stops at the first
// failed record and the whole batch is reported failed; JetStream's
// duplicate window absorbs any records that did land if a caller retries.
func (s *NATSSink) Publish(ctx context.Context, batch [][]byte) error {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return fmt.Errorf("nats sink is closed")
	}
	s.mu.RUnlock()

	for i, payload := range batch {
		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.SetContext(ctx)
		// Nats-Msg-Id drives JetStream deduplication
		msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)

		if err := s.publish(msg); err != nil {
			return fmt.Errorf("publish record %d/%d: %w", i+1, len(batch), err)
		}
	}
	return nil
}

func (s *NATSSink) publish(msg *message.Message) error {
	if s.circuitBreaker != nil {
		_, err := s.circuitBreaker.Execute(func() (interface{}, error) {
			return nil, s.publisher.Publish(s.topic, msg)
		})
		return err
	}
	return s.publisher.Publish(s.topic, msg)
}

// Close gracefully shuts down the underlying publisher.
func (s *NATSSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	return s.publisher.Close()
}
