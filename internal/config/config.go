// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration.
//
// Loading order (Koanf v2):
//  1. Defaults: built-in values for every setting
//  2. Config file: optional YAML file (config.yaml)
//  3. Environment variables: override any setting
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Generator GeneratorConfig `koanf:"generator"`
	Sink      SinkConfig      `koanf:"sink"`
	NATS      NATSConfig      `koanf:"nats"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// GeneratorConfig holds the synthesis and streaming parameters.
//
// Environment Variables:
//   - ENTITY_MIN / ENTITY_MAX: inclusive card identifier range
//   - BATCH_SIZE: records per batch
//   - BATCH_INTERVAL: pause between batches (e.g. "2s")
//   - ANOMALY_CADENCE: one anomaly attempt per N records
//   - CURRENCY: ISO 4217 code stamped on every record
//   - RNG_SEED: deterministic run when non-zero
type GeneratorConfig struct {
	EntityMin           int           `koanf:"entity_min" validate:"gt=0"`
	EntityMax           int           `koanf:"entity_max" validate:"gtefield=EntityMin"`
	BatchSize           int           `koanf:"batch_size" validate:"gt=0,lte=10000"`
	Interval            time.Duration `koanf:"interval" validate:"gt=0"`
	AnomalyCadence      int           `koanf:"anomaly_cadence" validate:"gt=0"`
	Currency            string        `koanf:"currency" validate:"len=3,alpha"`
	Seed                int64         `koanf:"seed"`
	DistanceThresholdKm float64       `koanf:"distance_threshold_km" validate:"gt=0"`
	FallbackLocation    string        `koanf:"fallback_location" validate:"required"`
	MinAnomalyGap       time.Duration `koanf:"min_anomaly_gap" validate:"gt=0"`
	MaxAnomalyGap       time.Duration `koanf:"max_anomaly_gap" validate:"gtefield=MinAnomalyGap"`
}

// SinkConfig selects the delivery surface.
type SinkConfig struct {
	// Type is "nats" for JetStream delivery or "console" for NDJSON on
	// stdout.
	Type string `koanf:"type" validate:"oneof=nats console"`
}

// NATSConfig holds broker connection and embedded-server settings.
// Ignored when the sink type is "console".
type NATSConfig struct {
	URL            string `koanf:"url"`
	EmbeddedServer bool   `koanf:"embedded_server"`
	Host           string `koanf:"host"`
	Port           int    `koanf:"port" validate:"gte=0,lte=65535"`
	StoreDir       string `koanf:"store_dir"`
	MaxMemory      int64  `koanf:"max_memory"`
	MaxStore       int64  `koanf:"max_store"`

	// Stream retention for the TRANSACTIONS stream
	StreamRetentionDays int `koanf:"stream_retention_days" validate:"gt=0"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// validate runs struct-tag validation plus the cross-field rules the tags
// cannot express.
func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("invalid configuration: field %s failed rule %q", f.Namespace(), f.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Sink.Type == "nats" && !c.NATS.EmbeddedServer && c.NATS.URL == "" {
		return fmt.Errorf("NATS_URL is required when the sink is nats and no embedded server is configured")
	}
	if c.NATS.EmbeddedServer && c.NATS.StoreDir == "" {
		return fmt.Errorf("NATS_STORE_DIR is required when NATS_EMBEDDED=true")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("METRICS_ADDR is required when METRICS_ENABLED=true")
	}
	return nil
}
