// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order. The
// first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/fraudforge/config.yaml",
	"/etc/fraudforge/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults. They mirror the stock
// demo profile: 51 cards, a 10-record batch every 2 seconds, one anomaly
// attempt per 50 records.
func defaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			EntityMin:           1000,
			EntityMax:           1050,
			BatchSize:           10,
			Interval:            2 * time.Second,
			AnomalyCadence:      50,
			Currency:            "USD",
			Seed:                0, // 0 = seed from the clock
			DistanceThresholdKm: 5000,
			FallbackLocation:    "Tokyo",
			MinAnomalyGap:       10 * time.Minute,
			MaxAnomalyGap:       30 * time.Minute,
		},
		Sink: SinkConfig{
			Type: "console",
		},
		NATS: NATSConfig{
			URL:                 "nats://127.0.0.1:4222",
			EmbeddedServer:      false,
			Host:                "127.0.0.1",
			Port:                4222,
			StoreDir:            "/data/nats/jetstream",
			MaxMemory:           1 << 30, // 1GB
			MaxStore:            4 << 30, // 4GB
			StreamRetentionDays: 7,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration with layered sources, precedence
// ENV > file > defaults, then validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables are skipped so stray environment noise cannot leak
// into the configuration.
//
// Examples:
//   - BATCH_SIZE -> generator.batch_size
//   - SINK_TYPE -> sink.type
//   - NATS_URL -> nats.url
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Generator mappings
		"entity_min":            "generator.entity_min",
		"entity_max":            "generator.entity_max",
		"batch_size":            "generator.batch_size",
		"batch_interval":        "generator.interval",
		"anomaly_cadence":       "generator.anomaly_cadence",
		"currency":              "generator.currency",
		"rng_seed":              "generator.seed",
		"distance_threshold_km": "generator.distance_threshold_km",
		"fallback_location":     "generator.fallback_location",
		"min_anomaly_gap":       "generator.min_anomaly_gap",
		"max_anomaly_gap":       "generator.max_anomaly_gap",

		// Sink mappings
		"sink_type": "sink.type",

		// NATS mappings
		"nats_url":            "nats.url",
		"nats_embedded":       "nats.embedded_server",
		"nats_host":           "nats.host",
		"nats_port":           "nats.port",
		"nats_store_dir":      "nats.store_dir",
		"nats_max_memory":     "nats.max_memory",
		"nats_max_store":      "nats.max_store",
		"nats_retention_days": "nats.stream_retention_days",

		// Metrics mappings
		"metrics_enabled": "metrics.enabled",
		"metrics_addr":    "metrics.addr",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
