// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

// FraudForge emits a continuous stream of synthetic card transactions
// with impossible-travel anomalies injected at a fixed cadence, for
// exercising fraud-detection pipelines without touching real cardholder
// data.
//
// Each simulated card normally transacts from its home city. Once per
// cadence window a card with history is teleported to a city more than
// 5000 km away with a timestamp 10 to 30 minutes after its previous
// transaction, a pattern no physical traveler can produce.
//
// # Usage
//
// Stream NDJSON to stdout (default):
//
//	fraudforge
//
// Publish to an external NATS JetStream broker:
//
//	SINK_TYPE=nats NATS_URL=nats://broker:4222 fraudforge
//
// Fully self-contained with an embedded broker:
//
//	SINK_TYPE=nats NATS_EMBEDDED=true NATS_STORE_DIR=/data/nats fraudforge
//
// Deterministic output for golden-file pipelines:
//
//	RNG_SEED=42 fraudforge
//
// Configuration is layered: defaults, then an optional config.yaml,
// then environment variables. See internal/config for the full list.
package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	natsgo "github.com/nats-io/nats.go"

	"github.com/joho/godotenv"

	"github.com/fraudforge/fraudforge/internal/catalog"
	"github.com/fraudforge/fraudforge/internal/config"
	"github.com/fraudforge/fraudforge/internal/generator"
	"github.com/fraudforge/fraudforge/internal/geo"
	"github.com/fraudforge/fraudforge/internal/logging"
	"github.com/fraudforge/fraudforge/internal/metrics"
	"github.com/fraudforge/fraudforge/internal/sink"
	"github.com/fraudforge/fraudforge/internal/supervisor"
)

func main() {
	// Optional .env for local development; absence is not an error
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("sink", cfg.Sink.Type).
		Int("entity_min", cfg.Generator.EntityMin).
		Int("entity_max", cfg.Generator.EntityMax).
		Str("currency", cfg.Generator.Currency).
		Msg("Starting FraudForge")

	seed := cfg.Generator.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		logging.Info().Int64("seed", seed).Msg("Deterministic run; output is reproducible for this seed")
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic data, not cryptography

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Delivery surface
	var (
		snk      sink.Sink
		embedded *sink.EmbeddedServer
	)
	topic := "transactions." + strings.ToLower(cfg.Generator.Currency)

	switch cfg.Sink.Type {
	case "nats":
		url := cfg.NATS.URL
		if cfg.NATS.EmbeddedServer {
			serverCfg := sink.ServerConfig{
				Host:              cfg.NATS.Host,
				Port:              cfg.NATS.Port,
				StoreDir:          cfg.NATS.StoreDir,
				JetStreamMaxMem:   cfg.NATS.MaxMemory,
				JetStreamMaxStore: cfg.NATS.MaxStore,
			}
			embedded, err = sink.NewEmbeddedServer(&serverCfg)
			if err != nil {
				logging.Fatal().Err(err).Msg("Failed to start embedded NATS server")
			}
			url = embedded.ClientURL()
			logging.Info().Str("url", url).Msg("Embedded NATS server ready")
		}

		if err := provisionStream(ctx, url, cfg.NATS.StreamRetentionDays); err != nil {
			logging.Fatal().Err(err).Msg("Failed to provision JetStream stream")
		}

		natsSink, err := sink.NewNATSSink(sink.DefaultPublisherConfig(url), topic, logging.NewWatermillAdapter())
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create NATS sink")
		}
		natsSink.SetCircuitBreaker(sink.NewCircuitBreaker(sink.DefaultCircuitBreakerConfig("nats-publisher")))
		snk = natsSink
		logging.Info().Str("url", url).Str("topic", topic).Msg("NATS sink ready")

	default:
		snk = sink.NewConsoleSink(os.Stdout)
		logging.Info().Msg("Console sink ready; records stream to stdout as NDJSON")
	}

	// Generation pipeline
	synthCfg := generator.SynthesizerConfig{
		Currency:            cfg.Generator.Currency,
		DistanceThresholdKm: cfg.Generator.DistanceThresholdKm,
		FallbackLocation:    cfg.Generator.FallbackLocation,
		MinAnomalyGap:       cfg.Generator.MinAnomalyGap,
		MaxAnomalyGap:       cfg.Generator.MaxAnomalyGap,
	}
	synth, err := generator.NewSynthesizer(geo.DefaultTable(), catalog.Default(), synthCfg, rng)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create synthesizer")
	}

	driver := generator.NewDriver(generator.DriverConfig{
		EntityMin: cfg.Generator.EntityMin,
		EntityMax: cfg.Generator.EntityMax,
		BatchSize: cfg.Generator.BatchSize,
		Interval:  cfg.Generator.Interval,
	}, synth, generator.NewScheduler(cfg.Generator.AnomalyCadence), generator.NewStateStore(), snk, rng)

	// Supervision
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddGenerationService(driver)
	if cfg.Metrics.Enabled {
		tree.AddDeliveryService(metrics.NewServer(cfg.Metrics.Addr))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err := snk.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing sink")
	}
	if embedded != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := embedded.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("Error shutting down embedded NATS server")
		}
		shutdownCancel()
	}

	logging.Info().Msg("FraudForge stopped gracefully")
}

// provisionStream creates or updates the TRANSACTIONS stream so the
// publisher can run with auto-provisioning disabled. The connection is
// only needed for provisioning and is closed before returning.
func provisionStream(ctx context.Context, url string, retentionDays int) error {
	nc, err := natsgo.Connect(url,
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(5),
		natsgo.ReconnectWait(time.Second),
	)
	if err != nil {
		return err
	}
	defer nc.Close()

	streamCfg := sink.DefaultStreamConfig()
	if retentionDays > 0 {
		streamCfg.MaxAge = time.Duration(retentionDays) * 24 * time.Hour
	}

	mgr, err := sink.NewStreamManager(nc, &streamCfg)
	if err != nil {
		return err
	}

	provisionCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	_, err = mgr.EnsureStream(provisionCtx)
	return err
}
