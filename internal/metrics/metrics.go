// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

// Package metrics provides Prometheus instrumentation for the generator:
// synthesis throughput, anomaly injection, batch delivery, and sink health.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Generation Metrics
	TransactionsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fraudforge_transactions_generated_total",
			Help: "Total number of synthesized transactions",
		},
	)

	AnomaliesInjected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fraudforge_anomalies_injected_total",
			Help: "Total number of impossible-travel anomalies injected",
		},
	)

	AnomalyFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fraudforge_anomaly_fallbacks_total",
			Help: "Anomaly injections that degraded to the fallback city because no location exceeded the distance threshold",
		},
	)

	EntitiesTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fraudforge_entities_tracked",
			Help: "Number of entities with transaction history in the state store",
		},
	)

	// Delivery Metrics
	BatchesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fraudforge_batches_sent_total",
			Help: "Total number of batches accepted by the sink",
		},
	)

	BatchesFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fraudforge_batches_failed_total",
			Help: "Total number of batches the sink rejected (records dropped, not replayed)",
		},
	)

	BatchPublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fraudforge_batch_publish_duration_seconds",
			Help:    "Time spent handing a batch to the sink",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RecordTransaction updates generation counters for one synthesized record.
func RecordTransaction(anomalous bool) {
	TransactionsGenerated.Inc()
	if anomalous {
		AnomaliesInjected.Inc()
	}
}

// RecordAnomalyFallback counts a degraded anomaly injection. This is the
// observable signal for the data-quality corner case where the reference
// table has no city beyond the distance threshold.
func RecordAnomalyFallback() {
	AnomalyFallbacks.Inc()
}

// RecordBatch updates delivery counters for one sink call.
func RecordBatch(err error, elapsed time.Duration) {
	BatchPublishDuration.Observe(elapsed.Seconds())
	if err != nil {
		BatchesFailed.Inc()
		return
	}
	BatchesSent.Inc()
}

// SetEntitiesTracked records the current state store population.
func SetEntitiesTracked(n int) {
	EntitiesTracked.Set(float64(n))
}
