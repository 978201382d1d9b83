// FraudForge - Synthetic Card Transaction Stream Generator
// Copyright 2026 FraudForge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fraudforge/fraudforge

// Package config loads and validates application configuration from
// defaults, an optional YAML file, and environment variables, in that
// order of precedence (lowest to highest).
package config
