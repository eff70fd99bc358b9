// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config defines the shared process configuration and the per-request experiment
// configuration consumed by the routing core.
//
// [Config] is loaded once at start-up from flags, RAGROUTE_* environment variables and an
// optional config file through viper. [Experiment] is decoded per request from JSON and is
// treated as read-only by every component that receives it.
package config
