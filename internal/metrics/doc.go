// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package metrics defines the prometheus collectors of ragroute.
package metrics
