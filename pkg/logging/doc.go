// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides context-based structured logging on top of Go's standard slog package.
//
// A request-scoped [*slog.Logger] is stored in a [context.Context] at the edge of the
// service (the HTTP middleware or a CLI command) and retrieved by every component that
// handles the request:
//
//	logger := logging.New(os.Stderr, "info", "json")
//	ctx := logging.NewContext(ctx, logger.With(slog.String("request_id", id)))
//
//	logging.FromContext(ctx).InfoContext(ctx, "generation completed",
//		slog.String("model", modelID),
//		slog.Int64("latency_ms", latency.Milliseconds()),
//	)
//
// # Default Behavior
//
// When no logger is found in the context, FromContext returns [slog.Default], so callers
// never need a nil check.
//
// # Levels
//
// Degraded answers (a model output rejected by validation) are logged at info level;
// they are not failures. Typed failures are logged once, by the layer that surfaces them.
package logging
