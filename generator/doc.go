// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package generator answers a query with retrieved context by running the prompt, inference and
// response steps in order.
//
// A rejected answer is a degraded success: [Generator.Generate] returns a [Result] carrying
// [response.FallbackMessage] with Degraded set and no metadata, and a nil error.
package generator
