// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package gateway is a client for the OpenAI-compatible API exposed by the request gateway,
// built on the OpenAI Go SDK. Only chat completions and embeddings are used.
package gateway
