// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package embedding provides the text embedding backends used to score RAG outputs.
//
// Backends are registered in a [capability.Registry] under the key
// {embedder, "embedding", backend}, where backend is "bedrock" or "custom_gateway" depending on
// the gateway switch of the experiment. [RegisterBuiltins] registers both; a [Resolver] picks and
// constructs the backend for an experiment.
package embedding
