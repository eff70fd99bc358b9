// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package ragroute routes retrieval-augmented generation queries to interchangeable model
// backends and resolves the evaluation and embedding backends of an experiment.
//
// The building blocks live in subpackages: [github.com/go-a2a/ragroute/capability] for backend
// registries, [github.com/go-a2a/ragroute/prompt], [github.com/go-a2a/ragroute/inference] and
// [github.com/go-a2a/ragroute/response] for the answering pipeline tied together by
// [github.com/go-a2a/ragroute/generator], and [github.com/go-a2a/ragroute/knowledgebase] for the
// Bedrock knowledge base directory.
package ragroute

// Version is the version of ragroute.
var Version = "v0.0.0"
