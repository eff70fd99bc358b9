// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the Bedrock configuration listings over HTTP.
//
// Routes:
//
//	GET /health                   liveness
//	GET /bedrock/guardrails       guardrails of the account
//	GET /bedrock/knowledge_bases  usable vector knowledge bases
//	GET /metrics                  prometheus metrics, when enabled
//
// Every failure of a listing is reported as 500 with a {"detail": "..."} body.
package server
