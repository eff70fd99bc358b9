// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool provides strongly-typed object pooling on top of [sync.Pool].
//
// Prompt rendering, context formatting and gateway request encoding build many short-lived
// strings and buffers per request. The predefined [Builder] and [Buffer] pools hand out
// reset objects so callers never observe data from a previous user:
//
//	sb := pool.Builder.Get()
//	defer pool.Builder.Put(sb)
//
//	sb.WriteString("Search Query: ")
//	sb.WriteString(query)
//	return sb.String()
//
// Objects must not be used after Put.
package pool
