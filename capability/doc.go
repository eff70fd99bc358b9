// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package capability provides the process-wide registry that maps a capability key to the
// constructor of a concrete backend.
//
// A capability domain ([DomainEmbedder], [DomainEvaluator]) owns one [Registry], typed by the
// interface every backend of that domain implements, so a constructor returning the wrong type
// is rejected by the compiler rather than at call time:
//
//	reg := capability.NewRegistry[evaluation.Evaluator](capability.DomainEvaluator)
//	reg.Register(capability.Key{
//		Domain:  capability.DomainEvaluator,
//		Service: "ragas",
//		Backend: capability.BackendBedrock,
//	}, newRagasBedrock)
//
// # Lifecycle
//
// Registries are created once, populated by an explicit registration step at start-up and then
// only read. Registration is still guarded by a lock so concurrent start-up code is safe.
// Registering the same key twice silently replaces the previous constructor.
package capability
