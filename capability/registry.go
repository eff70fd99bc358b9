// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package capability

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/go-a2a/ragroute/config"
)

// Domain is the abstract service type being resolved.
type Domain string

const (
	// DomainEmbedder resolves text embedding backends.
	DomainEmbedder Domain = "embedder"

	// DomainEvaluator resolves RAG evaluation backends.
	DomainEvaluator Domain = "evaluator"
)

// Backend identifiers shared by every domain.
const (
	// BackendBedrock routes model calls directly to Amazon Bedrock.
	BackendBedrock = "bedrock"

	// BackendGateway routes model calls through the OpenAI-compatible request gateway.
	BackendGateway = "custom_gateway"
)

// BackendFor returns the backend identifier selected by the gateway switch of an experiment.
func BackendFor(gatewayEnabled bool) string {
	if gatewayEnabled {
		return BackendGateway
	}
	return BackendBedrock
}

// Key identifies one registered backend. Two keys are equal iff all fields match exactly.
type Key struct {
	Domain  Domain
	Service string
	Backend string
}

// String returns the "domain/service:backend" form of k.
func (k Key) String() string {
	return fmt.Sprintf("%s/%s:%s", k.Domain, k.Service, k.Backend)
}

// Constructor creates a backend of type T from the shared process configuration and the
// configuration of a single experiment.
type Constructor[T any] func(ctx context.Context, cfg *config.Config, exp *config.Experiment) (T, error)

// Registry maps [Key] values to constructors of T.
type Registry[T any] struct {
	domain Domain

	mu      sync.RWMutex
	entries map[Key]Constructor[T]
}

// NewRegistry returns an empty registry for domain.
func NewRegistry[T any](domain Domain) *Registry[T] {
	return &Registry[T]{
		domain:  domain,
		entries: make(map[Key]Constructor[T]),
	}
}

// Domain returns the capability domain served by r.
func (r *Registry[T]) Domain() Domain {
	return r.domain
}

// Register stores ctor under key, replacing any constructor previously registered for the same key.
func (r *Registry[T]) Register(key Key, ctor Constructor[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[key] = ctor
}

// Resolve returns the constructor registered for key.
//
// It fails with [*UnregisteredBackendError] when nothing is registered for key.
func (r *Registry[T]) Resolve(key Key) (Constructor[T], error) {
	r.mu.RLock()
	ctor, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok || ctor == nil {
		return nil, &UnregisteredBackendError{Key: key}
	}
	return ctor, nil
}

// Keys returns the registered keys in a stable order.
func (r *Registry[T]) Keys() []Key {
	r.mu.RLock()
	keys := slices.Collect(maps.Keys(r.entries))
	r.mu.RUnlock()

	slices.SortFunc(keys, func(a, b Key) int {
		return cmp.Or(
			cmp.Compare(a.Domain, b.Domain),
			cmp.Compare(a.Service, b.Service),
			cmp.Compare(a.Backend, b.Backend),
		)
	})
	return keys
}

// New resolves key and constructs the backend.
//
// Resolution failures are returned unchanged; constructor failures are wrapped with the key.
func (r *Registry[T]) New(ctx context.Context, key Key, cfg *config.Config, exp *config.Experiment) (T, error) {
	ctor, err := r.Resolve(key)
	if err != nil {
		var zero T
		return zero, err
	}

	backend, err := ctor(ctx, cfg, exp)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("construct %s: %w", key, err)
	}
	return backend, nil
}
