// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package embedding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-a2a/ragroute/capability"
	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/pkg/logging"
)

// Embedder turns text into a vector.
type Embedder interface {
	// Model returns the embedding model id.
	Model() string

	// Embed returns the embedding of text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Service is the service id of every embedder key.
const Service = "embedding"

// Key returns the registry key of the embedder selected for exp.
func Key(exp *config.Experiment) capability.Key {
	return capability.Key{
		Domain:  capability.DomainEmbedder,
		Service: Service,
		Backend: capability.BackendFor(exp.GatewayEnabled),
	}
}

var (
	defaultRegistry     *capability.Registry[Embedder]
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide embedder registry with the builtin backends registered.
func DefaultRegistry() *capability.Registry[Embedder] {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = capability.NewRegistry[Embedder](capability.DomainEmbedder)
		RegisterBuiltins(defaultRegistry)
	})
	return defaultRegistry
}

// RegisterBuiltins registers the bedrock and custom_gateway embedders in r.
func RegisterBuiltins(r *capability.Registry[Embedder]) {
	r.Register(capability.Key{Domain: capability.DomainEmbedder, Service: Service, Backend: capability.BackendBedrock}, newBedrockFromExperiment)
	r.Register(capability.Key{Domain: capability.DomainEmbedder, Service: Service, Backend: capability.BackendGateway}, newGatewayFromExperiment)
}

// Resolver selects and constructs the embedder of an experiment.
type Resolver struct {
	registry *capability.Registry[Embedder]
	cfg      *config.Config
}

// NewResolver returns a [Resolver] over r. A nil r uses [DefaultRegistry].
func NewResolver(r *capability.Registry[Embedder], cfg *config.Config) *Resolver {
	if r == nil {
		r = DefaultRegistry()
	}
	return &Resolver{registry: r, cfg: cfg}
}

// Resolve constructs the embedder registered for exp.
//
// It fails with [*capability.UnregisteredBackendError] when no backend is registered for the key.
func (r *Resolver) Resolve(ctx context.Context, exp *config.Experiment) (Embedder, error) {
	key := Key(exp)
	logging.FromContext(ctx).DebugContext(ctx, "resolving embedder", slog.String("key", key.String()))

	return r.registry.New(ctx, key, r.cfg, exp)
}

func newBedrockFromExperiment(ctx context.Context, cfg *config.Config, exp *config.Experiment) (Embedder, error) {
	if exp.EmbeddingModel == "" {
		return nil, errors.New("embedding_model is required")
	}
	return NewBedrockFromConfig(ctx, cfg, exp.Region(cfg.AWSRegion), exp.EmbeddingModel, WithDimensions(exp.VectorDimension))
}

func newGatewayFromExperiment(_ context.Context, _ *config.Config, exp *config.Experiment) (Embedder, error) {
	if exp.EmbeddingModel == "" {
		return nil, errors.New("embedding_model is required")
	}
	e, err := NewGatewayFromURL(exp.GatewayURL, exp.GatewayAPIKey, exp.EmbeddingModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway embedder: %w", err)
	}
	return e, nil
}
