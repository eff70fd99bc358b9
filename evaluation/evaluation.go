// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package evaluation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-a2a/ragroute/capability"
	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/embedding"
	"github.com/go-a2a/ragroute/pkg/logging"
	"github.com/go-a2a/ragroute/prompt"
)

// ServiceRagas is the service id of the ragas evaluation framework.
const ServiceRagas = "ragas"

// Judge is the model that grades answers.
type Judge interface {
	// Model returns the judge model id.
	Model() string

	// Complete returns the judge reply to the conversation.
	Complete(ctx context.Context, system string, turns []prompt.Turn) (string, error)
}

// Evaluator is a configured evaluation backend.
type Evaluator interface {
	// Service returns the evaluation service id.
	Service() string

	// Backend returns the backend id the models are reached through.
	Backend() string

	// Judge returns the judge model.
	Judge() Judge

	// Embedder returns the embedder used by embedding-based metrics.
	Embedder() embedding.Embedder
}

type evaluator struct {
	service  string
	backend  string
	judge    Judge
	embedder embedding.Embedder
}

var _ Evaluator = (*evaluator)(nil)

// New returns an [Evaluator] made of judge and embedder.
func New(service, backend string, judge Judge, embedder embedding.Embedder) Evaluator {
	return &evaluator{
		service:  service,
		backend:  backend,
		judge:    judge,
		embedder: embedder,
	}
}

func (e *evaluator) Service() string              { return e.service }
func (e *evaluator) Backend() string              { return e.backend }
func (e *evaluator) Judge() Judge                 { return e.judge }
func (e *evaluator) Embedder() embedding.Embedder { return e.embedder }

// Key returns the registry key of the evaluator selected for exp.
func Key(exp *config.Experiment) capability.Key {
	return capability.Key{
		Domain:  capability.DomainEvaluator,
		Service: exp.EvalService,
		Backend: capability.BackendFor(exp.GatewayEnabled),
	}
}

var (
	defaultRegistry     *capability.Registry[Evaluator]
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide evaluator registry with the builtin backends registered.
func DefaultRegistry() *capability.Registry[Evaluator] {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = capability.NewRegistry[Evaluator](capability.DomainEvaluator)
		RegisterBuiltins(defaultRegistry)
	})
	return defaultRegistry
}

// RegisterBuiltins registers the ragas evaluators for the bedrock and custom_gateway backends in r.
func RegisterBuiltins(r *capability.Registry[Evaluator]) {
	r.Register(capability.Key{Domain: capability.DomainEvaluator, Service: ServiceRagas, Backend: capability.BackendBedrock}, newRagasBedrock)
	r.Register(capability.Key{Domain: capability.DomainEvaluator, Service: ServiceRagas, Backend: capability.BackendGateway}, newRagasGateway)
}

// Resolver selects and constructs the evaluator of an experiment.
type Resolver struct {
	registry *capability.Registry[Evaluator]
	cfg      *config.Config
}

// NewResolver returns a [Resolver] over r. A nil r uses [DefaultRegistry].
func NewResolver(r *capability.Registry[Evaluator], cfg *config.Config) *Resolver {
	if r == nil {
		r = DefaultRegistry()
	}
	return &Resolver{registry: r, cfg: cfg}
}

// Resolve constructs the evaluator registered for exp.
//
// It fails with [*capability.UnregisteredBackendError] when no backend is registered for the key.
// Construction failures are returned wrapped.
func (r *Resolver) Resolve(ctx context.Context, exp *config.Experiment) (Evaluator, error) {
	key := Key(exp)
	logging.FromContext(ctx).InfoContext(ctx, "resolving evaluator",
		slog.String("service", key.Service),
		slog.String("backend", key.Backend),
	)

	return r.registry.New(ctx, key, r.cfg, exp)
}
