// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/inference"
	"github.com/go-a2a/ragroute/internal/metrics"
	"github.com/go-a2a/ragroute/pkg/logging"
	"github.com/go-a2a/ragroute/prompt"
	"github.com/go-a2a/ragroute/response"
)

// Request is one query to answer.
type Request struct {
	Query         string           `json:"query"`
	DefaultPrompt string           `json:"default_prompt"`
	Passages      []config.Passage `json:"context,omitempty"`
}

// Result is the outcome of a generation.
type Result struct {
	Answer   string             `json:"answer"`
	Metadata *response.Metadata `json:"metadata,omitempty"`
	Degraded bool               `json:"degraded,omitempty"`
}

// Generator answers queries for one experiment.
type Generator struct {
	client   *inference.Client
	builder  *prompt.Builder
	recorder *metrics.Recorder
	endpoint string

	guide  *config.FewShotGuide
	shots  int
	params inference.SamplingParams
}

// Option configures a [Generator].
type Option func(*Generator)

// WithBuilder sets the prompt builder.
func WithBuilder(b *prompt.Builder) Option {
	return func(g *Generator) {
		g.builder = b
	}
}

// WithRecorder sets the metrics recorder. Without one no metrics are recorded.
func WithRecorder(r *metrics.Recorder) Option {
	return func(g *Generator) {
		g.recorder = r
	}
}

// WithSamplingParams overrides the sampling parameters derived from the experiment.
func WithSamplingParams(p inference.SamplingParams) Option {
	return func(g *Generator) {
		g.params = p
	}
}

// WithEndpoint sets the endpoint label used in metrics.
func WithEndpoint(name string) Option {
	return func(g *Generator) {
		g.endpoint = name
	}
}

// New returns a [Generator] sending prompts for exp through client.
func New(client *inference.Client, exp *config.Experiment, opts ...Option) *Generator {
	g := &Generator{
		client: client,
		guide:  exp.NShotPromptGuide,
		shots:  exp.NShotPrompts,
		params: inference.DefaultSamplingParams(exp.TempRetrievalLLM),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.builder == nil {
		g.builder = prompt.NewBuilder()
	}
	return g
}

// Generate answers req.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	logger := logging.FromContext(ctx)

	p, err := g.builder.Build(ctx, prompt.Input{
		DefaultPrompt: req.DefaultPrompt,
		Guide:         g.guide,
		Query:         req.Query,
		Passages:      req.Passages,
		Shots:         g.shots,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	resp, err := g.client.Invoke(ctx, p, g.params)
	if err != nil {
		g.outcome(metrics.OutcomeError)
		return nil, err
	}
	if g.recorder != nil {
		g.recorder.ObserveInference(g.endpoint, g.client.Format().Name(), resp.Latency)
	}

	generated, err := g.client.Format().Decode(resp.Body)
	if err != nil {
		g.outcome(metrics.OutcomeError)
		return nil, err
	}

	answer := response.Clean(response.ExtractAnswer(generated))
	if !response.Validate(answer) {
		logger.InfoContext(ctx, "generated answer rejected, returning fallback message",
			slog.Int("generated_len", len(generated)),
		)
		g.outcome(metrics.OutcomeDegraded)
		return &Result{Answer: response.FallbackMessage, Degraded: true}, nil
	}

	md := response.EstimateUsage(resp.PromptUnits, generated)
	md.LatencyMs = resp.Latency.Milliseconds()
	if g.recorder != nil {
		g.recorder.AddTokens(g.endpoint, md.InputTokens, md.OutputTokens)
	}
	g.outcome(metrics.OutcomeOK)

	logger.DebugContext(ctx, "generated answer",
		slog.Int("input_tokens", md.InputTokens),
		slog.Int("output_tokens", md.OutputTokens),
		slog.Int64("latency_ms", md.LatencyMs),
	)

	return &Result{Answer: answer, Metadata: &md}, nil
}

func (g *Generator) outcome(outcome string) {
	if g.recorder != nil {
		g.recorder.Generation(g.endpoint, outcome)
	}
}
