// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/pkg/logging"
)

// Role represents the role of a participant in a conversation.
type Role string

const (
	// RoleUser is the role of the user.
	RoleUser Role = "user"

	// RoleAssistant is the role of the assistant.
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged conversation message.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Input holds everything the [Builder] needs to assemble a [Prompt].
type Input struct {
	// DefaultPrompt is the system prompt used when the guide does not define one.
	DefaultPrompt string

	// Guide is the optional few-shot guide of the experiment.
	Guide *config.FewShotGuide

	// Query is the user query.
	Query string

	// Passages are the retrieved context passages, in retrieval order.
	Passages []config.Passage

	// Shots is the number of examples to inject; zero means no examples.
	Shots int
}

// Prompt is the assembled prompt.
type Prompt struct {
	// System is the system prompt.
	System string

	// Turns is the ordered conversation the model conditions on.
	Turns []Turn

	// Query, ContextText and BasePrompt are the pieces the turns were built from.
	Query       string
	ContextText string
	BasePrompt  string

	// Shots is the requested number of examples.
	Shots int

	// Examples are the examples selected for this prompt, in selection order.
	Examples []config.Example
}

// Builder assembles prompts. It is safe for concurrent use.
type Builder struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// Option configures a [Builder].
type Option func(*Builder)

// WithRand sets the random source used for example sampling.
func WithRand(r *rand.Rand) Option {
	return func(b *Builder) {
		b.rand = r
	}
}

// NewBuilder returns a new [Builder].
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.rand == nil {
		b.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return b
}

// Build assembles the system prompt and the conversation turns for in.
//
// It fails with [*InvalidArgumentError] when in.Shots is negative, or when in.Shots is
// positive and the guide or its examples are null.
func (b *Builder) Build(ctx context.Context, in Input) (*Prompt, error) {
	if in.Shots < 0 {
		return nil, &InvalidArgumentError{Field: "shots", Reason: "must be non-negative"}
	}

	guide := in.Guide
	p := &Prompt{
		System: in.DefaultPrompt,
		Query:  in.Query,
		Shots:  in.Shots,
	}
	if guide != nil && guide.SystemPrompt != nil {
		p.System = *guide.SystemPrompt
	}
	if len(in.Passages) > 0 {
		p.ContextText = FormatContext(in.Query, in.Passages)
	}
	if guide != nil && guide.UserPrompt != nil {
		p.BasePrompt = *guide.UserPrompt
	}

	logger := logging.FromContext(ctx)

	if in.Shots == 0 {
		logger.DebugContext(ctx, "building zero-shot prompt")

		p.Turns = make([]Turn, 0, 3)
		p.Turns = append(p.Turns, Turn{Role: RoleUser, Content: p.BasePrompt})
		p.appendTail()
		return p, nil
	}

	if guide == nil {
		return nil, &InvalidArgumentError{Field: "guide", Reason: "few-shot guide is required when shots > 0"}
	}
	if guide.Examples == nil {
		return nil, &InvalidArgumentError{Field: "guide.examples", Reason: "examples are required when shots > 0"}
	}

	p.Examples = b.sample(guide.Examples, in.Shots)
	logger.DebugContext(ctx, "building few-shot prompt",
		slog.Int("shots", in.Shots),
		slog.Int("selected", len(p.Examples)),
	)

	p.Turns = make([]Turn, 0, 3+2*len(p.Examples))
	p.Turns = append(p.Turns, Turn{Role: RoleUser, Content: p.BasePrompt})
	for _, ex := range p.Examples {
		switch ex := ex.(type) {
		case config.FreeFormExample:
			p.Turns = append(p.Turns, Turn{Role: RoleUser, Content: ex.Text})
		case config.QAExample:
			p.Turns = append(p.Turns,
				Turn{Role: RoleUser, Content: ex.Question},
				Turn{Role: RoleAssistant, Content: ex.Answer},
			)
		default:
			logger.DebugContext(ctx, "skipping few-shot example of unknown shape", slog.Any("example", ex))
		}
	}
	p.appendTail()
	return p, nil
}

// appendTail appends the context turn, when there is context, and the query turn.
func (p *Prompt) appendTail() {
	if p.ContextText != "" {
		p.Turns = append(p.Turns, Turn{Role: RoleUser, Content: p.ContextText})
	}
	p.Turns = append(p.Turns, Turn{Role: RoleUser, Content: p.Query})
}

// sample returns k examples drawn uniformly without replacement, in draw order, or all
// examples when there are not more than k.
func (b *Builder) sample(examples config.Examples, k int) []config.Example {
	if len(examples) <= k {
		return append([]config.Example(nil), examples...)
	}

	b.mu.Lock()
	perm := b.rand.Perm(len(examples))
	b.mu.Unlock()

	selected := make([]config.Example, 0, k)
	for _, i := range perm[:k] {
		selected = append(selected, examples[i])
	}
	return selected
}
