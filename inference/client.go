// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-a2a/ragroute/pkg/logging"
	"github.com/go-a2a/ragroute/prompt"
)

// Predictor performs one remote prediction.
type Predictor interface {
	// Endpoint returns the name of the remote endpoint, used in errors and logs.
	Endpoint() string

	// Predict sends payload and returns the raw response body.
	Predict(ctx context.Context, payload []byte) ([]byte, error)
}

// SamplingParams controls generation on the remote model.
type SamplingParams struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
	TopP         float64 `json:"top_p"`
	DoSample     bool    `json:"do_sample"`
}

// Default sampling values.
const (
	DefaultMaxNewTokens = 256
	DefaultTopP         = 0.9
)

// DefaultSamplingParams returns the default sampling parameters at the given temperature.
func DefaultSamplingParams(temperature float64) SamplingParams {
	return SamplingParams{
		MaxNewTokens: DefaultMaxNewTokens,
		Temperature:  temperature,
		TopP:         DefaultTopP,
		DoSample:     true,
	}
}

// Response is the raw result of an invocation.
type Response struct {
	// Body is the raw response body.
	Body []byte

	// PromptUnits is the prompt size reported by the [Format] for token estimation.
	PromptUnits int

	// Latency is the wall-clock duration of the remote call alone.
	Latency time.Duration
}

// Client invokes a remote model.
type Client struct {
	predictor Predictor
	format    Format
}

// NewClient returns a [Client] sending payloads built by format through predictor.
//
// A nil predictor, or one reporting it is not ready, is accepted;
// [Client.Invoke] then fails with [*UninitializedBackendError].
func NewClient(predictor Predictor, format Format) *Client {
	if format == nil {
		format = MessagesFormat{}
	}
	if !ready(predictor) {
		predictor = nil
	}
	return &Client{
		predictor: predictor,
		format:    format,
	}
}

// readier is implemented by predictors that can be constructed without a backend.
type readier interface {
	Ready() bool
}

func ready(p Predictor) bool {
	if p == nil {
		return false
	}
	if r, ok := p.(readier); ok {
		return r.Ready()
	}
	return true
}

// Format returns the payload format of c.
func (c *Client) Format() Format {
	return c.format
}

// Invoke sends the system prompt and turns of p to the remote model.
func (c *Client) Invoke(ctx context.Context, p *prompt.Prompt, params SamplingParams) (*Response, error) {
	if c.predictor == nil {
		return nil, &UninitializedBackendError{}
	}

	payload, units, err := c.format.Encode(p, params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	logger := logging.FromContext(ctx)
	logger.DebugContext(ctx, "invoking model endpoint",
		slog.String("endpoint", c.predictor.Endpoint()),
		slog.String("format", c.format.Name()),
		slog.Int("turns", len(p.Turns)),
	)

	start := time.Now()
	body, err := c.predictor.Predict(ctx, payload)
	latency := time.Since(start)
	if err != nil {
		return nil, &InferenceError{Endpoint: c.predictor.Endpoint(), Err: err}
	}

	return &Response{
		Body:        body,
		PromptUnits: units,
		Latency:     latency,
	}, nil
}
