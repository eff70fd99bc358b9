// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package generator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/generator"
	"github.com/go-a2a/ragroute/inference"
	"github.com/go-a2a/ragroute/internal/metrics"
	"github.com/go-a2a/ragroute/prompt"
	"github.com/go-a2a/ragroute/response"
)

type fakePredictor struct {
	body []byte
	err  error
}

func (p *fakePredictor) Endpoint() string { return "ep" }

func (p *fakePredictor) Predict(context.Context, []byte) ([]byte, error) {
	return p.body, p.err
}

func chat(content string) []byte {
	return []byte(`{"choices":[{"message":{"content":` + quote(content) + `}}]}`)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func ptr[T any](v T) *T { return &v }

func TestGenerate(t *testing.T) {
	exp := &config.Experiment{
		TempRetrievalLLM: 0.2,
		NShotPromptGuide: &config.FewShotGuide{UserPrompt: ptr("Answer briefly.")},
	}
	req := generator.Request{
		Query:         "What is X?",
		DefaultPrompt: "You are helpful.",
		Passages:      []config.Passage{{Text: "X is a letter."}},
	}
	generated := "Assistant: The final answer is: X is a letter of the alphabet."

	tests := []struct {
		name string
		body []byte
		want *generator.Result
	}{
		{
			name: "answer",
			body: chat(generated),
			want: &generator.Result{
				Answer: "X is a letter of the alphabet.",
				Metadata: &response.Metadata{
					// 3 turns
					InputTokens:  0,
					OutputTokens: len(generated) / 4,
					TotalTokens:  len(generated) / 4,
				},
			},
		},
		{
			name: "empty answer degrades",
			body: chat("The final answer is:   "),
			want: &generator.Result{Answer: response.FallbackMessage, Degraded: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			client := inference.NewClient(&fakePredictor{body: tt.body}, inference.MessagesFormat{})
			g := generator.New(client, exp, generator.WithRecorder(metrics.NewRecorder(reg)), generator.WithEndpoint("ep"))

			got, err := g.Generate(t.Context(), req)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(response.Metadata{}, "LatencyMs")); diff != "" {
				t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
			}
			if got := testutil.CollectAndCount(reg, "ragroute_generator_generations_total"); got != 1 {
				t.Errorf("generation series = %d, want 1", got)
			}
		})
	}
}

func TestGenerate_Errors(t *testing.T) {
	cause := errors.New("throttled")

	tests := []struct {
		name   string
		client *inference.Client
		exp    *config.Experiment
		check  func(t *testing.T, err error)
	}{
		{
			name:   "uninitialized backend",
			client: inference.NewClient(nil, inference.MessagesFormat{}),
			exp:    &config.Experiment{},
			check: func(t *testing.T, err error) {
				var target *inference.UninitializedBackendError
				if !errors.As(err, &target) {
					t.Errorf("error = %v, want *UninitializedBackendError", err)
				}
			},
		},
		{
			name:   "remote failure",
			client: inference.NewClient(&fakePredictor{err: cause}, inference.MessagesFormat{}),
			exp:    &config.Experiment{},
			check: func(t *testing.T, err error) {
				var target *inference.InferenceError
				if !errors.As(err, &target) || !errors.Is(err, cause) {
					t.Errorf("error = %v, want *InferenceError wrapping %v", err, cause)
				}
			},
		},
		{
			name:   "malformed body",
			client: inference.NewClient(&fakePredictor{body: []byte(`{"choices":[]}`)}, inference.MessagesFormat{}),
			exp:    &config.Experiment{},
			check: func(t *testing.T, err error) {
				var target *response.MalformedResponseError
				if !errors.As(err, &target) {
					t.Errorf("error = %v, want *MalformedResponseError", err)
				}
			},
		},
		{
			name:   "choice without message",
			client: inference.NewClient(&fakePredictor{body: []byte(`{"choices":[{}]}`)}, inference.MessagesFormat{}),
			exp:    &config.Experiment{},
			check: func(t *testing.T, err error) {
				var target *response.MalformedResponseError
				if !errors.As(err, &target) {
					t.Errorf("error = %v, want *MalformedResponseError", err)
				}
			},
		},
		{
			name:   "shots without guide",
			client: inference.NewClient(&fakePredictor{body: chat("ok.")}, inference.MessagesFormat{}),
			exp:    &config.Experiment{NShotPrompts: 2},
			check: func(t *testing.T, err error) {
				var target *prompt.InvalidArgumentError
				if !errors.As(err, &target) {
					t.Errorf("error = %v, want *InvalidArgumentError", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generator.New(tt.client, tt.exp).Generate(t.Context(), generator.Request{Query: "q"})
			if err == nil {
				t.Fatalf("Generate() = %+v, want error", got)
			}
			tt.check(t, err)
		})
	}
}

func TestGenerate_TextFormat(t *testing.T) {
	client := inference.NewClient(
		&fakePredictor{body: []byte(`[{"generated_text":"<think>hmm</think> Paris is the capital."}]`)},
		inference.TextFormat{Style: prompt.StyleHumanAssistant},
	)
	g := generator.New(client, &config.Experiment{})

	got, err := g.Generate(t.Context(), generator.Request{Query: "Capital of France?", DefaultPrompt: "S"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.Answer != "Paris is the capital." {
		t.Errorf("Answer = %q, want %q", got.Answer, "Paris is the capital.")
	}
	if got.Metadata == nil || got.Metadata.InputTokens == 0 {
		t.Errorf("Metadata = %+v, want input tokens estimated from rendered text", got.Metadata)
	}
}
