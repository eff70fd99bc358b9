// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package experiment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/experiment"
)

type fakeDynamo struct {
	items map[string]map[string]types.AttributeValue
	err   error

	gotTable string
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.gotTable = aws.ToString(in.TableName)
	if f.err != nil {
		return nil, f.err
	}
	id := in.Key["id"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[id]}, nil
}

func item(t *testing.T, v map[string]any) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		t.Fatalf("MarshalMap() error = %v", err)
	}
	return av
}

func ptr[T any](v T) *T { return &v }

func newFake(t *testing.T) *fakeDynamo {
	return &fakeDynamo{
		items: map[string]map[string]types.AttributeValue{
			"exp-1": item(t, map[string]any{
				"id": "exp-1",
				"config": map[string]any{
					"n_shot_prompt_guide": map[string]any{
						"system_prompt": "You are helpful.",
						"user_prompt":   "Answer briefly.",
						"examples": []any{
							map[string]any{"example": "free"},
							map[string]any{"question": "q", "answer": "a"},
						},
					},
				},
			}),
			"no-guide": item(t, map[string]any{
				"id":     "no-guide",
				"config": map[string]any{"other": 1},
			}),
			"no-user-prompt": item(t, map[string]any{
				"id": "no-user-prompt",
				"config": map[string]any{
					"n_shot_prompt_guide": map[string]any{"system_prompt": "S"},
				},
			}),
		},
	}
}

func TestService_Create(t *testing.T) {
	api := newFake(t)
	svc := experiment.NewService(api, "experiments", "eu-west-1")

	req := &config.Experiment{ExperimentID: "exp-1", NShotPrompts: 2, RetrievalModel: "m"}
	got, err := svc.Create(t.Context(), req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	want := &config.Experiment{
		ExperimentID:   "exp-1",
		RetrievalModel: "m",
		KNN:            1,
		AWSRegion:      "eu-west-1",
		NShotPrompts:   2,
		NShotPromptGuide: &config.FewShotGuide{
			SystemPrompt: ptr("You are helpful."),
			UserPrompt:   ptr("Answer briefly."),
			Examples: config.Examples{
				config.FreeFormExample{Text: "free"},
				config.QAExample{Question: "q", Answer: "a"},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Create() mismatch (-want +got):\n%s", diff)
	}
	if req.NShotPromptGuide != nil || req.KNN != 0 {
		t.Errorf("Create() modified the request: %+v", req)
	}
	if api.gotTable != "experiments" {
		t.Errorf("table = %q, want %q", api.gotTable, "experiments")
	}
}

func TestService_CreateErrors(t *testing.T) {
	cause := errors.New("throttled")

	tests := []struct {
		name           string
		req            *config.Experiment
		apiErr         error
		wantNotFound   bool
		wantValidation bool
		wantCause      bool
	}{
		{name: "missing id", req: &config.Experiment{}, wantValidation: true},
		{name: "nil request", req: nil, wantValidation: true},
		{name: "not found", req: &config.Experiment{ExperimentID: "nope"}, wantNotFound: true},
		{name: "missing guide", req: &config.Experiment{ExperimentID: "no-guide"}, wantValidation: true},
		{name: "missing user prompt", req: &config.Experiment{ExperimentID: "no-user-prompt"}, wantValidation: true},
		{name: "too few examples", req: &config.Experiment{ExperimentID: "exp-1", NShotPrompts: 3}, wantValidation: true},
		{name: "dynamodb failure", req: &config.Experiment{ExperimentID: "exp-1"}, apiErr: cause, wantCause: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFake(t)
			api.err = tt.apiErr

			_, err := experiment.NewService(api, "experiments", "us-east-1").Create(t.Context(), tt.req)
			if err == nil {
				t.Fatal("Create() error = nil, want error")
			}
			if got := errors.Is(err, experiment.ErrNotFound); got != tt.wantNotFound {
				t.Errorf("errors.Is(err, ErrNotFound) = %v, want %v (err = %v)", got, tt.wantNotFound, err)
			}
			var ve *experiment.ValidationError
			if got := errors.As(err, &ve); got != tt.wantValidation {
				t.Errorf("errors.As(err, *ValidationError) = %v, want %v (err = %v)", got, tt.wantValidation, err)
			}
			if got := errors.Is(err, cause); got != tt.wantCause {
				t.Errorf("errors.Is(err, cause) = %v, want %v", got, tt.wantCause)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	guide := &config.FewShotGuide{
		SystemPrompt: ptr("S"),
		UserPrompt:   ptr("U"),
		Examples:     config.Examples{config.FreeFormExample{Text: "e"}},
	}

	if err := experiment.Validate("x", guide, 0); err != nil {
		t.Errorf("Validate(shots=0) error = %v", err)
	}
	if err := experiment.Validate("x", guide, 1); err != nil {
		t.Errorf("Validate(shots=1) error = %v", err)
	}
	if err := experiment.Validate("x", guide, 2); err == nil {
		t.Error("Validate(shots=2) error = nil, want error")
	}
	if err := experiment.Validate("x", &config.FewShotGuide{UserPrompt: ptr("U")}, 0); err == nil {
		t.Error("Validate(no system prompt) error = nil, want error")
	}
}
