// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package guardrail_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrock/types"
	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/ragroute/guardrail"
)

type fakeAPI struct {
	pages [][]types.GuardrailSummary
	err   error
}

func (f *fakeAPI) ListGuardrails(_ context.Context, in *bedrock.ListGuardrailsInput, _ ...func(*bedrock.Options)) (*bedrock.ListGuardrailsOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	i := 0
	if in.NextToken != nil {
		i = 1
	}
	out := &bedrock.ListGuardrailsOutput{Guardrails: f.pages[i]}
	if i+1 < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestLister_List(t *testing.T) {
	api := &fakeAPI{
		pages: [][]types.GuardrailSummary{
			{{Id: aws.String("g1"), Name: aws.String("pii"), Version: aws.String("DRAFT"), Status: types.GuardrailStatusReady}},
			{{Id: aws.String("g2"), Name: aws.String("toxicity"), Version: aws.String("1"), Status: types.GuardrailStatusCreating}},
		},
	}

	got, err := guardrail.NewLister(api).List(t.Context())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []guardrail.Summary{
		{ID: "g1", Name: "pii", Version: "DRAFT", Status: "READY"},
		{ID: "g2", Name: "toxicity", Version: "1", Status: "CREATING"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestLister_ListError(t *testing.T) {
	cause := errors.New("denied")
	if _, err := guardrail.NewLister(&fakeAPI{err: cause}).List(t.Context()); !errors.Is(err, cause) {
		t.Errorf("List() error = %v, want wrapping %v", err, cause)
	}
}

func TestStatic_List(t *testing.T) {
	s := guardrail.NewStatic("gr-pii", "", "gr-toxicity")

	got, err := s.List(t.Context())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []guardrail.Summary{{ID: "gr-pii"}, {ID: "gr-toxicity"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	got[0].ID = "changed"
	if again, _ := s.List(t.Context()); again[0].ID != "gr-pii" {
		t.Errorf("List() shares its backing array: %v", again)
	}
}

func TestStatic_ListEmpty(t *testing.T) {
	got, err := guardrail.NewStatic().List(t.Context())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("List() = %#v, want empty non-nil slice", got)
	}
}
