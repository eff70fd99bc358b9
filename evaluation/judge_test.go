// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package evaluation_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/ragroute/evaluation"
	"github.com/go-a2a/ragroute/prompt"
)

type fakeConverse struct {
	in *bedrockruntime.ConverseInput
}

func (f *fakeConverse) Converse(_ context.Context, in *bedrockruntime.ConverseInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	f.in = in
	return &bedrockruntime.ConverseOutput{
		Output: &types.ConverseOutputMemberMessage{
			Value: types.Message{
				Role: types.ConversationRoleAssistant,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: "score: "},
					&types.ContentBlockMemberText{Value: "1"},
				},
			},
		},
	}, nil
}

var judgeTurns = []prompt.Turn{
	{Role: prompt.RoleUser, Content: "q"},
	{Role: prompt.RoleAssistant, Content: "a"},
	{Role: prompt.RoleUser, Content: "grade it"},
}

func TestBedrockJudge_Complete(t *testing.T) {
	api := &fakeConverse{}
	j := evaluation.NewBedrockJudge(api, "meta.llama3-70b-instruct-v1:0", ptr(0.2))

	got, err := j.Complete(t.Context(), "You grade answers.", judgeTurns)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "score: 1" {
		t.Errorf("Complete() = %q, want %q", got, "score: 1")
	}

	if aws.ToString(api.in.ModelId) != "meta.llama3-70b-instruct-v1:0" {
		t.Errorf("ModelId = %q", aws.ToString(api.in.ModelId))
	}
	if got := aws.ToFloat32(api.in.InferenceConfig.Temperature); got != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", got)
	}
	var roles []types.ConversationRole
	for _, m := range api.in.Messages {
		roles = append(roles, m.Role)
	}
	wantRoles := []types.ConversationRole{types.ConversationRoleUser, types.ConversationRoleAssistant, types.ConversationRoleUser}
	if diff := cmp.Diff(wantRoles, roles); diff != "" {
		t.Errorf("roles mismatch (-want +got):\n%s", diff)
	}
	sys, ok := api.in.System[0].(*types.SystemContentBlockMemberText)
	if !ok || sys.Value != "You grade answers." {
		t.Errorf("System = %#v, want system text", api.in.System)
	}
}

func TestBedrockJudge_NoTemperature(t *testing.T) {
	api := &fakeConverse{}
	j := evaluation.NewBedrockJudge(api, "m", nil)
	if _, err := j.Complete(t.Context(), "", judgeTurns); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if api.in.InferenceConfig.Temperature != nil {
		t.Errorf("Temperature = %v, want unset", *api.in.InferenceConfig.Temperature)
	}
	if api.in.System != nil {
		t.Errorf("System = %#v, want unset", api.in.System)
	}
}

func TestAnthropicJudge_Complete(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("request is not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude",
			"content": [{"type": "text", "text": "grade: good"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 3, "output_tokens": 2}
		}`)
	}))
	defer srv.Close()

	client := anthropic.NewClient(
		option.WithBaseURL(srv.URL),
		option.WithAPIKey("test"),
		option.WithMaxRetries(0),
	)
	j := evaluation.NewAnthropicJudge(&client.Messages, "anthropic.claude-3-5-haiku-20241022-v1:0", ptr(0.5))

	reply, err := j.Complete(t.Context(), "You grade answers.", judgeTurns)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "grade: good" {
		t.Errorf("Complete() = %q, want %q", reply, "grade: good")
	}

	if got["model"] != "anthropic.claude-3-5-haiku-20241022-v1:0" {
		t.Errorf("model = %v", got["model"])
	}
	if got["temperature"] != 0.5 {
		t.Errorf("temperature = %v, want 0.5", got["temperature"])
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 3 {
		t.Fatalf("len(messages) = %d, want 3", len(msgs))
	}
	if role := msgs[1].(map[string]any)["role"]; role != "assistant" {
		t.Errorf("messages[1].role = %v, want assistant", role)
	}
}
