// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package evaluation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/go-a2a/ragroute/internal/gateway"
	"github.com/go-a2a/ragroute/prompt"
)

// judgeMaxTokens bounds the length of a judge reply.
const judgeMaxTokens = 1024

// ConverseAPI is the subset of the Bedrock Runtime client used by [BedrockJudge].
type ConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

var _ ConverseAPI = (*bedrockruntime.Client)(nil)

// BedrockJudge is a [Judge] served by the Bedrock Converse API.
type BedrockJudge struct {
	api         ConverseAPI
	model       string
	temperature *float64
}

var _ Judge = (*BedrockJudge)(nil)

// NewBedrockJudge returns a [BedrockJudge]. A nil temperature leaves the model default.
func NewBedrockJudge(api ConverseAPI, model string, temperature *float64) *BedrockJudge {
	return &BedrockJudge{
		api:         api,
		model:       model,
		temperature: temperature,
	}
}

// Model implements [Judge].
func (j *BedrockJudge) Model() string { return j.model }

// Complete implements [Judge].
func (j *BedrockJudge) Complete(ctx context.Context, system string, turns []prompt.Turn) (string, error) {
	in := &bedrockruntime.ConverseInput{
		ModelId:  aws.String(j.model),
		Messages: make([]types.Message, 0, len(turns)),
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens: aws.Int32(judgeMaxTokens),
		},
	}
	if system != "" {
		in.System = []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: system},
		}
	}
	if j.temperature != nil {
		in.InferenceConfig.Temperature = aws.Float32(float32(*j.temperature))
	}
	for _, t := range turns {
		role := types.ConversationRoleUser
		if t.Role == prompt.RoleAssistant {
			role = types.ConversationRoleAssistant
		}
		in.Messages = append(in.Messages, types.Message{
			Role:    role,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: t.Content}},
		})
	}

	out, err := j.api.Converse(ctx, in)
	if err != nil {
		return "", fmt.Errorf("bedrock converse with %q: %w", j.model, err)
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", fmt.Errorf("bedrock converse with %q returned no message", j.model)
	}
	var sb strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			sb.WriteString(text.Value)
		}
	}
	return sb.String(), nil
}

// MessagesAPI is the subset of the Anthropic messages service used by [AnthropicJudge].
type MessagesAPI interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

var _ MessagesAPI = (*anthropic.MessageService)(nil)

// AnthropicJudge is a [Judge] served by the Anthropic Messages API, on Bedrock or directly.
type AnthropicJudge struct {
	api         MessagesAPI
	model       string
	temperature *float64
}

var _ Judge = (*AnthropicJudge)(nil)

// NewAnthropicJudge returns an [AnthropicJudge]. A nil temperature leaves the model default.
func NewAnthropicJudge(api MessagesAPI, model string, temperature *float64) *AnthropicJudge {
	return &AnthropicJudge{
		api:         api,
		model:       model,
		temperature: temperature,
	}
}

// Model implements [Judge].
func (j *AnthropicJudge) Model() string { return j.model }

// Complete implements [Judge].
func (j *AnthropicJudge) Complete(ctx context.Context, system string, turns []prompt.Turn) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(j.model),
		MaxTokens: judgeMaxTokens,
		Messages:  make([]anthropic.MessageParam, 0, len(turns)),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if j.temperature != nil {
		params.Temperature = anthropic.Float(*j.temperature)
	}
	for _, t := range turns {
		block := anthropic.NewTextBlock(t.Content)
		if t.Role == prompt.RoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}

	message, err := j.api.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude API error: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

// GatewayJudge is a [Judge] served by the chat completions API of the request gateway.
type GatewayJudge struct {
	client      *gateway.Client
	model       string
	temperature float64
}

var _ Judge = (*GatewayJudge)(nil)

// NewGatewayJudge returns a [GatewayJudge].
func NewGatewayJudge(client *gateway.Client, model string, temperature float64) *GatewayJudge {
	return &GatewayJudge{
		client:      client,
		model:       model,
		temperature: temperature,
	}
}

// Model implements [Judge].
func (j *GatewayJudge) Model() string { return j.model }

// Temperature returns the sampling temperature of the judge.
func (j *GatewayJudge) Temperature() float64 { return j.temperature }

// Complete implements [Judge].
func (j *GatewayJudge) Complete(ctx context.Context, system string, turns []prompt.Turn) (string, error) {
	if j.model == "" {
		return "", errors.New("gateway judge has no model")
	}

	req := &gateway.ChatRequest{
		Model:       j.model,
		Messages:    make([]gateway.Message, 0, len(turns)+1),
		Temperature: j.temperature,
	}
	if system != "" {
		req.Messages = append(req.Messages, gateway.Message{Role: gateway.RoleSystem, Content: system})
	}
	for _, t := range turns {
		req.Messages = append(req.Messages, gateway.Message{Role: string(t.Role), Content: t.Content})
	}
	return j.client.Chat(ctx, req)
}
