// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package evaluation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicbedrock "github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/go-a2a/ragroute/capability"
	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/embedding"
	"github.com/go-a2a/ragroute/internal/gateway"
)

// anthropicModelPrefix marks Bedrock model ids served through the Anthropic Messages API.
const anthropicModelPrefix = "anthropic."

func newRagasBedrock(ctx context.Context, cfg *config.Config, exp *config.Experiment) (Evaluator, error) {
	if exp.EvalRetrievalModel == "" {
		return nil, errors.New("eval_retrieval_model is required")
	}
	if exp.EvalEmbeddingModel == "" {
		return nil, errors.New("eval_embedding_model is required")
	}

	region := exp.Region(cfg.AWSRegion)
	awsCfg, err := cfg.AWS(ctx, region)
	if err != nil {
		return nil, err
	}

	var judge Judge
	if strings.HasPrefix(exp.EvalRetrievalModel, anthropicModelPrefix) {
		client := anthropic.NewClient(anthropicbedrock.WithConfig(awsCfg))
		judge = NewAnthropicJudge(&client.Messages, exp.EvalRetrievalModel, exp.EvalRetrievalTemperature)
	} else {
		judge = NewBedrockJudge(bedrockruntime.NewFromConfig(awsCfg), exp.EvalRetrievalModel, exp.EvalRetrievalTemperature)
	}

	embedder, err := embedding.NewBedrock(bedrockruntime.NewFromConfig(awsCfg), exp.EvalEmbeddingModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluation embedder: %w", err)
	}

	return New(ServiceRagas, capability.BackendBedrock, judge, embedder), nil
}

func newRagasGateway(_ context.Context, _ *config.Config, exp *config.Experiment) (Evaluator, error) {
	client, err := gateway.NewClient(exp.GatewayURL, exp.GatewayAPIKey)
	if err != nil {
		return nil, err
	}

	judge := NewGatewayJudge(client, exp.EvalRetrievalModel, exp.JudgeTemperature(config.DefaultGatewayTemperature))
	embedder := embedding.NewGateway(client, exp.EvalEmbeddingModel)

	return New(ServiceRagas, capability.BackendGateway, judge, embedder), nil
}
