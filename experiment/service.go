// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-json-experiment/json"

	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/pkg/logging"
)

// ErrNotFound is returned when no experiment record exists for the requested id.
var ErrNotFound = errors.New("experiment not found")

// ValidationError is returned when a request or a stored few-shot guide is invalid.
type ValidationError struct {
	ExperimentID string
	Reason       string
}

func (e *ValidationError) Error() string {
	if e.ExperimentID == "" {
		return e.Reason
	}
	return fmt.Sprintf("experiment %s: %s", e.ExperimentID, e.Reason)
}

// GetItemAPI is the subset of the DynamoDB client used by [Service].
type GetItemAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

var _ GetItemAPI = (*dynamodb.Client)(nil)

// defaultKNN is the number of passages retrieved when the request does not say.
const defaultKNN = 1

// Service creates validated experiment configurations.
type Service struct {
	api    GetItemAPI
	table  string
	region string
}

// NewService returns a [Service] reading experiment records from table. region is used for
// requests that do not set one.
func NewService(api GetItemAPI, table, region string) *Service {
	return &Service{
		api:    api,
		table:  table,
		region: region,
	}
}

// record is the part of an experiment item read by [Service].
type record struct {
	ID     string `dynamodbav:"id"`
	Config struct {
		NShotPromptGuide map[string]any `dynamodbav:"n_shot_prompt_guide"`
	} `dynamodbav:"config"`
}

// Create returns the configuration of req completed with the few-shot guide of its experiment.
//
// req is not modified. It fails with [*ValidationError] for a missing experiment id, a missing or
// incomplete guide, or too few examples, and with an error wrapping [ErrNotFound] when the
// experiment does not exist.
func (s *Service) Create(ctx context.Context, req *config.Experiment) (*config.Experiment, error) {
	if req == nil || req.ExperimentID == "" {
		return nil, &ValidationError{Reason: "experiment_id is required"}
	}

	exp, err := req.Clone()
	if err != nil {
		return nil, err
	}
	if exp.KNN == 0 {
		exp.KNN = defaultKNN
	}
	if exp.AWSRegion == "" {
		exp.AWSRegion = s.region
	}

	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: exp.ExperimentID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get experiment %s: %w", exp.ExperimentID, err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, exp.ExperimentID)
	}

	var rec record
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode experiment %s: %w", exp.ExperimentID, err)
	}
	if len(rec.Config.NShotPromptGuide) == 0 {
		return nil, &ValidationError{ExperimentID: exp.ExperimentID, Reason: "missing prompt file"}
	}

	guide, err := decodeGuide(rec.Config.NShotPromptGuide)
	if err != nil {
		return nil, fmt.Errorf("failed to decode prompt guide of experiment %s: %w", exp.ExperimentID, err)
	}
	if err := Validate(exp.ExperimentID, guide, exp.NShotPrompts); err != nil {
		return nil, err
	}
	exp.NShotPromptGuide = guide

	logging.FromContext(ctx).DebugContext(ctx, "created experiment config",
		slog.String("experiment_id", exp.ExperimentID),
		slog.Int("n_shot_prompts", exp.NShotPrompts),
		slog.Int("examples", len(guide.Examples)),
	)
	return exp, nil
}

// decodeGuide converts a guide read from DynamoDB into a [config.FewShotGuide].
func decodeGuide(m map[string]any) (*config.FewShotGuide, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	guide := &config.FewShotGuide{}
	if err := json.Unmarshal(data, guide); err != nil {
		return nil, err
	}
	return guide, nil
}

// Validate checks that guide defines both prompts and at least shots examples.
func Validate(experimentID string, guide *config.FewShotGuide, shots int) error {
	if guide == nil {
		return &ValidationError{ExperimentID: experimentID, Reason: "missing prompt file"}
	}
	if guide.SystemPrompt == nil || *guide.SystemPrompt == "" {
		return &ValidationError{ExperimentID: experimentID, Reason: "missing system prompt"}
	}
	if guide.UserPrompt == nil || *guide.UserPrompt == "" {
		return &ValidationError{ExperimentID: experimentID, Reason: "missing user prompt"}
	}
	if shots > 0 && len(guide.Examples) < shots {
		return &ValidationError{
			ExperimentID: experimentID,
			Reason:       fmt.Sprintf("insufficient n-shot examples: required %d, found %d", shots, len(guide.Examples)),
		}
	}
	return nil
}
