// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
)

// RuntimeAPI is the subset of the SageMaker Runtime client used by [SageMakerPredictor].
type RuntimeAPI interface {
	InvokeEndpoint(ctx context.Context, params *sagemakerruntime.InvokeEndpointInput, optFns ...func(*sagemakerruntime.Options)) (*sagemakerruntime.InvokeEndpointOutput, error)
}

var _ RuntimeAPI = (*sagemakerruntime.Client)(nil)

const contentTypeJSON = "application/json"

// SageMakerPredictor is a [Predictor] backed by a SageMaker real-time endpoint.
type SageMakerPredictor struct {
	api      RuntimeAPI
	endpoint string
}

var _ Predictor = (*SageMakerPredictor)(nil)

// NewSageMakerPredictor returns a [SageMakerPredictor] for the named endpoint.
func NewSageMakerPredictor(api RuntimeAPI, endpoint string) *SageMakerPredictor {
	return &SageMakerPredictor{
		api:      api,
		endpoint: endpoint,
	}
}

// Ready reports whether p has a runtime client. It is safe to call on a nil p.
func (p *SageMakerPredictor) Ready() bool {
	return p != nil && p.api != nil
}

// Endpoint implements [Predictor].
func (p *SageMakerPredictor) Endpoint() string {
	if p == nil {
		return ""
	}
	return p.endpoint
}

// Predict implements [Predictor].
func (p *SageMakerPredictor) Predict(ctx context.Context, payload []byte) ([]byte, error) {
	if !p.Ready() {
		return nil, &UninitializedBackendError{}
	}
	out, err := p.api.InvokeEndpoint(ctx, &sagemakerruntime.InvokeEndpointInput{
		EndpointName: aws.String(p.endpoint),
		Body:         payload,
		ContentType:  aws.String(contentTypeJSON),
		Accept:       aws.String(contentTypeJSON),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
