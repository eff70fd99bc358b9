// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package inference_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker/types"
	"github.com/aws/smithy-go"

	"github.com/go-a2a/ragroute/inference"
)

var errValidation = &smithy.GenericAPIError{Code: "ValidationException", Message: "Could not find endpoint"}

type describeResult struct {
	status types.EndpointStatus
	err    error
}

type fakeDescribeAPI struct {
	endpoints []describeResult
	configErr error

	endpointCalls int
	configCalls   int
}

func (f *fakeDescribeAPI) DescribeEndpoint(_ context.Context, in *sagemaker.DescribeEndpointInput, _ ...func(*sagemaker.Options)) (*sagemaker.DescribeEndpointOutput, error) {
	i := min(f.endpointCalls, len(f.endpoints)-1)
	f.endpointCalls++
	r := f.endpoints[i]
	if r.err != nil {
		return nil, r.err
	}
	return &sagemaker.DescribeEndpointOutput{
		EndpointName:   in.EndpointName,
		EndpointStatus: r.status,
		FailureReason:  aws.String("capacity"),
	}, nil
}

func (f *fakeDescribeAPI) DescribeEndpointConfig(_ context.Context, in *sagemaker.DescribeEndpointConfigInput, _ ...func(*sagemaker.Options)) (*sagemaker.DescribeEndpointConfigOutput, error) {
	f.configCalls++
	if f.configErr != nil {
		return nil, f.configErr
	}
	return &sagemaker.DescribeEndpointConfigOutput{EndpointConfigName: in.EndpointConfigName}, nil
}

func newWaiter(api inference.DescribeAPI) *inference.EndpointWaiter {
	return inference.NewEndpointWaiter(api, inference.WithPollInterval(0), inference.WithPollAttempts(10))
}

func TestEndpointWaiter_WaitInService(t *testing.T) {
	tests := []struct {
		name              string
		api               *fakeDescribeAPI
		wantErr           bool
		wantNotFound      bool
		wantEndpointCalls int
		wantConfigCalls   int
	}{
		{
			name: "already in service",
			api: &fakeDescribeAPI{
				endpoints: []describeResult{{status: types.EndpointStatusInService}},
			},
			wantEndpointCalls: 1,
		},
		{
			name: "creating then in service",
			api: &fakeDescribeAPI{
				endpoints: []describeResult{
					{status: types.EndpointStatusCreating},
					{status: types.EndpointStatusCreating},
					{status: types.EndpointStatusInService},
				},
			},
			wantEndpointCalls: 3,
		},
		{
			name: "failed",
			api: &fakeDescribeAPI{
				endpoints: []describeResult{{status: types.EndpointStatusFailed}},
			},
			wantErr:           true,
			wantEndpointCalls: 1,
		},
		{
			name: "unexpected status",
			api: &fakeDescribeAPI{
				endpoints: []describeResult{{status: types.EndpointStatusDeleting}},
			},
			wantErr:           true,
			wantEndpointCalls: 1,
		},
		{
			name: "config exists then endpoint appears",
			api: &fakeDescribeAPI{
				endpoints: []describeResult{
					{err: errValidation},
					{status: types.EndpointStatusCreating},
					{status: types.EndpointStatusInService},
				},
			},
			wantEndpointCalls: 3,
			wantConfigCalls:   1,
		},
		{
			name: "neither endpoint nor config",
			api: &fakeDescribeAPI{
				endpoints: []describeResult{{err: errValidation}},
				configErr: errValidation,
			},
			wantErr:           true,
			wantNotFound:      true,
			wantEndpointCalls: 1,
			wantConfigCalls:   1,
		},
		{
			name: "never ready",
			api: &fakeDescribeAPI{
				endpoints: []describeResult{{status: types.EndpointStatusCreating}},
			},
			wantErr:           true,
			wantEndpointCalls: 10,
		},
		{
			name: "transport error is not retried",
			api: &fakeDescribeAPI{
				endpoints: []describeResult{{err: errors.New("dial tcp: timeout")}},
			},
			wantErr:           true,
			wantEndpointCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newWaiter(tt.api).WaitInService(t.Context(), "test-endpoint")
			if (err != nil) != tt.wantErr {
				t.Fatalf("WaitInService() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := errors.Is(err, inference.ErrEndpointNotFound); got != tt.wantNotFound {
				t.Errorf("errors.Is(err, ErrEndpointNotFound) = %v, want %v", got, tt.wantNotFound)
			}
			if tt.api.endpointCalls != tt.wantEndpointCalls {
				t.Errorf("DescribeEndpoint calls = %d, want %d", tt.api.endpointCalls, tt.wantEndpointCalls)
			}
			if tt.api.configCalls != tt.wantConfigCalls {
				t.Errorf("DescribeEndpointConfig calls = %d, want %d", tt.api.configCalls, tt.wantConfigCalls)
			}
		})
	}
}
