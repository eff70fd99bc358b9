// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker/types"
	"github.com/aws/smithy-go"

	"github.com/go-a2a/ragroute/pkg/logging"
)

// DescribeAPI is the subset of the SageMaker client used by [EndpointWaiter].
type DescribeAPI interface {
	DescribeEndpoint(ctx context.Context, params *sagemaker.DescribeEndpointInput, optFns ...func(*sagemaker.Options)) (*sagemaker.DescribeEndpointOutput, error)
	DescribeEndpointConfig(ctx context.Context, params *sagemaker.DescribeEndpointConfigInput, optFns ...func(*sagemaker.Options)) (*sagemaker.DescribeEndpointConfigOutput, error)
}

var _ DescribeAPI = (*sagemaker.Client)(nil)

// errNotReady marks a status check that should be repeated.
var errNotReady = errors.New("endpoint not ready")

// EndpointWaiter polls an endpoint until it is in service.
type EndpointWaiter struct {
	api      DescribeAPI
	interval time.Duration
	attempts uint
}

// WaiterOption configures an [EndpointWaiter].
type WaiterOption func(*EndpointWaiter)

// WithPollInterval sets the delay between two status checks.
func WithPollInterval(d time.Duration) WaiterOption {
	return func(w *EndpointWaiter) {
		w.interval = d
	}
}

// WithPollAttempts sets the maximum number of status checks.
func WithPollAttempts(n uint) WaiterOption {
	return func(w *EndpointWaiter) {
		w.attempts = n
	}
}

// NewEndpointWaiter returns a new [EndpointWaiter].
func NewEndpointWaiter(api DescribeAPI, opts ...WaiterOption) *EndpointWaiter {
	w := &EndpointWaiter{
		api:      api,
		interval: 5 * time.Second,
		attempts: 120,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WaitInService blocks until the endpoint called name reports InService.
//
// Creating and updating endpoints are polled, as is a missing endpoint whose endpoint
// configuration already exists. A failed endpoint or an unexpected status ends the wait with an
// error. When neither the endpoint nor its configuration exists the error wraps
// [ErrEndpointNotFound].
func (w *EndpointWaiter) WaitInService(ctx context.Context, name string) error {
	logger := logging.FromContext(ctx).With(slog.String("endpoint", name))

	err := retry.Do(
		func() error {
			return w.check(ctx, logger, name)
		},
		retry.Context(ctx),
		retry.Attempts(w.attempts),
		retry.Delay(w.interval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, errNotReady)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to wait for endpoint %q: %w", name, err)
	}

	logger.InfoContext(ctx, "endpoint is in service")
	return nil
}

func (w *EndpointWaiter) check(ctx context.Context, logger *slog.Logger, name string) error {
	out, err := w.api.DescribeEndpoint(ctx, &sagemaker.DescribeEndpointInput{
		EndpointName: aws.String(name),
	})
	if err != nil {
		if !isValidationError(err) {
			return err
		}
		return w.checkConfig(ctx, logger, name)
	}

	switch status := out.EndpointStatus; status {
	case types.EndpointStatusInService:
		return nil
	case types.EndpointStatusFailed:
		reason := aws.ToString(out.FailureReason)
		return fmt.Errorf("endpoint %q failed: %s", name, reason)
	case types.EndpointStatusCreating, types.EndpointStatusUpdating, types.EndpointStatusSystemUpdating:
		logger.DebugContext(ctx, "endpoint is not in service yet", slog.String("status", string(status)))
		return fmt.Errorf("%w: status %s", errNotReady, status)
	default:
		return fmt.Errorf("unexpected status %s of endpoint %q", status, name)
	}
}

func (w *EndpointWaiter) checkConfig(ctx context.Context, logger *slog.Logger, name string) error {
	_, err := w.api.DescribeEndpointConfig(ctx, &sagemaker.DescribeEndpointConfigInput{
		EndpointConfigName: aws.String(name),
	})
	if err != nil {
		if isValidationError(err) {
			return fmt.Errorf("%w: %s", ErrEndpointNotFound, name)
		}
		return err
	}

	logger.InfoContext(ctx, "endpoint configuration exists, waiting for endpoint creation")
	return fmt.Errorf("%w: endpoint configuration exists", errNotReady)
}

// isValidationError reports whether err is the ValidationException SageMaker returns for
// missing resources.
func isValidationError(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ValidationException"
}
