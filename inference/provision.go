// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker/types"

	"github.com/go-a2a/ragroute/pkg/logging"
)

// ErrProvisioningUnsupported is returned by [Provisioner] for models it cannot deploy.
var ErrProvisioningUnsupported = errors.New("endpoint provisioning is not supported for this model")

// ProvisionAPI is the subset of the SageMaker client used by [Provisioner].
type ProvisionAPI interface {
	CreateModel(ctx context.Context, params *sagemaker.CreateModelInput, optFns ...func(*sagemaker.Options)) (*sagemaker.CreateModelOutput, error)
	CreateEndpointConfig(ctx context.Context, params *sagemaker.CreateEndpointConfigInput, optFns ...func(*sagemaker.Options)) (*sagemaker.CreateEndpointConfigOutput, error)
	CreateEndpoint(ctx context.Context, params *sagemaker.CreateEndpointInput, optFns ...func(*sagemaker.Options)) (*sagemaker.CreateEndpointOutput, error)
}

var _ ProvisionAPI = (*sagemaker.Client)(nil)

// huggingFaceTGIImage is the Hugging Face text-generation-inference serving image, by region.
const huggingFaceTGIImage = "763104351884.dkr.ecr.%s.amazonaws.com/huggingface-pytorch-tgi-inference:2.4.0-tgi2.3.1-gpu-py311-cu124-ubuntu22.04"

// DefaultHuggingFaceImage returns the serving image used for Hugging Face models in region.
func DefaultHuggingFaceImage(region string) string {
	return fmt.Sprintf(huggingFaceTGIImage, region)
}

const (
	variantName          = "AllTraffic"
	startupHealthTimeout = 300
)

// Provisioner deploys hosted models to SageMaker endpoints.
type Provisioner struct {
	api      ProvisionAPI
	roleARN  string
	imageURI string
	gpus     int
}

// ProvisionerOption configures a [Provisioner].
type ProvisionerOption func(*Provisioner)

// WithNumGPUs sets the number of GPUs the serving container shards the model over.
func WithNumGPUs(n int) ProvisionerOption {
	return func(p *Provisioner) {
		if n > 0 {
			p.gpus = n
		}
	}
}

// NewProvisioner returns a [Provisioner] creating models that run as roleARN from imageURI.
func NewProvisioner(api ProvisionAPI, roleARN, imageURI string, opts ...ProvisionerOption) *Provisioner {
	p := &Provisioner{
		api:      api,
		roleARN:  roleARN,
		imageURI: imageURI,
		gpus:     1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Provision creates the model, endpoint configuration and endpoint of spec, all named after
// [ModelSpec.EndpointName]. It returns once creation has started; use [EndpointWaiter] to wait
// for the endpoint.
//
// Only Hugging Face models are supported; others fail with [ErrProvisioningUnsupported].
// Resources that already exist are left untouched.
func (p *Provisioner) Provision(ctx context.Context, spec ModelSpec) error {
	if spec.Source != SourceHuggingFace {
		return fmt.Errorf("%w: %s (%s)", ErrProvisioningUnsupported, spec.ID, spec.Source)
	}
	if p.roleARN == "" {
		return errors.New("sagemaker execution role is required to provision endpoints")
	}

	name := spec.EndpointName()
	logger := logging.FromContext(ctx).With(slog.String("endpoint", name), slog.String("model", spec.ID))
	logger.InfoContext(ctx, "provisioning endpoint", slog.String("instance_type", spec.InstanceType))

	_, err := p.api.CreateModel(ctx, &sagemaker.CreateModelInput{
		ModelName:        aws.String(name),
		ExecutionRoleArn: aws.String(p.roleARN),
		PrimaryContainer: &types.ContainerDefinition{
			Image: aws.String(p.imageURI),
			Environment: map[string]string{
				"HF_MODEL_ID": spec.ID,
				"SM_NUM_GPUS": strconv.Itoa(p.gpus),
			},
		},
	})
	if err := existing(ctx, logger, "model", err); err != nil {
		return fmt.Errorf("failed to create model %s: %w", name, err)
	}

	_, err = p.api.CreateEndpointConfig(ctx, &sagemaker.CreateEndpointConfigInput{
		EndpointConfigName: aws.String(name),
		ProductionVariants: []types.ProductionVariant{{
			VariantName:          aws.String(variantName),
			ModelName:            aws.String(name),
			InstanceType:         types.ProductionVariantInstanceType(spec.InstanceType),
			InitialInstanceCount: aws.Int32(1),
			ContainerStartupHealthCheckTimeoutInSeconds: aws.Int32(startupHealthTimeout),
		}},
	})
	if err := existing(ctx, logger, "endpoint configuration", err); err != nil {
		return fmt.Errorf("failed to create endpoint configuration %s: %w", name, err)
	}

	_, err = p.api.CreateEndpoint(ctx, &sagemaker.CreateEndpointInput{
		EndpointName:       aws.String(name),
		EndpointConfigName: aws.String(name),
	})
	if err := existing(ctx, logger, "endpoint", err); err != nil {
		return fmt.Errorf("failed to create endpoint %s: %w", name, err)
	}
	return nil
}

// existing drops the ValidationException SageMaker returns when a resource already exists,
// which happens when another process provisions the same endpoint.
func existing(ctx context.Context, logger *slog.Logger, kind string, err error) error {
	if err == nil {
		return nil
	}
	if isValidationError(err) {
		logger.InfoContext(ctx, kind+" already exists", slog.String("error", err.Error()))
		return nil
	}
	return err
}

// EnsureInService waits for the endpoint of spec. When the endpoint does not exist and p is not
// nil, it is provisioned with p and waited for again.
func EnsureInService(ctx context.Context, w *EndpointWaiter, p *Provisioner, spec ModelSpec) error {
	endpoint := spec.EndpointName()
	err := w.WaitInService(ctx, endpoint)
	if p == nil || !errors.Is(err, ErrEndpointNotFound) {
		return err
	}
	if err := p.Provision(ctx, spec); err != nil {
		return err
	}
	return w.WaitInService(ctx, endpoint)
}
