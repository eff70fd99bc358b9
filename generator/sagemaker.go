// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"

	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/inference"
	"github.com/go-a2a/ragroute/pkg/logging"
)

// ForExperiment returns a [Generator] for the retrieval model of exp hosted on SageMaker.
//
// It looks the model up in the default catalog and waits until its endpoint is
// in service. A missing endpoint is provisioned first when cfg names a
// SageMaker execution role.
func ForExperiment(ctx context.Context, cfg *config.Config, exp *config.Experiment, opts ...Option) (*Generator, error) {
	spec, err := inference.DefaultCatalog().Lookup(exp.RetrievalModel)
	if err != nil {
		return nil, err
	}

	awsCfg, err := cfg.AWS(ctx, exp.Region(cfg.AWSRegion))
	if err != nil {
		return nil, err
	}

	endpoint := spec.EndpointName()
	logging.FromContext(ctx).InfoContext(ctx, "initializing generator",
		slog.String("model", spec.ID),
		slog.String("endpoint", endpoint),
		slog.String("instance_type", spec.InstanceType),
	)

	sm := sagemaker.NewFromConfig(awsCfg)
	waiter := inference.NewEndpointWaiter(sm,
		inference.WithPollInterval(cfg.EndpointPollInterval),
		inference.WithPollAttempts(cfg.EndpointPollAttempts),
	)
	var provisioner *inference.Provisioner
	if cfg.SageMakerRoleARN != "" {
		image := cfg.HuggingFaceImageURI
		if image == "" {
			image = inference.DefaultHuggingFaceImage(awsCfg.Region)
		}
		provisioner = inference.NewProvisioner(sm, cfg.SageMakerRoleARN, image)
	}
	if err := inference.EnsureInService(ctx, waiter, provisioner, spec); err != nil {
		return nil, fmt.Errorf("endpoint for model %q is not available: %w", spec.ID, err)
	}

	predictor := inference.NewSageMakerPredictor(sagemakerruntime.NewFromConfig(awsCfg), endpoint)
	client := inference.NewClient(predictor, spec.Format())

	opts = append([]Option{WithEndpoint(endpoint)}, opts...)
	return New(client, exp, opts...), nil
}
