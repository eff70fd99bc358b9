// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package inference sends assembled prompts to a remote model endpoint.
//
// A [Client] pairs a [Predictor], which performs the remote call, with a [Format], which builds
// the backend-specific request payload and decodes the response body. Latency is measured
// strictly around [Predictor.Predict].
//
// [SageMakerPredictor] implements [Predictor] over SageMaker Runtime InvokeEndpoint. The
// supported hosted models, their payload formats and the endpoint names derived from their ids
// are described by [Catalog]. [EndpointWaiter] blocks until an endpoint reports InService.
package inference
