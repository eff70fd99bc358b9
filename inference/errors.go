// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"errors"
	"fmt"
)

// ErrEndpointNotFound is returned by [EndpointWaiter] when neither the endpoint nor an endpoint
// configuration of the same name exists.
var ErrEndpointNotFound = errors.New("endpoint not found")

// ErrUnsupportedModel is returned for model ids missing from the [Catalog].
var ErrUnsupportedModel = errors.New("unsupported model")

// UninitializedBackendError is returned when a [Client] has no predictor.
type UninitializedBackendError struct{}

func (e *UninitializedBackendError) Error() string {
	return "inference backend is not initialized"
}

// InferenceError wraps a transport or remote failure of a prediction.
type InferenceError struct {
	Endpoint string
	Err      error
}

func (e *InferenceError) Error() string {
	if e.Endpoint == "" {
		return fmt.Sprintf("inference failed: %v", e.Err)
	}
	return fmt.Sprintf("inference on endpoint %q failed: %v", e.Endpoint, e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}
