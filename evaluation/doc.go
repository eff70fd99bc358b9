// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package evaluation provides the backends that score RAG outputs.
//
// An [Evaluator] bundles the judge model and the embedder an evaluation framework needs. The
// evaluator of an experiment is looked up under {evaluator, eval_service, backend}, where backend
// is "custom_gateway" when the gateway is enabled and "bedrock" otherwise:
//
//	ev, err := evaluation.NewResolver(nil, cfg).Resolve(ctx, exp)
//
// The metrics themselves are computed by the evaluation framework and are not part of this
// package.
package evaluation
