// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package experiment resolves the runtime configuration of an experiment execution.
//
// The few-shot guide of an experiment is stored with the experiment record in DynamoDB under
// config.n_shot_prompt_guide. [Service.Create] merges it into the request configuration and
// validates it against the requested shot count.
package experiment
