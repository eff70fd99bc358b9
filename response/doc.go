// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package response turns raw model output into a clean answer and usage metadata.
//
// The processing order used by the generator is:
//
//	text, err := response.ParseChat(body)  // or ParseGenerated for text endpoints
//	answer := response.Clean(response.ExtractAnswer(text))
//	if !response.Validate(answer) {
//		answer = response.FallbackMessage
//	}
//	md := response.EstimateUsage(len(turns), text)
//
// Token counts are estimated at roughly four characters per token because the remote
// endpoints do not report native counts.
package response
