// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-a2a/ragroute/prompt"
)

// Source is where a hosted model is deployed from.
type Source string

const (
	// SourceJumpStart deploys from SageMaker JumpStart.
	SourceJumpStart Source = "jumpstart"

	// SourceHuggingFace deploys from the Hugging Face hub.
	SourceHuggingFace Source = "huggingface"
)

// ModelSpec describes one supported hosted model.
type ModelSpec struct {
	ID           string
	Source       Source
	InstanceType string

	// Text selects the single-string payload with Style instead of the chat payload.
	Text  bool
	Style prompt.Style
}

// Format returns the payload [Format] of m.
func (m ModelSpec) Format() Format {
	if m.Text {
		return TextFormat{Style: m.Style}
	}
	return MessagesFormat{}
}

// EndpointName returns the endpoint name of m.
func (m ModelSpec) EndpointName() string {
	return EndpointName(m.ID)
}

// Catalog maps model ids to their specs.
type Catalog map[string]ModelSpec

// DefaultCatalog returns the hosted models supported for answer generation.
func DefaultCatalog() Catalog {
	specs := []ModelSpec{
		{ID: "meta-textgeneration-llama-3-1-8b-instruct", Source: SourceJumpStart, InstanceType: "ml.g5.2xlarge"},
		{ID: "huggingface-llm-falcon-7b-instruct-bf16", Source: SourceJumpStart, InstanceType: "ml.g5.2xlarge", Text: true, Style: prompt.StyleSummary},
		{ID: "meta-textgeneration-llama-3-3-70b-instruct", Source: SourceJumpStart, InstanceType: "ml.p4d.24xlarge"},
		{ID: "meta-vlm-llama-4-scout-17b-16e-instruct", Source: SourceJumpStart, InstanceType: "ml.p4d.24xlarge"},
		{ID: "deepseek-ai/DeepSeek-R1-Distill-Llama-8B", Source: SourceHuggingFace, InstanceType: "ml.g5.2xlarge", Text: true, Style: prompt.StyleHumanAssistant},
		{ID: "deepseek-ai/DeepSeek-R1-Distill-Qwen-1.5B", Source: SourceHuggingFace, InstanceType: "ml.g5.xlarge", Text: true, Style: prompt.StyleHumanAssistant},
		{ID: "deepseek-ai/DeepSeek-R1-Distill-Qwen-7B", Source: SourceHuggingFace, InstanceType: "ml.g5.xlarge", Text: true, Style: prompt.StyleHumanAssistant},
		{ID: "deepseek-ai/DeepSeek-R1-Distill-Qwen-14B", Source: SourceHuggingFace, InstanceType: "ml.g6e.12xlarge", Text: true, Style: prompt.StyleHumanAssistant},
	}

	c := make(Catalog, len(specs))
	for _, s := range specs {
		c[s.ID] = s
	}
	return c
}

// Lookup returns the spec of modelID, or an error wrapping [ErrUnsupportedModel].
func (c Catalog) Lookup(modelID string) (ModelSpec, error) {
	spec, ok := c[modelID]
	if !ok {
		return ModelSpec{}, fmt.Errorf("%w: %q", ErrUnsupportedModel, modelID)
	}
	return spec, nil
}

// IDs returns the model ids of c in sorted order.
func (c Catalog) IDs() []string {
	return slices.Sorted(maps.Keys(c))
}

const (
	maxResourceName    = 63
	endpointNamePrefix = 42
	endpointNameSuffix = "-inferencing-endpoint"
)

// EndpointName returns the SageMaker endpoint name serving modelID.
func EndpointName(modelID string) string {
	name := SanitizeName(modelID)
	if len(name) > endpointNamePrefix {
		name = name[:endpointNamePrefix]
	}
	return name + endpointNameSuffix
}

// SanitizeName maps name onto the SageMaker resource name alphabet.
//
// Characters outside [a-zA-Z0-9-] become '-', an 'n' is prepended when the name does not start
// with a letter, and the result is truncated to 63 characters.
func SanitizeName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 1)
	for _, r := range name {
		switch {
		case isLetter(r), r >= '0' && r <= '9', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteByte('-')
		}
	}

	s := sb.String()
	if s == "" || !isLetter(rune(s[0])) {
		s = "n" + s
	}
	if len(s) > maxResourceName {
		s = s[:maxResourceName]
	}
	return s
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
