// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package response

import (
	"strings"
	"unicode/utf8"
)

// FallbackMessage is returned in place of an answer that failed [Validate].
const FallbackMessage = "Unable to generate a proper response. Please try again."

// answerMarkers are tried in order by [ExtractAnswer].
var answerMarkers = []string{
	"The final answer is:",
	"Assistant:",
}

// artifacts are removed from generated text by [Clean].
var artifacts = []string{
	"DRAFT",
	"[INST]",
	"[/INST]",
	"Human:",
	"Assistant:",
}

const thinkEnd = "</think>"

// ExtractAnswer returns the answer portion of generated text.
//
// The text following the first marker found is used, up to a repeated occurrence of the same
// marker. Without any marker the whole text is used. The result is trimmed.
func ExtractAnswer(text string) string {
	for _, marker := range answerMarkers {
		_, after, found := strings.Cut(text, marker)
		if !found {
			continue
		}
		answer, _, _ := strings.Cut(after, marker)
		return strings.TrimSpace(answer)
	}
	return strings.TrimSpace(text)
}

// Clean normalizes an extracted answer.
//
// It removes prompt artifacts, drops a trailing unfinished sentence when an earlier one is
// complete, collapses whitespace and discards any reasoning block closed by "</think>".
func Clean(text string) string {
	cleaned := strings.TrimSpace(text)
	for _, a := range artifacts {
		cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, a, ""))
	}

	if !strings.HasSuffix(cleaned, ".") && !strings.HasSuffix(cleaned, "!") && !strings.HasSuffix(cleaned, "?") {
		if i := strings.LastIndexAny(cleaned, ".!?"); i >= 0 {
			cleaned = cleaned[:i+1]
		}
	}

	cleaned = strings.Join(strings.Fields(cleaned), " ")

	if _, after, found := strings.Cut(cleaned, thinkEnd); found {
		cleaned = after
	}
	return strings.TrimSpace(cleaned)
}

// Validate reports whether text is usable as an answer.
//
// Empty or all-whitespace text and text containing "DRAFT" are rejected.
func Validate(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return !strings.Contains(text, "DRAFT")
}

// Metadata is the usage and latency metadata returned with an answer.
type Metadata struct {
	InputTokens  int   `json:"inputTokens"`
	OutputTokens int   `json:"outputTokens"`
	TotalTokens  int   `json:"totalTokens"`
	LatencyMs    int64 `json:"latencyMs"`
}

// charsPerToken is the approximation used by [EstimateUsage].
const charsPerToken = 4

// EstimateUsage approximates token usage from the size of the prompt and the raw generated text.
//
// promptUnits is the number of conversation turns for chat payloads, or the character count of
// the rendered input for text payloads. LatencyMs is left zero.
func EstimateUsage(promptUnits int, generated string) Metadata {
	in := promptUnits / charsPerToken
	out := utf8.RuneCountInString(generated) / charsPerToken
	return Metadata{
		InputTokens:  in,
		OutputTokens: out,
		TotalTokens:  in + out,
	}
}
