// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package prompt assembles the system prompt and the ordered conversation turns sent to an
// answering model.
//
// A [Builder] turns a default system prompt, an optional [config.FewShotGuide], the user query
// and the retrieved passages into a [Prompt]:
//
//	b := prompt.NewBuilder()
//	p, err := b.Build(ctx, prompt.Input{
//		DefaultPrompt: "You are a helpful assistant.",
//		Guide:         exp.NShotPromptGuide,
//		Query:         "What is X?",
//		Passages:      passages,
//		Shots:         exp.NShotPrompts,
//	})
//
// With zero shots the turns are the user prompt of the guide (always present, possibly empty),
// the formatted context when there is any, and the query. With n shots, up to n examples are
// drawn without replacement and inserted after the user prompt: free-form examples as a user
// turn, question/answer examples as a user turn followed by an assistant turn.
//
// Example sampling uses the [*rand.Rand] given with [WithRand]; tests pass a seeded source.
//
// Text-only endpoints that take a single input string use [Render] to flatten a [Prompt].
package prompt
