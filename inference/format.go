// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"unicode/utf8"

	"github.com/bytedance/sonic"

	"github.com/go-a2a/ragroute/prompt"
	"github.com/go-a2a/ragroute/response"
)

// Format builds the request payload of a backend and decodes its response body.
type Format interface {
	// Name identifies the format in logs and metrics.
	Name() string

	// Encode returns the payload for p and the prompt size used for token estimation.
	Encode(p *prompt.Prompt, params SamplingParams) (payload []byte, units int, err error)

	// Decode returns the generated text of a response body.
	Decode(body []byte) (string, error)
}

// MessagesFormat sends the system prompt and the role-tagged turns as a chat request.
//
// The prompt size is the number of turns.
type MessagesFormat struct{}

var _ Format = MessagesFormat{}

type messagesPayload struct {
	System     string         `json:"system"`
	Messages   []prompt.Turn  `json:"messages"`
	Parameters SamplingParams `json:"parameters"`
}

// Name implements [Format].
func (MessagesFormat) Name() string { return "messages" }

// Encode implements [Format].
func (MessagesFormat) Encode(p *prompt.Prompt, params SamplingParams) ([]byte, int, error) {
	turns := p.Turns
	if turns == nil {
		turns = []prompt.Turn{}
	}
	data, err := sonic.ConfigFastest.Marshal(messagesPayload{
		System:     p.System,
		Messages:   turns,
		Parameters: params,
	})
	if err != nil {
		return nil, 0, err
	}
	return data, len(p.Turns), nil
}

// Decode implements [Format].
func (MessagesFormat) Decode(body []byte) (string, error) {
	return response.ParseChat(body)
}

// TextFormat sends the prompt flattened into a single input string.
//
// The prompt size is the character count of the rendered input.
type TextFormat struct {
	Style prompt.Style
}

var _ Format = TextFormat{}

type textPayload struct {
	Inputs     string         `json:"inputs"`
	Parameters SamplingParams `json:"parameters"`
}

// Name implements [Format].
func (f TextFormat) Name() string { return "text_" + f.Style.String() }

// Encode implements [Format].
func (f TextFormat) Encode(p *prompt.Prompt, params SamplingParams) ([]byte, int, error) {
	inputs := prompt.Render(p, f.Style)
	data, err := sonic.ConfigFastest.Marshal(textPayload{
		Inputs:     inputs,
		Parameters: params,
	})
	if err != nil {
		return nil, 0, err
	}
	return data, utf8.RuneCountInString(inputs), nil
}

// Decode implements [Format].
func (TextFormat) Decode(body []byte) (string, error) {
	return response.ParseGenerated(body)
}
