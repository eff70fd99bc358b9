// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package response

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"
)

// MalformedResponseError is returned when a response body does not have the expected shape.
type MalformedResponseError struct {
	Reason string
	Body   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

// maxErrorBody bounds the body excerpt kept in a [MalformedResponseError].
const maxErrorBody = 256

func malformed(reason string, body []byte) *MalformedResponseError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &MalformedResponseError{Reason: reason, Body: string(body)}
}

type chatMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

type chatChoice struct {
	Message *chatMessage `json:"message"`
}

type chatCompletion struct {
	Choices []chatChoice `json:"choices"`
}

// ParseChat returns the content of the first choice of a chat-completion body.
//
// A first choice without a message or without string content is malformed. An empty string
// content is returned as is.
func ParseChat(body []byte) (string, error) {
	var resp chatCompletion
	if err := sonic.ConfigFastest.Unmarshal(body, &resp); err != nil {
		return "", malformed(fmt.Sprintf("decode chat completion: %v", err), body)
	}
	if len(resp.Choices) == 0 {
		return "", malformed("chat completion has no choices", body)
	}
	msg := resp.Choices[0].Message
	if msg == nil || msg.Content == nil {
		return "", malformed("chat completion choice has no message content", body)
	}
	return *msg.Content, nil
}

type generation struct {
	GeneratedText string `json:"generated_text"`
}

// ParseGenerated returns the generated text of a text-generation body.
//
// Both the list form [{"generated_text": ...}] and the object form {"generated_text": ...} are
// accepted. An empty list or a missing member yields the empty string.
func ParseGenerated(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", malformed("empty body", body)
	}

	switch trimmed[0] {
	case '[':
		var list []generation
		if err := sonic.ConfigFastest.Unmarshal(trimmed, &list); err != nil {
			return "", malformed(fmt.Sprintf("decode generation list: %v", err), body)
		}
		if len(list) == 0 {
			return "", nil
		}
		return list[0].GeneratedText, nil

	case '{':
		var g generation
		if err := sonic.ConfigFastest.Unmarshal(trimmed, &g); err != nil {
			return "", malformed(fmt.Sprintf("decode generation: %v", err), body)
		}
		return g.GeneratedText, nil

	default:
		return "", malformed("unexpected generation body", body)
	}
}
