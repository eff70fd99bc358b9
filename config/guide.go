// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// FewShotGuide bundles the system prompt, the user prompt and the example turns used to
// condition the answering model. Nil pointers and a nil Examples slice mean JSON null.
type FewShotGuide struct {
	SystemPrompt *string  `json:"system_prompt"`
	UserPrompt   *string  `json:"user_prompt"`
	Examples     Examples `json:"examples"`
}

// Example is one few-shot example record.
//
// The concrete type is one of [FreeFormExample], [QAExample] or [UnknownExample].
type Example interface {
	isExample()
}

// FreeFormExample is an example given as a single user turn.
type FreeFormExample struct {
	Text string
}

// QAExample is an example given as a user question followed by an assistant answer.
type QAExample struct {
	Question string
	Answer   string
}

// UnknownExample is a record of any other shape. Keys holds its sorted member names.
type UnknownExample struct {
	Keys []string
}

func (FreeFormExample) isExample() {}
func (QAExample) isExample()       {}
func (UnknownExample) isExample()  {}

// Examples is an ordered list of few-shot examples.
type Examples []Example

// UnmarshalJSON decodes a JSON array of example objects.
//
// An object with a string "example" member is a [FreeFormExample]; otherwise an object with
// string "question" and "answer" members is a [QAExample]; anything else is an [UnknownExample].
func (e *Examples) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*e = nil
		return nil
	}

	var raw []jsontext.Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode few-shot examples: %w", err)
	}

	out := make(Examples, 0, len(raw))
	for _, v := range raw {
		out = append(out, decodeExample(v))
	}
	*e = out
	return nil
}

// MarshalJSON encodes the examples back to their JSON object form.
// Unknown records are encoded as empty objects.
func (e Examples) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}

	objs := make([]map[string]string, 0, len(e))
	for _, ex := range e {
		switch ex := ex.(type) {
		case FreeFormExample:
			objs = append(objs, map[string]string{"example": ex.Text})
		case QAExample:
			objs = append(objs, map[string]string{"question": ex.Question, "answer": ex.Answer})
		default:
			objs = append(objs, map[string]string{})
		}
	}
	return json.Marshal(objs, json.Deterministic(true))
}

func decodeExample(v jsontext.Value) Example {
	var obj map[string]jsontext.Value
	if err := json.Unmarshal(v, &obj); err != nil || obj == nil {
		return UnknownExample{}
	}

	if text, ok := stringMember(obj, "example"); ok {
		return FreeFormExample{Text: text}
	}
	question, hasQuestion := stringMember(obj, "question")
	answer, hasAnswer := stringMember(obj, "answer")
	if hasQuestion && hasAnswer {
		return QAExample{Question: question, Answer: answer}
	}
	return UnknownExample{Keys: slices.Sorted(maps.Keys(obj))}
}

func stringMember(obj map[string]jsontext.Value, name string) (string, bool) {
	v, ok := obj[name]
	if !ok || v.Kind() != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}
