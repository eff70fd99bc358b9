// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/go-json-experiment/json"
)

// Passage is one retrieved context passage.
type Passage struct {
	Text  string   `json:"text"`
	Score *float64 `json:"_score,omitempty"`
}

type passageSource struct {
	Text *string `json:"text"`
}

type passageJSON struct {
	Text   *string        `json:"text"`
	Source *passageSource `json:"_source"`
	Score  *float64       `json:"_score"`
}

// UnmarshalJSON accepts both the flat {"text": ...} form and the search-hit
// {"_source": {"text": ...}} form; a top-level "text" member wins.
func (p *Passage) UnmarshalJSON(data []byte) error {
	var raw passageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode passage: %w", err)
	}

	*p = Passage{Score: raw.Score}
	switch {
	case raw.Text != nil:
		p.Text = *raw.Text
	case raw.Source != nil && raw.Source.Text != nil:
		p.Text = *raw.Source.Text
	}
	return nil
}
