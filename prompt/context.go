// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"strconv"

	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/internal/pool"
)

// FormatContext joins the retrieved passages into a single context block headed by the query.
//
// Passages are numbered from 1 in retrieval order. A passage without text is skipped but still
// consumes its number.
func FormatContext(query string, passages []config.Passage) string {
	sb := pool.Builder.Get()
	defer pool.Builder.Put(sb)

	sb.WriteString("Search Query: ")
	sb.WriteString(query)
	sb.WriteString("\n\nRelevant Passages:\n")
	for i, p := range passages {
		if p.Text == "" {
			continue
		}
		score := "N/A"
		if p.Score != nil {
			score = strconv.FormatFloat(*p.Score, 'g', -1, 64)
		}
		sb.WriteString("\nPassage ")
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(" (Score: ")
		sb.WriteString(score)
		sb.WriteString("):\n")
		sb.WriteString(p.Text)
		sb.WriteByte('\n')
	}

	return sb.String()
}
