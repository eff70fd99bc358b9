// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/internal/pool"
)

// Style selects how [Render] flattens a [Prompt] into a single input string.
type Style int

const (
	// StyleHumanAssistant renders a "Human: ... Assistant:" transcript that ends with the answer cue
	// recognized by the response processor.
	StyleHumanAssistant Style = iota

	// StyleSummary renders a search-result summarization instruction.
	StyleSummary
)

// String returns the name of s.
func (s Style) String() string {
	switch s {
	case StyleHumanAssistant:
		return "human_assistant"
	case StyleSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// AnswerCue is the phrase a [StyleHumanAssistant] prompt ends with.
const AnswerCue = "The final answer is:"

// Render flattens p into the single input string expected by text-only endpoints.
func Render(p *Prompt, style Style) string {
	switch style {
	case StyleSummary:
		return renderSummary(p)
	default:
		return renderHumanAssistant(p)
	}
}

func renderHumanAssistant(p *Prompt) string {
	sb := pool.Builder.Get()
	defer pool.Builder.Put(sb)

	sb.WriteString("Human: ")
	sb.WriteString(p.System)
	sb.WriteString("\n\n")
	if p.Shots > 0 {
		sb.WriteString("Few examples:\n")
		sb.WriteString(formatExamples(p.Examples))
		sb.WriteString("\n")
	} else {
		sb.WriteString("Search Query: ")
		sb.WriteString(p.Query)
		sb.WriteString("\n\n")
	}
	if p.ContextText != "" {
		sb.WriteString(p.ContextText)
		sb.WriteString("\n\n")
	}
	if p.BasePrompt != "" {
		sb.WriteString(p.BasePrompt)
		sb.WriteString("\n\n")
	}
	if p.Shots > 0 {
		sb.WriteString("Question: ")
		sb.WriteString(p.Query)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Assistant: ")
	sb.WriteString(AnswerCue)

	return strings.TrimSpace(sb.String())
}

func renderSummary(p *Prompt) string {
	search := p.ContextText
	if search == "" {
		search = "(none)"
	}
	if p.Shots > 0 && len(p.Examples) > 0 {
		return heredoc.Docf(`
			Below are search results and a query. Create a concise summary.
			Few examples:
			%s
			Query: %s
			Search Results: %s
			Summary:`, strings.TrimSuffix(formatExamples(p.Examples), "\n"), p.Query, search)
	}
	return heredoc.Docf(`
		Below are search results and a query. Create a concise summary.
		Query: %s
		Search Results: %s
		Summary:`, p.Query, search)
}

// formatExamples renders the selected examples as a bulleted list.
func formatExamples(examples []config.Example) string {
	var sb strings.Builder
	for _, ex := range examples {
		switch ex := ex.(type) {
		case config.FreeFormExample:
			sb.WriteString("- ")
			sb.WriteString(ex.Text)
			sb.WriteByte('\n')
		case config.QAExample:
			sb.WriteString("- Sample question: ")
			sb.WriteString(ex.Question)
			sb.WriteString("\n- Sample answer: ")
			sb.WriteString(ex.Answer)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
