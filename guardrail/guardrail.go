// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package guardrail lists the Bedrock guardrails available to the service, either from a
// configured static list or live from Bedrock.
package guardrail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
)

// API is the subset of the Bedrock client used by [Lister].
type API interface {
	bedrock.ListGuardrailsAPIClient
}

var _ API = (*bedrock.Client)(nil)

// Summary identifies one guardrail. Guardrails of a [Static] list carry only their ID.
type Summary struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	Status  string `json:"status,omitempty"`
}

// Static serves a fixed list of guardrail identifiers.
type Static []Summary

// NewStatic returns a [Static] list of ids, in order. Empty ids are dropped.
func NewStatic(ids ...string) Static {
	s := make(Static, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			s = append(s, Summary{ID: id})
		}
	}
	return s
}

// List returns a copy of s.
func (s Static) List(context.Context) ([]Summary, error) {
	return append([]Summary{}, s...), nil
}

// Lister lists guardrails.
type Lister struct {
	api API
}

// NewLister returns a [Lister] over api.
func NewLister(api API) *Lister {
	return &Lister{api: api}
}

// List returns every guardrail, in upstream order.
func (l *Lister) List(ctx context.Context) ([]Summary, error) {
	summaries := []Summary{}
	pager := bedrock.NewListGuardrailsPaginator(l.api, &bedrock.ListGuardrailsInput{
		MaxResults: aws.Int32(1000),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list guardrails: %w", err)
		}
		for _, g := range page.Guardrails {
			summaries = append(summaries, Summary{
				ID:      aws.ToString(g.Id),
				Name:    aws.ToString(g.Name),
				Version: aws.ToString(g.Version),
				Status:  string(g.Status),
			})
		}
	}
	return summaries, nil
}
