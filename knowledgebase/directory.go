// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package knowledgebase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent/types"
	"golang.org/x/sync/errgroup"

	"github.com/go-a2a/ragroute/pkg/logging"
)

// API is the subset of the Bedrock Agent client used by [Directory].
type API interface {
	bedrockagent.ListKnowledgeBasesAPIClient
	GetKnowledgeBase(ctx context.Context, params *bedrockagent.GetKnowledgeBaseInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.GetKnowledgeBaseOutput, error)
	ListDataSources(ctx context.Context, params *bedrockagent.ListDataSourcesInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.ListDataSourcesOutput, error)
	ListKnowledgeBaseDocuments(ctx context.Context, params *bedrockagent.ListKnowledgeBaseDocumentsInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.ListKnowledgeBaseDocumentsOutput, error)
}

var _ API = (*bedrockagent.Client)(nil)

// Summary identifies a usable knowledge base.
type Summary struct {
	ID          string `json:"kb_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DirectoryUnavailableError is returned when any upstream call of a listing fails.
type DirectoryUnavailableError struct {
	Err error
}

func (e *DirectoryUnavailableError) Error() string {
	return fmt.Sprintf("knowledge base directory unavailable: %v", e.Err)
}

func (e *DirectoryUnavailableError) Unwrap() error {
	return e.Err
}

const (
	defaultConcurrency = 8
	listPageSize       = 1000
)

// Directory lists usable knowledge bases.
type Directory struct {
	api         API
	concurrency int
}

// Option configures a [Directory].
type Option func(*Directory)

// WithConcurrency bounds the number of knowledge bases inspected at once.
func WithConcurrency(n int) Option {
	return func(d *Directory) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// NewDirectory returns a [Directory] over api.
func NewDirectory(api API, opts ...Option) *Directory {
	d := &Directory{
		api:         api,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ListValid returns the usable knowledge bases in upstream listing order.
//
// Any upstream failure aborts the whole listing with [*DirectoryUnavailableError].
func (d *Directory) ListValid(ctx context.Context) ([]Summary, error) {
	logger := logging.FromContext(ctx)

	var kbs []types.KnowledgeBaseSummary
	pager := bedrockagent.NewListKnowledgeBasesPaginator(d.api, &bedrockagent.ListKnowledgeBasesInput{
		MaxResults: aws.Int32(listPageSize),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, &DirectoryUnavailableError{Err: fmt.Errorf("list knowledge bases: %w", err)}
		}
		kbs = append(kbs, page.KnowledgeBaseSummaries...)
	}

	valid := make([]bool, len(kbs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for i, kb := range kbs {
		g.Go(func() error {
			ok, err := d.usable(gctx, logger, kb)
			if err != nil {
				return err
			}
			valid[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &DirectoryUnavailableError{Err: err}
	}

	summaries := make([]Summary, 0, len(kbs))
	for i, kb := range kbs {
		if !valid[i] {
			continue
		}
		summaries = append(summaries, Summary{
			ID:          aws.ToString(kb.KnowledgeBaseId),
			Name:        aws.ToString(kb.Name),
			Description: aws.ToString(kb.Description),
		})
	}
	return summaries, nil
}

func (d *Directory) usable(ctx context.Context, logger *slog.Logger, kb types.KnowledgeBaseSummary) (bool, error) {
	id := aws.ToString(kb.KnowledgeBaseId)
	logger = logger.With(slog.String("kb_id", id), slog.String("name", aws.ToString(kb.Name)))

	detail, err := d.api.GetKnowledgeBase(ctx, &bedrockagent.GetKnowledgeBaseInput{
		KnowledgeBaseId: kb.KnowledgeBaseId,
	})
	if err != nil {
		return false, fmt.Errorf("get knowledge base %s: %w", id, err)
	}
	if kbType := knowledgeBaseType(detail); kbType != types.KnowledgeBaseTypeVector {
		logger.DebugContext(ctx, "skipping non-vector knowledge base", slog.String("type", string(kbType)))
		return false, nil
	}

	sources, err := d.api.ListDataSources(ctx, &bedrockagent.ListDataSourcesInput{
		KnowledgeBaseId: kb.KnowledgeBaseId,
		MaxResults:      aws.Int32(listPageSize),
	})
	if err != nil {
		return false, fmt.Errorf("list data sources of %s: %w", id, err)
	}
	if len(sources.DataSourceSummaries) == 0 {
		logger.WarnContext(ctx, "vector knowledge base has no data source")
		return false, nil
	}
	dataSourceID := sources.DataSourceSummaries[0].DataSourceId

	docs, err := d.api.ListKnowledgeBaseDocuments(ctx, &bedrockagent.ListKnowledgeBaseDocumentsInput{
		KnowledgeBaseId: kb.KnowledgeBaseId,
		DataSourceId:    dataSourceID,
		MaxResults:      aws.Int32(listPageSize),
	})
	if err != nil {
		return false, fmt.Errorf("list documents of %s: %w", id, err)
	}
	// An empty page with a next token still has documents on later pages.
	if len(docs.DocumentDetails) == 0 && docs.NextToken == nil {
		logger.WarnContext(ctx, "no documents found in knowledge base, add files to the data source or sync it",
			slog.String("data_source_id", aws.ToString(dataSourceID)),
		)
		return false, nil
	}

	logger.InfoContext(ctx, "found vector knowledge base",
		slog.Int("documents", len(docs.DocumentDetails)),
		slog.Bool("more_documents", docs.NextToken != nil),
	)
	return true, nil
}

func knowledgeBaseType(out *bedrockagent.GetKnowledgeBaseOutput) types.KnowledgeBaseType {
	if out == nil || out.KnowledgeBase == nil || out.KnowledgeBase.KnowledgeBaseConfiguration == nil {
		return ""
	}
	return out.KnowledgeBase.KnowledgeBaseConfiguration.Type
}
