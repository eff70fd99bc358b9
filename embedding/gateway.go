// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package embedding

import (
	"context"

	"github.com/go-a2a/ragroute/internal/gateway"
)

// Gateway is an [Embedder] backed by the OpenAI-compatible embeddings API of the request gateway.
type Gateway struct {
	client *gateway.Client
	model  string
}

var _ Embedder = (*Gateway)(nil)

// NewGateway returns a [Gateway] embedder for model.
func NewGateway(client *gateway.Client, model string) *Gateway {
	return &Gateway{client: client, model: model}
}

// NewGatewayFromURL returns a [Gateway] embedder talking to the gateway at gatewayURL.
func NewGatewayFromURL(gatewayURL, apiKey, model string, opts ...gateway.Option) (*Gateway, error) {
	client, err := gateway.NewClient(gatewayURL, apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return NewGateway(client, model), nil
}

// Model implements [Embedder].
func (g *Gateway) Model() string {
	return g.model
}

// Embed implements [Embedder].
func (g *Gateway) Embed(ctx context.Context, text string) ([]float32, error) {
	return g.client.Embed(ctx, g.model, text)
}
