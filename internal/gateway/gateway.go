// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// APIPath is appended to the gateway URL to reach the OpenAI-compatible API.
const APIPath = "/api/openai/v1"

const defaultRequestTimeout = 60 * time.Second

// Client calls the OpenAI-compatible API of the gateway.
type Client struct {
	client  openai.Client
	baseURL string
	reqOpts []option.RequestOption
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.reqOpts = append(c.reqOpts, option.WithHTTPClient(hc))
	}
}

// WithRequestTimeout bounds each request attempt.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.reqOpts = append(c.reqOpts, option.WithRequestTimeout(d))
	}
}

// NewClient returns a [Client] for the gateway at gatewayURL.
//
// Failed requests are not retried.
func NewClient(gatewayURL, apiKey string, opts ...Option) (*Client, error) {
	if gatewayURL == "" {
		return nil, errors.New("gateway url is required")
	}

	c := &Client{
		baseURL: strings.TrimSuffix(gatewayURL, "/") + APIPath,
	}
	c.reqOpts = []option.RequestOption{
		option.WithBaseURL(c.baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(defaultRequestTimeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.client = openai.NewClient(c.reqOpts...)
	return c, nil
}

// BaseURL returns the OpenAI-compatible API root of c.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Chat roles understood by the gateway.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat message.
type Message struct {
	Role    string
	Content string
}

// ChatRequest is a chat completion request.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

func (r *ChatRequest) params() openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(r.Model),
		Messages:    make([]openai.ChatCompletionMessageParamUnion, 0, len(r.Messages)),
		Temperature: openai.Float(r.Temperature),
	}
	if r.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(r.MaxTokens))
	}
	for _, m := range r.Messages {
		switch m.Role {
		case RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}
	return params
}

// Chat returns the content of the first choice of a chat completion.
//
// API failures are returned wrapping [*openai.Error].
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, req.params())
	if err != nil {
		return "", fmt.Errorf("gateway chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("gateway chat completion has no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

// Embed returns the embedding of text.
//
// API failures are returned wrapping [*openai.Error].
func (c *Client) Embed(ctx context.Context, model, text string) ([]float32, error) {
	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	})
	if err != nil {
		return nil, fmt.Errorf("gateway embedding failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("gateway embedding response has no data")
	}

	vec := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
