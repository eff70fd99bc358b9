// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/bytedance/sonic"

	"github.com/go-a2a/ragroute/config"
)

// InvokeModelAPI is the subset of the Bedrock Runtime client used by [Bedrock].
type InvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

var _ InvokeModelAPI = (*bedrockruntime.Client)(nil)

// Bedrock model ids with a known request and response shape.
const (
	ModelTitanTextV2          = "amazon.titan-embed-text-v2:0"
	ModelCohereEnglishV3      = "cohere.embed-english-v3"
	ModelCohereMultilingualV3 = "cohere.embed-multilingual-v3"
)

// DefaultDimensions is the Titan vector size used when none is configured.
const DefaultDimensions = 1024

// ErrUnsupportedModel is returned for Bedrock embedding models without a known shape.
var ErrUnsupportedModel = errors.New("unsupported embedding model")

type codec interface {
	encode(text string, dims int, normalize bool) ([]byte, error)
	decode(body []byte) ([]float32, error)
}

var codecs = map[string]codec{
	ModelTitanTextV2:          titanCodec{},
	ModelCohereEnglishV3:      cohereCodec{},
	ModelCohereMultilingualV3: cohereCodec{},
}

type titanRequest struct {
	InputText  string `json:"inputText"`
	Dimensions int    `json:"dimensions"`
	Normalize  bool   `json:"normalize"`
}

type titanResponse struct {
	Embedding           []float32 `json:"embedding"`
	InputTextTokenCount int       `json:"inputTextTokenCount"`
}

type titanCodec struct{}

func (titanCodec) encode(text string, dims int, normalize bool) ([]byte, error) {
	return sonic.ConfigFastest.Marshal(titanRequest{InputText: text, Dimensions: dims, Normalize: normalize})
}

func (titanCodec) decode(body []byte) ([]float32, error) {
	var resp titanResponse
	if err := sonic.ConfigFastest.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embedding) == 0 {
		return nil, errors.New("response has no embedding")
	}
	return resp.Embedding, nil
}

type cohereRequest struct {
	Texts     []string `json:"texts"`
	InputType string   `json:"input_type"`
}

type cohereResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

type cohereCodec struct{}

func (cohereCodec) encode(text string, _ int, _ bool) ([]byte, error) {
	return sonic.ConfigFastest.Marshal(cohereRequest{Texts: []string{text}, InputType: "search_document"})
}

func (cohereCodec) decode(body []byte) ([]float32, error) {
	var resp cohereResponse
	if err := sonic.ConfigFastest.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0]) == 0 {
		return nil, errors.New("response has no embeddings")
	}
	return resp.Embeddings[0], nil
}

// Bedrock is an [Embedder] backed by Bedrock Runtime InvokeModel.
type Bedrock struct {
	api       InvokeModelAPI
	model     string
	codec     codec
	dims      int
	normalize bool
}

var _ Embedder = (*Bedrock)(nil)

// BedrockOption configures a [Bedrock] embedder.
type BedrockOption func(*Bedrock)

// WithDimensions sets the output vector size for models that support it. Non-positive values
// keep [DefaultDimensions].
func WithDimensions(n int) BedrockOption {
	return func(b *Bedrock) {
		if n > 0 {
			b.dims = n
		}
	}
}

// WithNormalize sets whether the model normalizes its output vector.
func WithNormalize(normalize bool) BedrockOption {
	return func(b *Bedrock) {
		b.normalize = normalize
	}
}

// NewBedrock returns a [Bedrock] embedder for model.
//
// It fails with an error wrapping [ErrUnsupportedModel] for models without a known shape.
func NewBedrock(api InvokeModelAPI, model string, opts ...BedrockOption) (*Bedrock, error) {
	c, ok := codecs[model]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, model)
	}

	b := &Bedrock{
		api:       api,
		model:     model,
		codec:     c,
		dims:      DefaultDimensions,
		normalize: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// NewBedrockFromConfig returns a [Bedrock] embedder using a Bedrock Runtime client for region.
func NewBedrockFromConfig(ctx context.Context, cfg *config.Config, region, model string, opts ...BedrockOption) (*Bedrock, error) {
	if _, ok := codecs[model]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, model)
	}
	awsCfg, err := cfg.AWS(ctx, region)
	if err != nil {
		return nil, err
	}
	return NewBedrock(bedrockruntime.NewFromConfig(awsCfg), model, opts...)
}

// Model implements [Embedder].
func (b *Bedrock) Model() string {
	return b.model
}

// Embed implements [Embedder].
func (b *Bedrock) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := b.codec.encode(text, b.dims, b.normalize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode embedding request: %w", err)
	}

	out, err := b.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.model),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke embedding model %q: %w", b.model, err)
	}

	vec, err := b.codec.decode(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode embedding of model %q: %w", b.model, err)
	}
	return vec, nil
}
