// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/go-json-experiment/json"
	deepcopy "github.com/tiendc/go-deepcopy"
)

// DefaultGatewayTemperature is the judge temperature used by gateway evaluators when the
// experiment does not set one.
const DefaultGatewayTemperature = 0.4

// Experiment is the runtime configuration of a single experiment execution.
type Experiment struct {
	ExecutionID  string `json:"execution_id,omitempty"`
	ExperimentID string `json:"experiment_id,omitempty"`

	// Embedding and retrieval.
	EmbeddingService  string         `json:"embedding_service,omitempty"`
	EmbeddingModel    string         `json:"embedding_model,omitempty"`
	VectorDimension   int            `json:"vector_dimension,omitzero"`
	RetrievalService  string         `json:"retrieval_service,omitempty"`
	RetrievalModel    string         `json:"retrieval_model,omitempty"`
	IndexID           string         `json:"index_id,omitempty"`
	IndexingAlgorithm string         `json:"indexing_algorithm,omitempty"`
	KNN               int            `json:"knn_num,omitzero"`
	ChunkingStrategy  string         `json:"chunking_strategy,omitempty"`
	ChunkSize         int            `json:"chunk_size,omitzero"`
	ChunkOverlap      int            `json:"chunk_overlap,omitzero"`
	KBData            map[string]any `json:"kb_data,omitempty"`
	GroundTruthData   map[string]any `json:"gt_data,omitempty"`

	// TempRetrievalLLM is the sampling temperature of the answering model.
	TempRetrievalLLM float64 `json:"temp_retrieval_llm,omitzero"`

	// AWSRegion overrides [Config.AWSRegion] for this experiment.
	AWSRegion string `json:"aws_region,omitempty"`

	// Few-shot prompting.
	NShotPrompts     int           `json:"n_shot_prompts,omitzero"`
	NShotPromptGuide *FewShotGuide `json:"n_shot_prompt_guide,omitempty"`

	// Evaluation.
	EvalService              string   `json:"eval_service,omitempty"`
	EvalRetrievalModel       string   `json:"eval_retrieval_model,omitempty"`
	EvalRetrievalTemperature *float64 `json:"eval_retrieval_temperature,omitempty"`
	EvalEmbeddingModel       string   `json:"eval_embedding_model,omitempty"`

	// Gateway indirection.
	GatewayEnabled bool   `json:"gateway_enabled,omitzero"`
	GatewayURL     string `json:"gateway_url,omitempty"`
	GatewayAPIKey  string `json:"gateway_api_key,omitempty"`
}

// ParseExperiment decodes an [Experiment] from JSON.
func ParseExperiment(data []byte) (*Experiment, error) {
	exp := &Experiment{}
	if err := json.Unmarshal(data, exp); err != nil {
		return nil, fmt.Errorf("decode experiment: %w", err)
	}
	return exp, nil
}

// Clone returns a deep copy of e.
func (e *Experiment) Clone() (*Experiment, error) {
	if e == nil {
		return nil, nil
	}
	var out Experiment
	if err := deepcopy.Copy(&out, e); err != nil {
		return nil, fmt.Errorf("clone experiment: %w", err)
	}
	return &out, nil
}

// Region returns the experiment region or fallback when unset.
func (e *Experiment) Region(fallback string) string {
	if e.AWSRegion != "" {
		return e.AWSRegion
	}
	return fallback
}

// JudgeTemperature returns the evaluator judge temperature or fallback when unset.
func (e *Experiment) JudgeTemperature(fallback float64) float64 {
	if e.EvalRetrievalTemperature != nil {
		return *e.EvalRetrievalTemperature
	}
	return fallback
}
