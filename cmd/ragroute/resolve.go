// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/embedding"
	"github.com/go-a2a/ragroute/evaluation"
)

// resolution describes the backends selected for an experiment.
type resolution struct {
	Evaluator struct {
		Key        string `json:"key"`
		JudgeModel string `json:"judge_model"`
		Embedding  string `json:"embedding_model"`
	} `json:"evaluator"`
	Embedder struct {
		Key   string `json:"key"`
		Model string `json:"model"`
	} `json:"embedder"`
}

func newResolveCommand(a *app) *cobra.Command {
	var (
		list           bool
		experimentFile string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show the evaluation and embedding backends of an experiment",
		Example: `  # List every registered backend
  ragroute resolve --list

  # Resolve the backends of an experiment
  ragroute resolve --experiment exp.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if list {
				return listBackends(cmd)
			}
			if experimentFile == "" {
				return errors.New("one of --list or --experiment is required")
			}

			exp := &config.Experiment{}
			if err := readJSONFile(cmd, experimentFile, exp); err != nil {
				return err
			}
			return a.resolve(cmd, exp)
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list the registered backends")
	cmd.Flags().StringVar(&experimentFile, "experiment", "", "experiment configuration JSON file, - for stdin")
	cmd.MarkFlagsMutuallyExclusive("list", "experiment")
	return cmd
}

func listBackends(cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	for _, key := range evaluation.DefaultRegistry().Keys() {
		if _, err := fmt.Fprintln(w, key); err != nil {
			return err
		}
	}
	for _, key := range embedding.DefaultRegistry().Keys() {
		if _, err := fmt.Fprintln(w, key); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) resolve(cmd *cobra.Command, exp *config.Experiment) error {
	ctx := cmd.Context()

	evaluator, err := evaluation.NewResolver(nil, a.cfg).Resolve(ctx, exp)
	if err != nil {
		return err
	}
	embedder, err := embedding.NewResolver(nil, a.cfg).Resolve(ctx, exp)
	if err != nil {
		return err
	}

	var out resolution
	out.Evaluator.Key = evaluation.Key(exp).String()
	out.Evaluator.JudgeModel = evaluator.Judge().Model()
	out.Evaluator.Embedding = evaluator.Embedder().Model()
	out.Embedder.Key = embedding.Key(exp).String()
	out.Embedder.Model = embedder.Model()
	return printJSON(cmd.OutOrStdout(), out)
}
