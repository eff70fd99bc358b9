// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/experiment"
	"github.com/go-a2a/ragroute/generator"
	"github.com/go-a2a/ragroute/internal/metrics"
)

type generateOptions struct {
	experimentFile string
	passagesFile   string
	query          string
	defaultPrompt  string
	noLookup       bool
	metricsFile    string
}

func newGenerateCommand(a *app) *cobra.Command {
	var o generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Answer one query with the retrieval model of an experiment",
		Example: `  # Answer with the few-shot guide stored for the experiment
  ragroute generate --experiment exp.json --query "What is RAG?" --passages hits.json

  # Use the guide embedded in exp.json instead of the experiment table
  ragroute generate --experiment exp.json --no-lookup --query "What is RAG?"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd, &o)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.experimentFile, "experiment", "", "experiment configuration JSON file, - for stdin")
	flags.StringVar(&o.passagesFile, "passages", "", "retrieved passages JSON file")
	flags.StringVar(&o.query, "query", "", "query to answer")
	flags.StringVar(&o.defaultPrompt, "default-prompt", "", "system prompt used when the guide has none")
	flags.BoolVar(&o.noLookup, "no-lookup", false, "do not complete the experiment from the experiment table")
	flags.String("experiment-table", config.Default().ExperimentTable, "DynamoDB table of experiment records")
	flags.Duration("endpoint-poll-interval", config.Default().EndpointPollInterval, "delay between endpoint status checks")
	flags.Uint("endpoint-poll-attempts", config.Default().EndpointPollAttempts, "maximum endpoint status checks")
	flags.String("sagemaker-role-arn", "", "execution role used to provision a missing endpoint")
	flags.String("huggingface-image-uri", "", "inference image of provisioned endpoints, defaults to the regional HuggingFace TGI image")
	flags.StringVar(&o.metricsFile, "metrics-textfile", "", "write inference metrics to this file in the text exposition format")
	bindFlags(a.v, flags, map[string]string{
		"experiment_table":       "experiment-table",
		"endpoint_poll_interval": "endpoint-poll-interval",
		"endpoint_poll_attempts": "endpoint-poll-attempts",
		"sagemaker_role_arn":     "sagemaker-role-arn",
		"huggingface_image_uri":  "huggingface-image-uri",
	})
	cobra.CheckErr(cmd.MarkFlagRequired("experiment"))
	cobra.CheckErr(cmd.MarkFlagRequired("query"))
	return cmd
}

func (a *app) generate(cmd *cobra.Command, o *generateOptions) error {
	ctx := cmd.Context()

	exp := &config.Experiment{}
	if err := readJSONFile(cmd, o.experimentFile, exp); err != nil {
		return err
	}
	req := generator.Request{
		Query:         o.query,
		DefaultPrompt: o.defaultPrompt,
	}
	if o.passagesFile != "" {
		if err := readJSONFile(cmd, o.passagesFile, &req.Passages); err != nil {
			return err
		}
	}

	if !o.noLookup {
		if exp.ExperimentID == "" {
			return errors.New("experiment_id is required unless --no-lookup is set")
		}
		awsCfg, err := a.cfg.AWS(ctx, exp.Region(a.cfg.AWSRegion))
		if err != nil {
			return err
		}
		svc := experiment.NewService(dynamodb.NewFromConfig(awsCfg), a.cfg.ExperimentTable, a.cfg.AWSRegion)
		if exp, err = svc.Create(ctx, exp); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	gen, err := generator.ForExperiment(ctx, a.cfg, exp,
		generator.WithRecorder(metrics.NewInferenceRecorder(reg)),
	)
	if err != nil {
		return err
	}
	res, err := gen.Generate(ctx, req)
	if o.metricsFile != "" {
		if werr := prometheus.WriteToTextfile(o.metricsFile, reg); werr != nil {
			return errors.Join(err, fmt.Errorf("failed to write metrics: %w", werr))
		}
	}
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), res)
}
