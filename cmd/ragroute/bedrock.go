// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent"
	"github.com/spf13/cobra"

	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/guardrail"
	"github.com/go-a2a/ragroute/knowledgebase"
	"github.com/go-a2a/ragroute/server"
)

func newKnowledgeBasesCommand(a *app) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:     "knowledge-bases",
		Aliases: []string{"kb"},
		Short:   "List the usable vector knowledge bases",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			awsCfg, err := a.cfg.AWS(ctx, "")
			if err != nil {
				return err
			}
			dir := knowledgebase.NewDirectory(bedrockagent.NewFromConfig(awsCfg), knowledgebase.WithConcurrency(concurrency))
			kbs, err := dir.ListValid(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), kbs)
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "knowledge bases inspected at once")
	return cmd
}

func newGuardrailsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "guardrails",
		Short: "List the guardrails served by the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			lister, err := a.guardrailLister(ctx)
			if err != nil {
				return err
			}
			guardrails, err := lister.List(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), guardrails)
		},
	}
}

// guardrailLister returns the guardrail source selected by the configuration.
func (a *app) guardrailLister(ctx context.Context) (server.GuardrailLister, error) {
	if a.cfg.GuardrailSource != config.GuardrailSourceBedrock {
		return guardrail.NewStatic(a.cfg.Guardrails...), nil
	}
	awsCfg, err := a.cfg.AWS(ctx, "")
	if err != nil {
		return nil, err
	}
	return guardrail.NewLister(bedrock.NewFromConfig(awsCfg)), nil
}
