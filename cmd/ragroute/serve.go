// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/internal/metrics"
	"github.com/go-a2a/ragroute/knowledgebase"
	"github.com/go-a2a/ragroute/pkg/logging"
	"github.com/go-a2a/ragroute/server"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			awsCfg, err := a.cfg.AWS(ctx, "")
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			guardrails, err := a.guardrailLister(ctx)
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			srv := server.New(
				guardrails,
				knowledgebase.NewDirectory(bedrockagent.NewFromConfig(awsCfg)),
				server.WithLogger(logging.FromContext(ctx)),
				server.WithRequestTimeout(a.cfg.RequestTimeout),
				server.WithMetrics(metrics.NewHTTPRecorder(reg), reg),
			)
			return srv.Run(ctx, a.cfg.HTTPAddr)
		},
	}

	flags := cmd.Flags()
	flags.String("http-addr", config.Default().HTTPAddr, "listen address")
	flags.Duration("request-timeout", config.Default().RequestTimeout, "per-request timeout, 0 disables it")
	bindFlags(a.v, flags, map[string]string{
		"http_addr":       "http-addr",
		"request_timeout": "request-timeout",
	})
	return cmd
}
