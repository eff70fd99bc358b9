// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-a2a/ragroute/guardrail"
	"github.com/go-a2a/ragroute/internal/metrics"
	"github.com/go-a2a/ragroute/knowledgebase"
	"github.com/go-a2a/ragroute/pkg/logging"
)

// GuardrailLister lists guardrails. It is implemented by [*guardrail.Lister].
type GuardrailLister interface {
	List(ctx context.Context) ([]guardrail.Summary, error)
}

// KnowledgeBaseLister lists usable knowledge bases. It is implemented by [*knowledgebase.Directory].
type KnowledgeBaseLister interface {
	ListValid(ctx context.Context) ([]knowledgebase.Summary, error)
}

var (
	_ GuardrailLister     = (*guardrail.Lister)(nil)
	_ GuardrailLister     = guardrail.Static(nil)
	_ KnowledgeBaseLister = (*knowledgebase.Directory)(nil)
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP surface of the service.
type Server struct {
	guardrails     GuardrailLister
	knowledgeBases KnowledgeBaseLister

	logger   *slog.Logger
	timeout  time.Duration
	recorder *metrics.Recorder
	gatherer prometheus.Gatherer

	engine *gin.Engine
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the base logger of every request.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRequestTimeout bounds the handling of each request. Zero disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// WithMetrics records HTTP metrics with recorder and serves gatherer on /metrics.
func WithMetrics(recorder *metrics.Recorder, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.recorder = recorder
		s.gatherer = gatherer
	}
}

// New returns a [Server] answering from guardrails and knowledgeBases.
func New(guardrails GuardrailLister, knowledgeBases KnowledgeBaseLister, opts ...Option) *Server {
	s := &Server{
		guardrails:     guardrails,
		knowledgeBases: knowledgeBases,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler of s.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestContext())
	if s.recorder != nil {
		r.Use(s.observe())
	}

	r.GET("/health", s.health)
	bedrock := r.Group("/bedrock")
	{
		bedrock.GET("/guardrails", s.listGuardrails)
		bedrock.GET("/knowledge_bases", s.listKnowledgeBases)
	}
	if s.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}
	return r
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "http server listening", slog.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	s.logger.InfoContext(shutdownCtx, "http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listGuardrails(c *gin.Context) {
	ctx := c.Request.Context()
	summaries, err := s.guardrails.List(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(summaries))
}

func (s *Server) listKnowledgeBases(c *gin.Context) {
	ctx := c.Request.Context()
	summaries, err := s.knowledgeBases.ListValid(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(summaries))
}

// fail reports err as an internal error.
func (s *Server) fail(c *gin.Context, err error) {
	ctx := c.Request.Context()
	logging.FromContext(ctx).ErrorContext(ctx, "request failed",
		slog.String("route", c.FullPath()),
		slog.String("error", err.Error()),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
