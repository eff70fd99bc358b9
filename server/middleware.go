// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/go-a2a/ragroute/pkg/logging"
)

// RequestIDHeader carries the request id. An incoming value is kept, otherwise one is generated.
const RequestIDHeader = "X-Request-Id"

// unmatchedRoute labels requests that hit no route.
const unmatchedRoute = "unmatched"

// requestContext tags the request with an id, a request-scoped logger and the request timeout.
func (s *Server) requestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		logger := s.logger.With(slog.String("request_id", id))
		ctx := logging.NewContext(c.Request.Context(), logger)
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		logger.DebugContext(ctx, "request handled",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

// observe records the HTTP metrics of every request.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		s.recorder.ObserveHTTP(route, c.Writer.Status(), time.Since(start))
	}
}
