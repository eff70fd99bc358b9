// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-a2a/ragroute/guardrail"
	"github.com/go-a2a/ragroute/internal/metrics"
	"github.com/go-a2a/ragroute/knowledgebase"
	"github.com/go-a2a/ragroute/server"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeGuardrails struct {
	summaries []guardrail.Summary
	err       error

	hadDeadline bool
}

func (f *fakeGuardrails) List(ctx context.Context) ([]guardrail.Summary, error) {
	_, f.hadDeadline = ctx.Deadline()
	return f.summaries, f.err
}

type fakeKnowledgeBases struct {
	summaries []knowledgebase.Summary
	err       error
}

func (f *fakeKnowledgeBases) ListValid(context.Context) ([]knowledgebase.Summary, error) {
	return f.summaries, f.err
}

func do(t *testing.T, h http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_Routes(t *testing.T) {
	guardrails := &fakeGuardrails{
		summaries: []guardrail.Summary{{ID: "g1", Name: "pii", Version: "DRAFT", Status: "READY"}},
	}
	kbs := &fakeKnowledgeBases{
		summaries: []knowledgebase.Summary{{ID: "kb1", Name: "docs", Description: "product docs"}},
	}
	h := server.New(guardrails, kbs).Handler()

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{
			name:     "health",
			path:     "/health",
			wantCode: http.StatusOK,
			wantBody: `{"status":"ok"}`,
		},
		{
			name:     "guardrails",
			path:     "/bedrock/guardrails",
			wantCode: http.StatusOK,
			wantBody: `[{"id":"g1","name":"pii","version":"DRAFT","status":"READY"}]`,
		},
		{
			name:     "knowledge bases",
			path:     "/bedrock/knowledge_bases",
			wantCode: http.StatusOK,
			wantBody: `[{"kb_id":"kb1","name":"docs","description":"product docs"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.path, nil)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if diff := cmp.Diff(tt.wantBody, rec.Body.String()); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestServer_StaticGuardrails(t *testing.T) {
	h := server.New(guardrail.NewStatic("gr-pii", "gr-toxicity"), &fakeKnowledgeBases{}).Handler()

	rec := do(t, h, "/bedrock/guardrails", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	want := `[{"id":"gr-pii"},{"id":"gr-toxicity"}]`
	if diff := cmp.Diff(want, rec.Body.String()); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestServer_EmptyListings(t *testing.T) {
	h := server.New(&fakeGuardrails{}, &fakeKnowledgeBases{}).Handler()

	for _, path := range []string{"/bedrock/guardrails", "/bedrock/knowledge_bases"} {
		rec := do(t, h, path, nil)
		if rec.Code != http.StatusOK || rec.Body.String() != "[]" {
			t.Errorf("GET %s = %d %q, want 200 %q", path, rec.Code, rec.Body.String(), "[]")
		}
	}
}

func TestServer_Errors(t *testing.T) {
	kbErr := &knowledgebase.DirectoryUnavailableError{Err: errors.New("access denied")}
	h := server.New(
		&fakeGuardrails{err: errors.New("throttled")},
		&fakeKnowledgeBases{err: kbErr},
	).Handler()

	tests := []struct {
		path       string
		wantDetail string
	}{
		{path: "/bedrock/guardrails", wantDetail: "throttled"},
		{path: "/bedrock/knowledge_bases", wantDetail: kbErr.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(t, h, tt.path, nil)
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
			}
			var body struct {
				Detail string `json:"detail"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body %q: %v", rec.Body.String(), err)
			}
			if body.Detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", body.Detail, tt.wantDetail)
			}
		})
	}
}

func TestServer_RequestID(t *testing.T) {
	h := server.New(&fakeGuardrails{}, &fakeKnowledgeBases{}).Handler()

	rec := do(t, h, "/health", http.Header{server.RequestIDHeader: {"req-42"}})
	if got := rec.Header().Get(server.RequestIDHeader); got != "req-42" {
		t.Errorf("request id = %q, want %q", got, "req-42")
	}

	rec = do(t, h, "/health", nil)
	if got := rec.Header().Get(server.RequestIDHeader); len(got) != 36 {
		t.Errorf("generated request id = %q, want a uuid", got)
	}
}

func TestServer_RequestTimeout(t *testing.T) {
	guardrails := &fakeGuardrails{}

	do(t, server.New(guardrails, &fakeKnowledgeBases{}).Handler(), "/bedrock/guardrails", nil)
	if guardrails.hadDeadline {
		t.Error("request context has a deadline without a request timeout")
	}

	h := server.New(guardrails, &fakeKnowledgeBases{}, server.WithRequestTimeout(time.Minute)).Handler()
	do(t, h, "/bedrock/guardrails", nil)
	if !guardrails.hadDeadline {
		t.Error("request context has no deadline with a request timeout")
	}
}

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := server.New(
		&fakeGuardrails{err: errors.New("boom")},
		&fakeKnowledgeBases{},
		server.WithMetrics(metrics.NewRecorder(reg), reg),
	).Handler()

	do(t, h, "/health", nil)
	do(t, h, "/bedrock/guardrails", nil)
	do(t, h, "/nowhere", nil)

	rec := do(t, h, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d, want %d", rec.Code, http.StatusOK)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`ragroute_http_requests_total{code="200",route="/health"} 1`,
		`ragroute_http_requests_total{code="500",route="/bedrock/guardrails"} 1`,
		`ragroute_http_requests_total{code="404",route="unmatched"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
