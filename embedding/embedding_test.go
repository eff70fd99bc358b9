// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package embedding_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/ragroute/capability"
	"github.com/go-a2a/ragroute/config"
	"github.com/go-a2a/ragroute/embedding"
)

type stubEmbedder struct {
	backend string
}

func (s stubEmbedder) Model() string { return s.backend }

func (s stubEmbedder) Embed(context.Context, string) ([]float32, error) { return nil, nil }

func TestResolver_SelectsBackendByGatewayFlag(t *testing.T) {
	r := capability.NewRegistry[embedding.Embedder](capability.DomainEmbedder)
	for _, backend := range []string{capability.BackendBedrock, capability.BackendGateway} {
		r.Register(capability.Key{Domain: capability.DomainEmbedder, Service: embedding.Service, Backend: backend},
			func(context.Context, *config.Config, *config.Experiment) (embedding.Embedder, error) {
				return stubEmbedder{backend: backend}, nil
			})
	}
	resolver := embedding.NewResolver(r, config.Default())

	tests := []struct {
		gatewayEnabled bool
		want           string
	}{
		{gatewayEnabled: false, want: capability.BackendBedrock},
		{gatewayEnabled: true, want: capability.BackendGateway},
	}

	for _, tt := range tests {
		got, err := resolver.Resolve(t.Context(), &config.Experiment{GatewayEnabled: tt.gatewayEnabled})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got.Model() != tt.want {
			t.Errorf("Resolve(gateway=%v) backend = %q, want %q", tt.gatewayEnabled, got.Model(), tt.want)
		}
	}
}

func TestResolver_Unregistered(t *testing.T) {
	resolver := embedding.NewResolver(capability.NewRegistry[embedding.Embedder](capability.DomainEmbedder), config.Default())

	_, err := resolver.Resolve(t.Context(), &config.Experiment{GatewayEnabled: true})
	var ue *capability.UnregisteredBackendError
	if !errors.As(err, &ue) {
		t.Fatalf("Resolve() error = %v, want *UnregisteredBackendError", err)
	}
	want := capability.Key{Domain: capability.DomainEmbedder, Service: embedding.Service, Backend: capability.BackendGateway}
	if ue.Key != want {
		t.Errorf("Key = %v, want %v", ue.Key, want)
	}
}

func TestDefaultRegistry(t *testing.T) {
	want := []capability.Key{
		{Domain: capability.DomainEmbedder, Service: embedding.Service, Backend: capability.BackendBedrock},
		{Domain: capability.DomainEmbedder, Service: embedding.Service, Backend: capability.BackendGateway},
	}
	if diff := cmp.Diff(want, embedding.DefaultRegistry().Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_BuiltinGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":[{"embedding":[3,4]}]}`)
	}))
	defer srv.Close()

	exp := &config.Experiment{
		GatewayEnabled: true,
		GatewayURL:     srv.URL,
		GatewayAPIKey:  "k",
		EmbeddingModel: "text-embedding-3-small",
	}
	e, err := embedding.NewResolver(nil, config.Default()).Resolve(t.Context(), exp)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if _, ok := e.(*embedding.Gateway); !ok {
		t.Fatalf("Resolve() = %T, want *embedding.Gateway", e)
	}
	got, err := e.Embed(t.Context(), "x")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if diff := cmp.Diff([]float32{3, 4}, got); diff != "" {
		t.Errorf("Embed() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_BuiltinConstructorErrors(t *testing.T) {
	tests := []struct {
		name string
		exp  *config.Experiment
	}{
		{name: "bedrock unsupported model", exp: &config.Experiment{EmbeddingModel: "unknown"}},
		{name: "bedrock missing model", exp: &config.Experiment{}},
		{name: "gateway missing url", exp: &config.Experiment{GatewayEnabled: true, EmbeddingModel: "m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := embedding.NewResolver(nil, config.Default()).Resolve(t.Context(), tt.exp)
			if err == nil {
				t.Fatal("Resolve() error = nil, want error")
			}
			var ue *capability.UnregisteredBackendError
			if errors.As(err, &ue) {
				t.Errorf("Resolve() error = %v, want constructor failure", err)
			}
		})
	}
}
