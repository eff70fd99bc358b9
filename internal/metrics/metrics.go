// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ragroute"

// Outcome labels of a generation.
const (
	OutcomeOK       = "ok"
	OutcomeDegraded = "degraded"
	OutcomeError    = "error"
)

// Recorder records inference and HTTP metrics.
type Recorder struct {
	inferenceLatency *prometheus.HistogramVec
	tokens           *prometheus.CounterVec
	generations      *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

// NewRecorder registers the inference and HTTP collectors with reg and
// returns a [Recorder].
//
// A nil reg uses [prometheus.DefaultRegisterer].
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := NewHTTPRecorder(reg)
	r.registerInference(promauto.With(registerer(reg)))
	return r
}

// NewHTTPRecorder registers only the HTTP collectors with reg. The inference
// methods of the returned [Recorder] are no-ops.
func NewHTTPRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(registerer(reg))

	return &Recorder{
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route and status code.",
			},
			[]string{"route", "code"},
		),
		httpLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
}

// NewInferenceRecorder registers only the inference and generation
// collectors with reg. [Recorder.ObserveHTTP] of the returned [Recorder] is a
// no-op.
func NewInferenceRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{}
	r.registerInference(promauto.With(registerer(reg)))
	return r
}

func registerer(reg prometheus.Registerer) prometheus.Registerer {
	if reg == nil {
		return prometheus.DefaultRegisterer
	}
	return reg
}

func (r *Recorder) registerInference(factory promauto.Factory) {
	r.inferenceLatency = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "inference",
			Name:      "latency_seconds",
			Help:      "Latency of remote model calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"endpoint", "format"},
	)
	r.tokens = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inference",
			Name:      "estimated_tokens_total",
			Help:      "Estimated tokens sent to and generated by remote models.",
		},
		[]string{"endpoint", "direction"},
	)
	r.generations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "generations_total",
			Help:      "Answer generations by outcome.",
		},
		[]string{"endpoint", "outcome"},
	)
}

// ObserveInference records the latency of one remote call.
func (r *Recorder) ObserveInference(endpoint, format string, latency time.Duration) {
	if r.inferenceLatency == nil {
		return
	}
	r.inferenceLatency.WithLabelValues(endpoint, format).Observe(latency.Seconds())
}

// AddTokens records estimated input and output tokens.
func (r *Recorder) AddTokens(endpoint string, input, output int) {
	if r.tokens == nil {
		return
	}
	r.tokens.WithLabelValues(endpoint, "input").Add(float64(input))
	r.tokens.WithLabelValues(endpoint, "output").Add(float64(output))
}

// Generation counts one generation with the given outcome.
func (r *Recorder) Generation(endpoint, outcome string) {
	if r.generations == nil {
		return
	}
	r.generations.WithLabelValues(endpoint, outcome).Inc()
}

// ObserveHTTP records one served HTTP request.
func (r *Recorder) ObserveHTTP(route string, code int, d time.Duration) {
	if r.httpRequests == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	r.httpLatency.WithLabelValues(route).Observe(d.Seconds())
}
