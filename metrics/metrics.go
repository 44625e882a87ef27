// Copyright 2026 The Octavo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics implements the router's ObservabilityRecorder with
// OpenTelemetry instruments: request count, duration, and response size,
// exported through Prometheus or stdout, plus optional tracing and slog
// access logging.
//
// Basic usage:
//
//	rec, err := metrics.New(
//	    metrics.WithPrometheus(),
//	    metrics.WithServiceName("blog-api"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r := router.MustNew(router.WithObservability(rec))
//	http.Handle("/metrics", rec.Handler())
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	promclient "github.com/prometheus/client_golang/prometheus"
)

// DefaultDurationBuckets are histogram boundaries for request duration in
// seconds, covering sub-millisecond to 10 second responses.
var DefaultDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// DefaultSizeBuckets are histogram boundaries for response size in bytes.
var DefaultSizeBuckets = []float64{100, 1000, 10000, 100000, 1000000, 10000000}

// Provider represents the available metrics providers.
type Provider string

const (
	// PrometheusProvider exports metrics through a private Prometheus
	// registry (default).
	PrometheusProvider Provider = "prometheus"
	// StdoutProvider periodically dumps metrics to stdout (development).
	StdoutProvider Provider = "stdout"
)

// Recorder holds OpenTelemetry metrics configuration and runtime state.
// All methods are safe for concurrent use.
//
// By default the Recorder does NOT touch the global OpenTelemetry
// providers, so multiple Recorder instances coexist in one process.
type Recorder struct {
	provider       Provider
	serviceName    string
	serviceVersion string
	exportInterval time.Duration
	excludePaths   map[string]struct{}

	meterProvider       metric.MeterProvider
	customMeterProvider bool
	registerGlobal      bool
	meter               metric.Meter

	prometheusRegistry *promclient.Registry
	prometheusHandler  http.Handler

	tracingEnabled       bool
	tracerProvider       trace.TracerProvider
	customTracerProvider bool
	tracer               trace.Tracer

	accessLogger *slog.Logger

	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	responseSize    metric.Int64Histogram

	shutdownFuncs []func(context.Context) error
}

// New creates a Recorder with the given options and initializes its
// provider, instruments, and optional tracer.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		provider:       PrometheusProvider,
		serviceName:    "router",
		exportInterval: 30 * time.Second,
		excludePaths:   make(map[string]struct{}),
		tracerProvider: tracenoop.NewTracerProvider(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.initializeProvider(); err != nil {
		return nil, err
	}
	if err := r.initializeMetrics(); err != nil {
		return nil, err
	}
	if r.tracingEnabled {
		if err := r.initializeTracing(); err != nil {
			return nil, err
		}
	}
	r.tracer = r.tracerProvider.Tracer(instrumentationName)
	return r, nil
}

// MustNew creates a Recorder and panics on configuration errors.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("metrics.MustNew: %v", err))
	}
	return r
}

// Handler returns the Prometheus scrape handler for this Recorder's private
// registry. Returns nil unless the Prometheus provider is active.
func (r *Recorder) Handler() http.Handler {
	return r.prometheusHandler
}

// MeterProvider returns the active meter provider, useful for registering
// additional instruments alongside the router's.
func (r *Recorder) MeterProvider() metric.MeterProvider {
	return r.meterProvider
}

// Shutdown flushes and stops every provider this Recorder owns.
// Custom providers passed in via WithMeterProvider are left alone.
func (r *Recorder) Shutdown(ctx context.Context) error {
	var firstErr error
	for _, fn := range r.shutdownFuncs {
		if err := fn(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// trackShutdown registers a provider shutdown function.
func (r *Recorder) trackShutdown(fn func(context.Context) error) {
	r.shutdownFuncs = append(r.shutdownFuncs, fn)
}

// instrumentationName identifies this package in meter and tracer scopes.
const instrumentationName = "github.com/octavo-web/router/metrics"
