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

package metrics

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option defines functional options for Recorder configuration.
type Option func(*Recorder)

// WithPrometheus selects the Prometheus provider (the default). Metrics are
// registered on a private registry exposed through Recorder.Handler, so two
// Recorders never fight over the global registry.
func WithPrometheus() Option {
	return func(r *Recorder) {
		r.provider = PrometheusProvider
	}
}

// WithStdout selects the stdout provider, which periodically prints metrics.
// Intended for development and tests.
func WithStdout() Option {
	return func(r *Recorder) {
		r.provider = StdoutProvider
	}
}

// WithMeterProvider supplies a custom OpenTelemetry meter provider. The
// provider options (WithPrometheus, WithStdout) are ignored and the caller
// owns the provider's lifecycle.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(r *Recorder) {
		r.meterProvider = provider
		r.customMeterProvider = true
	}
}

// WithGlobalMeterProvider registers the meter provider as the global
// OpenTelemetry meter provider. Off by default so multiple Recorders can
// coexist in one process.
func WithGlobalMeterProvider() Option {
	return func(r *Recorder) {
		r.registerGlobal = true
	}
}

// WithServiceName sets the service.name attribute on metrics and spans.
func WithServiceName(name string) Option {
	return func(r *Recorder) {
		r.serviceName = name
	}
}

// WithServiceVersion sets the service.version attribute on metrics and spans.
func WithServiceVersion(version string) Option {
	return func(r *Recorder) {
		r.serviceVersion = version
	}
}

// WithExportInterval sets the export interval for the stdout provider.
func WithExportInterval(interval time.Duration) Option {
	return func(r *Recorder) {
		r.exportInterval = interval
	}
}

// WithTracing enables span creation around every observed request. Spans go
// to a stdout exporter unless WithTracerProvider overrides it.
func WithTracing() Option {
	return func(r *Recorder) {
		r.tracingEnabled = true
	}
}

// WithTracerProvider supplies a custom tracer provider for WithTracing.
// The caller owns the provider's lifecycle; Shutdown leaves it alone.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(r *Recorder) {
		r.tracerProvider = provider
		r.customTracerProvider = true
	}
}

// WithAccessLogger sets the slog logger used for access log lines and
// request-scoped handler loggers. Without one, access logging is off and
// handlers receive a no-op logger.
func WithAccessLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.accessLogger = logger
	}
}

// WithExcludePaths excludes exact request paths from metrics, traces, and
// access logs. Typical candidates: /health, /metrics.
func WithExcludePaths(paths ...string) Option {
	return func(r *Recorder) {
		for _, p := range paths {
			r.excludePaths[p] = struct{}{}
		}
	}
}
