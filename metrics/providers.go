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
	"fmt"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// initializeProvider initializes the metrics provider based on configuration.
func (r *Recorder) initializeProvider() error {
	if r.customMeterProvider {
		if r.meterProvider == nil {
			return fmt.Errorf("custom meter provider is nil")
		}
		r.meter = r.meterProvider.Meter(instrumentationName)
		return nil
	}

	switch r.provider {
	case PrometheusProvider:
		return r.initPrometheusProvider()
	case StdoutProvider:
		return r.initStdoutProvider()
	default:
		return fmt.Errorf("unsupported metrics provider: %s", r.provider)
	}
}

// initPrometheusProvider initializes the Prometheus metrics provider on a
// private registry to avoid conflicts with the global one.
func (r *Recorder) initPrometheusProvider() error {
	r.prometheusRegistry = promclient.NewRegistry()

	exporter, err := prometheus.New(
		prometheus.WithRegisterer(r.prometheusRegistry),
	)
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(r.resource()),
		sdkmetric.WithReader(exporter),
	)
	r.meterProvider = provider
	r.trackShutdown(provider.Shutdown)

	r.prometheusHandler = promhttp.HandlerFor(
		r.prometheusRegistry,
		promhttp.HandlerOpts{},
	)

	if r.registerGlobal {
		otel.SetMeterProvider(r.meterProvider)
	}

	r.meter = r.meterProvider.Meter(instrumentationName)
	return nil
}

// initStdoutProvider initializes the stdout metrics provider.
func (r *Recorder) initStdoutProvider() error {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(
		exporter,
		sdkmetric.WithInterval(r.exportInterval),
	)
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(r.resource()),
		sdkmetric.WithReader(reader),
	)
	r.meterProvider = provider
	r.trackShutdown(provider.Shutdown)

	if r.registerGlobal {
		otel.SetMeterProvider(r.meterProvider)
	}

	r.meter = r.meterProvider.Meter(instrumentationName)
	return nil
}

// initializeTracing sets up a stdout span exporter. Spans are batched; the
// provider is flushed on Shutdown. A provider supplied through
// WithTracerProvider is used as-is.
func (r *Recorder) initializeTracing() error {
	if r.customTracerProvider {
		return nil
	}
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return fmt.Errorf("failed to create stdout trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(r.resource()),
		sdktrace.WithBatcher(exporter),
	)
	r.tracerProvider = provider
	r.trackShutdown(provider.Shutdown)
	return nil
}

// resource describes this service on exported metrics and spans.
func (r *Recorder) resource() *resource.Resource {
	attrs := []attribute.KeyValue{
		attribute.String("service.name", r.serviceName),
	}
	if r.serviceVersion != "" {
		attrs = append(attrs, attribute.String("service.version", r.serviceVersion))
	}
	return resource.NewSchemaless(attrs...)
}
