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
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/octavo-web/router"
)

// requestState is the opaque state token carried through one observed
// request, from OnRequestStart to OnRequestEnd.
type requestState struct {
	start  time.Time
	span   trace.Span
	method string
	path   string
}

// initializeMetrics creates the HTTP instruments.
func (r *Recorder) initializeMetrics() error {
	var err error

	r.requestCount, err = r.meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create request counter: %w", err)
	}

	r.requestDuration, err = r.meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultDurationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create duration histogram: %w", err)
	}

	r.responseSize, err = r.meter.Int64Histogram(
		"http_response_size_bytes",
		metric.WithDescription("HTTP response size in bytes"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(DefaultSizeBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create size histogram: %w", err)
	}

	return nil
}

// OnRequestStart begins the observability lifecycle for a request.
// Excluded paths return a nil state: the request still gets an enriched
// context when tracing is on, but no metrics or access log entry.
func (r *Recorder) OnRequestStart(ctx context.Context, req *http.Request) (context.Context, any) {
	state := &requestState{
		start:  time.Now(),
		method: req.Method,
		path:   req.URL.Path,
	}

	if r.tracingEnabled {
		// The route template is unknown before matching; the span is named
		// by method now and labeled with http.route at request end.
		ctx, state.span = r.tracer.Start(ctx, req.Method,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("url.path", req.URL.Path),
			),
		)
	}

	if _, excluded := r.excludePaths[req.URL.Path]; excluded {
		if state.span != nil {
			state.span.End()
		}
		return ctx, nil
	}
	return ctx, state
}

// WrapResponseWriter wraps the writer so status and size can be recorded.
func (r *Recorder) WrapResponseWriter(w http.ResponseWriter, state any) http.ResponseWriter {
	if state == nil {
		return w
	}
	return router.NewResponseWriter(w)
}

// OnRequestEnd records metrics, finishes the span, and emits the access log
// line. routePattern is the matched pattern or the router's not-found
// sentinel; raw paths never reach metric labels.
func (r *Recorder) OnRequestEnd(ctx context.Context, state any, writer http.ResponseWriter, routePattern string) {
	st, ok := state.(*requestState)
	if !ok || st == nil {
		return
	}

	duration := time.Since(st.start)
	status := 0
	var size int64
	if info, ok := writer.(router.ResponseInfo); ok {
		status = info.StatusCode()
		size = info.Size()
	}

	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", st.method),
		attribute.String("http.route", routePattern),
		attribute.Int("http.response.status_code", status),
	}
	opt := metric.WithAttributes(attrs...)
	r.requestCount.Add(ctx, 1, opt)
	r.requestDuration.Record(ctx, duration.Seconds(), opt)
	if size > 0 {
		r.responseSize.Record(ctx, size, opt)
	}

	if st.span != nil {
		st.span.SetAttributes(attrs...)
		if status >= http.StatusInternalServerError {
			st.span.SetStatus(codes.Error, http.StatusText(status))
		}
		st.span.End()
	}

	if r.accessLogger != nil {
		r.accessLogger.LogAttrs(ctx, slog.LevelInfo, "request",
			slog.String("method", st.method),
			slog.String("path", st.path),
			slog.String("route", routePattern),
			slog.Int("status", status),
			slog.Int64("bytes", size),
			slog.Duration("duration", duration),
		)
	}
}

// BuildRequestLogger returns a request-scoped logger carrying the method,
// path, and matched route. Handlers reach it through Context.Logger.
func (r *Recorder) BuildRequestLogger(ctx context.Context, req *http.Request, routePattern string) *slog.Logger {
	if r.accessLogger == nil {
		return router.NoopLogger()
	}
	logger := r.accessLogger.With(
		"method", req.Method,
		"path", req.URL.Path,
		"route", routePattern,
	)
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		logger = logger.With("trace_id", span.SpanContext().TraceID().String())
	}
	return logger
}

// Compile-time check that Recorder implements the router's recorder contract.
var _ router.ObservabilityRecorder = (*Recorder)(nil)
