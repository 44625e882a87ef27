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

package router

import (
	"context"
	"log/slog"
	"net/http"
)

// ObservabilityRecorder provides unified observability lifecycle hooks for
// HTTP requests: metrics, distributed tracing, and access logging in a
// single lifecycle.
//
// Lifecycle:
//  1. Router calls OnRequestStart(ctx, req) -> (enrichedCtx, state).
//     The enriched context is always attached to the request; state is an
//     opaque token, nil meaning the request is excluded from observability.
//  2. Router wraps the ResponseWriter via WrapResponseWriter only when
//     state != nil.
//  3. Handlers run; BuildRequestLogger supplies their request-scoped logger.
//  4. Router calls OnRequestEnd(ctx, state, writer, routePattern) only when
//     state != nil. routePattern is the matched route pattern or the
//     "_not_found" sentinel; implementations should label metrics with it,
//     never with the raw path, to keep cardinality bounded.
//
// Thread safety: all methods must be safe for concurrent use.
type ObservabilityRecorder interface {
	// OnRequestStart is called before routing begins. Returns an enriched
	// context (e.g. carrying a trace span) and an opaque state token, nil
	// to exclude the request from wrapping and OnRequestEnd.
	OnRequestStart(ctx context.Context, req *http.Request) (context.Context, any)

	// WrapResponseWriter wraps the writer to capture response metadata.
	// The wrapped writer should implement ResponseInfo. Must return the
	// original writer unchanged when state is nil.
	WrapResponseWriter(w http.ResponseWriter, state any) http.ResponseWriter

	// OnRequestEnd completes the lifecycle: record metrics, finish spans,
	// emit the access log line. The writer may implement ResponseInfo.
	OnRequestEnd(ctx context.Context, state any, writer http.ResponseWriter, routePattern string)

	// BuildRequestLogger returns the request-scoped logger handed to
	// handlers through Context.Logger.
	BuildRequestLogger(ctx context.Context, req *http.Request, routePattern string) *slog.Logger
}

// ResponseInfo is implemented by response writers that track response
// metadata, letting OnRequestEnd extract status and size.
type ResponseInfo interface {
	StatusCode() int
	Size() int64
}
