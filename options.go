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

// Option defines functional options for router configuration.
type Option func(*Router)

// WithApp supplies the application capability used for middleware alias
// resolution and name-based handler references.
//
// Example:
//
//	r := router.MustNew(router.WithApp(app))
func WithApp(app App) Option {
	return func(r *Router) {
		r.app = app
	}
}

// WithEventDispatcher supplies the event dispatcher Listen calls are
// forwarded to. Without one, Listen drops registrations and emits a
// diagnostic event.
func WithEventDispatcher(d EventDispatcher) Option {
	return func(r *Router) {
		r.events = d
	}
}

// WithDiagnostics sets a diagnostic handler for the router.
//
// Diagnostic events are optional informational events, such as a middleware
// alias that resolves to nothing. The router functions correctly whether
// diagnostics are collected or not.
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) {
		r.diagnostics = handler
	}
}

// WithObservability sets the observability recorder used for metrics,
// tracing, and access logging. Pass nil to disable all observability.
func WithObservability(recorder ObservabilityRecorder) Option {
	return func(r *Router) {
		r.observability = recorder
	}
}

// WithStrictAliases makes registration fail fast on a middleware alias the
// application's alias table does not know. The default is tolerant: unknown
// aliases contribute nothing to the merged middleware list and are reported
// through the diagnostic handler.
//
// Requires an application capability; New returns an error otherwise.
func WithStrictAliases() Option {
	return func(r *Router) {
		r.strictAliases = true
	}
}

// WithDispatchAll makes Dispatch execute every route matching a request, in
// registration order, instead of stopping at the first match. First match
// wins by default; running multiple route bodies per request is almost
// always surprising, so the run-all policy is opt-in.
func WithDispatchAll() Option {
	return func(r *Router) {
		r.dispatchAll = true
	}
}

// WithNoRoute sets the handler ServeHTTP falls back to when no route claims
// a request. Defaults to http.NotFound. The dispatch core itself treats a
// miss as a non-event; only the HTTP adapter produces a response for it.
func WithNoRoute(handler HandlerFunc) Option {
	return func(r *Router) {
		r.noRouteHandler = handler
	}
}
