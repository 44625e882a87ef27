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

// DiagnosticEvent represents a router diagnostic or anomaly.
//
// Diagnostic events are optional - the router functions correctly whether
// they are collected or not. They provide visibility into edge cases such as
// a middleware alias with no alias-table entry being silently skipped.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagUnknownAlias reports a middleware alias skipped during merge
	// because the application's alias table has no entry for it.
	DiagUnknownAlias DiagnosticKind = "middleware_alias_unknown"

	// DiagUnknownMiddleware reports a resolved middleware identifier with
	// no registered handler at dispatch time.
	DiagUnknownMiddleware DiagnosticKind = "middleware_handler_unknown"

	// DiagNoEventDispatcher reports a Listen call dropped because no event
	// dispatcher is configured.
	DiagNoEventDispatcher DiagnosticKind = "event_dispatcher_missing"
)

// DiagnosticHandler receives diagnostic events from the router.
// Implementations may log, emit metrics, or ignore them.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := router.MustNew(router.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}
