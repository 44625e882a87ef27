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

// App is the application capability the router consumes. It supplies the
// middleware alias table and name-based service resolution; the router never
// reaches into the container beyond these two calls.
type App interface {
	// RouteMiddleware returns the alias table mapping each middleware alias
	// to one or more concrete handler identifiers.
	RouteMiddleware() map[string][]string

	// Resolve returns the service registered under name.
	Resolve(name string) (any, error)
}

// EventDispatcher receives event-listener registrations. The router is a
// pass-through: it forwards Listen calls and applies no logic of its own.
type EventDispatcher interface {
	Listen(event string, handler func(args ...any))
}

// EventDispatcherFunc is a function adapter for EventDispatcher.
type EventDispatcherFunc func(event string, handler func(args ...any))

func (f EventDispatcherFunc) Listen(event string, handler func(args ...any)) {
	f(event, handler)
}
