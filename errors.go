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

import "errors"

var (
	// ErrEmptyMethodSet indicates that a route was registered without any HTTP methods.
	ErrEmptyMethodSet = errors.New("route method set is empty")

	// ErrNoHandlers indicates that a route was registered without an action handler.
	ErrNoHandlers = errors.New("route has no handlers")

	// ErrUnknownMiddlewareAlias indicates that a middleware alias has no entry
	// in the application's alias table. Only returned in strict alias mode.
	ErrUnknownMiddlewareAlias = errors.New("unknown middleware alias")

	// ErrAttributesFrozen indicates an attempt to set a route's group attributes twice.
	ErrAttributesFrozen = errors.New("route attributes already set")

	// ErrRouteNotFound indicates that the specified named route could not be found.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMissingRouteParameter indicates that a required parameter for URL building is missing.
	ErrMissingRouteParameter = errors.New("missing required parameter")

	// ErrDuplicateRouteName indicates that a route name is already taken.
	ErrDuplicateRouteName = errors.New("route name already registered")

	// ErrNoApplication indicates that an operation requiring the application
	// capability was called on a router constructed without one.
	ErrNoApplication = errors.New("no application capability configured")

	// ErrResponseWriterNotHijacker indicates that the ResponseWriter does not
	// implement the http.Hijacker interface.
	ErrResponseWriterNotHijacker = errors.New("responseWriter does not implement http.Hijacker")
)
