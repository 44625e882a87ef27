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

// Package router provides a group-aware HTTP request router.
//
// Routes are registered with one or more HTTP methods and dispatched in
// registration order. Route groups contribute inheritable attributes
// (middleware aliases, a path prefix, and a handler namespace) to every
// route registered inside them; nested groups accumulate attributes
// outermost-first. Middleware is named by alias and resolved through an
// application-supplied alias table to concrete handlers.
//
// # Key Features
//
//   - Path matching with :param extraction and trailing *wildcard capture
//   - Route groups with accumulated prefix, namespace, and middleware
//   - Middleware alias resolution with stable first-seen deduplication
//   - REST and AJAX route kinds (AJAX routes match by request header)
//   - Named routes with reverse URL building
//   - Optional observability recorder (metrics, tracing, access logging)
//
// # Quick Start
//
//	r := router.MustNew()
//	r.GET("/users/:id", func(c *router.Context) {
//	    c.JSON(http.StatusOK, map[string]string{"id": c.Param("id")})
//	})
//	http.ListenAndServe(":8080", r)
//
// # Route Groups
//
// Groups follow a strict nesting discipline: each callback receives a
// *Group carrying its own immutable attribute stack, so a panic inside a
// callback can never leave a dangling frame behind.
//
//	r.Group(router.Attributes{Prefix: "api", Middleware: []string{"auth"}}, func(api *router.Group) {
//	    api.GET("/users", listUsers)
//	    api.Group(router.Attributes{Prefix: "admin"}, func(admin *router.Group) {
//	        admin.POST("/users", createUser) // /api/admin/users, middleware: auth
//	    })
//	})
//
// # Dispatch
//
// Dispatch walks routes in registration order and, by default, stops at the
// first match. The run-every-match policy can be restored with
// WithDispatchAll. A request no route claims is not an error: Dispatch
// reports false and the caller decides what a miss means (ServeHTTP answers
// with the configured NoRoute handler).
package router
