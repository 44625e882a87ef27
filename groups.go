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

import "net/http"

// Group is a lexical scope contributing shared middleware aliases, a path
// prefix, and a namespace to every route registered within it.
//
// Each Group owns an immutable snapshot of the attribute frames from the
// outermost group down to itself. Nesting copies the snapshot and appends a
// frame; nothing is ever popped, so group depth is balanced by construction
// and a panic inside a group callback cannot corrupt the router.
//
// Example:
//
//	r.Group(router.Attributes{Prefix: "api", Middleware: []string{"auth"}}, func(api *router.Group) {
//	    api.GET("/users", listUsers)             // /api/users, middleware: auth
//	    api.Group(router.Attributes{Prefix: "v2"}, func(v2 *router.Group) {
//	        v2.GET("/users", listUsersV2)        // /api/v2/users, middleware: auth
//	    })
//	})
type Group struct {
	router *Router
	stack  groupStack
}

// Group creates a route group and synchronously invokes fn with it.
// The frame's prefix and namespace are slash-trimmed before entering the
// stack. Groups may nest arbitrarily deep; attributes accumulate
// outermost-first.
func (r *Router) Group(attrs Attributes, fn func(*Group)) {
	fn(&Group{router: r, stack: groupStack{attrs.normalized()}})
}

// Group creates a nested group whose stack is this group's stack plus the
// given frame, and synchronously invokes fn with it.
func (g *Group) Group(attrs Attributes, fn func(*Group)) {
	fn(&Group{router: g.router, stack: g.stack.push(attrs.normalized())})
}

// Merged returns the effective attributes a route registered in this group
// would receive: joined prefix, joined namespace, and the resolved,
// first-seen-deduplicated middleware list.
func (g *Group) Merged() Attributes {
	merged, unknown := g.stack.merged(g.router.resolveAlias)
	g.router.reportUnknownAliases(unknown)
	return merged
}

// Depth returns the group nesting depth, the outermost group being 1.
func (g *Group) Depth() int {
	return len(g.stack)
}

// GET registers a route for GET requests. HEAD is included automatically.
func (g *Group) GET(uri string, handlers ...HandlerFunc) *Route {
	return g.Match([]string{http.MethodGet}, uri, handlers...)
}

// POST registers a route for POST requests.
func (g *Group) POST(uri string, handlers ...HandlerFunc) *Route {
	return g.Match([]string{http.MethodPost}, uri, handlers...)
}

// PUT registers a route for PUT requests.
func (g *Group) PUT(uri string, handlers ...HandlerFunc) *Route {
	return g.Match([]string{http.MethodPut}, uri, handlers...)
}

// PATCH registers a route for PATCH requests.
func (g *Group) PATCH(uri string, handlers ...HandlerFunc) *Route {
	return g.Match([]string{http.MethodPatch}, uri, handlers...)
}

// DELETE registers a route for DELETE requests.
func (g *Group) DELETE(uri string, handlers ...HandlerFunc) *Route {
	return g.Match([]string{http.MethodDelete}, uri, handlers...)
}

// OPTIONS registers a route for OPTIONS requests.
func (g *Group) OPTIONS(uri string, handlers ...HandlerFunc) *Route {
	return g.Match([]string{http.MethodOptions}, uri, handlers...)
}

// Any registers a route matching GET, HEAD, POST, PUT, PATCH, and DELETE.
func (g *Group) Any(uri string, handlers ...HandlerFunc) *Route {
	return g.Match(anyMethods, uri, handlers...)
}

// Match registers a route for an explicit method set. HEAD is added
// whenever GET is present without it, mirroring the GET shortcut.
// Panics on an empty method set or an empty handler chain; routes are
// registered at boot, where misconfiguration should fail immediately.
func (g *Group) Match(methods []string, uri string, handlers ...HandlerFunc) *Route {
	return g.router.addRoute(KindREST, methods, uri, g.stack, handlers)
}

// Ajax registers an AJAX route under the AJAX pseudo-method. The route
// matches requests carrying the "X-Requested-With: XMLHttpRequest" header,
// whatever their wire-level verb.
func (g *Group) Ajax(uri string, handlers ...HandlerFunc) *Route {
	return g.router.addRoute(KindAjax, []string{MethodAjax}, uri, g.stack, handlers)
}
