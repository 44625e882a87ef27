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
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// noopLogger is a singleton no-op logger used when no observability is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns the singleton no-op logger.
// It is handed to handlers when no observability recorder is configured.
func NoopLogger() *slog.Logger {
	return noopLogger
}

// HandlerFunc handles a matched request. Middleware and actions share the
// same shape; middleware calls c.Next() to continue the chain or c.Abort()
// to short-circuit it.
type HandlerFunc func(*Context)

// Router registers routes, manages route groups, resolves middleware
// aliases through the application capability, and dispatches requests to
// matching routes in registration order.
//
// Lifecycle: register every route first, dispatch afterwards. Registration
// is a boot-time, single-goroutine activity and is not synchronized; once
// registration is complete the router is safe for concurrent dispatch from
// any number of goroutines, because dispatch only reads.
//
// Example:
//
//	r := router.MustNew(router.WithApp(app))
//	r.Group(router.Attributes{Prefix: "api", Middleware: []string{"auth"}}, func(api *router.Group) {
//	    api.GET("/users/:id", showUser)
//	})
//	http.ListenAndServe(":8080", r)
type Router struct {
	routes           []*Route               // registration order = dispatch priority, never reordered
	globalMiddleware []HandlerFunc          // run before group middleware on every dispatched route
	middleware       map[string]HandlerFunc // concrete handler registry: identifier -> handler
	namedRoutes      map[string]*Route

	app           App
	events        EventDispatcher
	observability ObservabilityRecorder
	diagnostics   DiagnosticHandler

	noRouteHandler HandlerFunc
	dispatchAll    bool
	strictAliases  bool
}

// New creates a router with optional configuration.
//
// Returns an error if the configuration is invalid. Configuration is
// validated immediately at startup rather than at runtime.
//
// For a version that panics instead of returning an error, use MustNew.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		middleware:  make(map[string]HandlerFunc),
		namedRoutes: make(map[string]*Route),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("router configuration validation failed: %w", err)
	}
	return r, nil
}

// MustNew creates a router and panics if configuration is invalid.
// Convenience wrapper around New for applications that should fail at boot.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("router.MustNew: %v", err))
	}
	return r
}

// validate checks the router configuration for contradictions.
func (r *Router) validate() error {
	// Strict alias mode is meaningless without an alias table to consult.
	if r.strictAliases && r.app == nil {
		return fmt.Errorf("%w: strict aliases need an alias table", ErrNoApplication)
	}
	return nil
}

// SetObservabilityRecorder sets the observability recorder after
// construction. Pass nil to disable all observability.
func (r *Router) SetObservabilityRecorder(recorder ObservabilityRecorder) {
	r.observability = recorder
}

// emit sends a diagnostic event if a handler is configured.
func (r *Router) emit(kind DiagnosticKind, message string, fields map[string]any) {
	if r.diagnostics != nil {
		r.diagnostics.OnDiagnostic(DiagnosticEvent{
			Kind:    kind,
			Message: message,
			Fields:  fields,
		})
	}
}

// Use adds global middleware executed for every dispatched route, before
// any group middleware and route handlers, in the order added.
func (r *Router) Use(middleware ...HandlerFunc) {
	r.globalMiddleware = append(r.globalMiddleware, middleware...)
}

// RegisterMiddleware binds a concrete middleware identifier to its handler.
// Aliases from the application's alias table resolve to identifiers; this
// registry maps those identifiers to executable middleware.
func (r *Router) RegisterMiddleware(identifier string, handler HandlerFunc) {
	r.middleware[identifier] = handler
}

// Listen forwards an event-listener registration to the configured event
// dispatcher. The router stores nothing and applies no logic of its own; a
// Listen call without a dispatcher is dropped with a diagnostic event.
func (r *Router) Listen(event string, handler func(args ...any)) {
	if r.events == nil {
		r.emit(DiagNoEventDispatcher, "event listener dropped; no dispatcher configured", map[string]any{
			"event": event,
		})
		return
	}
	r.events.Listen(event, handler)
}

// GET registers a route for GET requests outside any group.
// The method set is exactly {GET, HEAD}.
func (r *Router) GET(uri string, handlers ...HandlerFunc) *Route {
	return r.Match([]string{http.MethodGet}, uri, handlers...)
}

// POST registers a route for POST requests outside any group.
func (r *Router) POST(uri string, handlers ...HandlerFunc) *Route {
	return r.Match([]string{http.MethodPost}, uri, handlers...)
}

// PUT registers a route for PUT requests outside any group.
func (r *Router) PUT(uri string, handlers ...HandlerFunc) *Route {
	return r.Match([]string{http.MethodPut}, uri, handlers...)
}

// PATCH registers a route for PATCH requests outside any group.
func (r *Router) PATCH(uri string, handlers ...HandlerFunc) *Route {
	return r.Match([]string{http.MethodPatch}, uri, handlers...)
}

// DELETE registers a route for DELETE requests outside any group.
func (r *Router) DELETE(uri string, handlers ...HandlerFunc) *Route {
	return r.Match([]string{http.MethodDelete}, uri, handlers...)
}

// OPTIONS registers a route for OPTIONS requests outside any group.
func (r *Router) OPTIONS(uri string, handlers ...HandlerFunc) *Route {
	return r.Match([]string{http.MethodOptions}, uri, handlers...)
}

// Any registers a route matching GET, HEAD, POST, PUT, PATCH, and DELETE.
func (r *Router) Any(uri string, handlers ...HandlerFunc) *Route {
	return r.Match(anyMethods, uri, handlers...)
}

// Match registers a route for an explicit method set outside any group.
// HEAD is added whenever GET is present without it.
func (r *Router) Match(methods []string, uri string, handlers ...HandlerFunc) *Route {
	return r.addRoute(KindREST, methods, uri, nil, handlers)
}

// Ajax registers an AJAX route outside any group. See Group.Ajax.
func (r *Router) Ajax(uri string, handlers ...HandlerFunc) *Route {
	return r.addRoute(KindAjax, []string{MethodAjax}, uri, nil, handlers)
}

// addRoute builds and appends a route. When stack is non-empty the merged
// group attributes are frozen onto the route immediately; a route registered
// outside any group carries no prefix, namespace, or middleware at all.
//
// Panics on an empty method set or handler chain: both are boot-time
// programming errors and should never survive to dispatch.
func (r *Router) addRoute(kind Kind, methods []string, uri string, stack groupStack, handlers []HandlerFunc) *Route {
	normalized := normalizeMethods(methods)
	if len(normalized) == 0 {
		panic(fmt.Sprintf("router: %v: %q", ErrEmptyMethodSet, uri))
	}
	if len(handlers) == 0 {
		panic(fmt.Sprintf("router: %v: %s %q", ErrNoHandlers, strings.Join(normalized, "|"), uri))
	}

	rt := &Route{
		router:   r,
		kind:     kind,
		methods:  normalized,
		uri:      strings.Trim(uri, "/"),
		handlers: slices.Clone(handlers),
	}

	if len(stack) > 0 {
		merged, unknown := stack.merged(r.resolveAlias)
		if len(unknown) > 0 {
			if r.strictAliases {
				panic(fmt.Sprintf("router: %v: %s", ErrUnknownMiddlewareAlias, strings.Join(unknown, ", ")))
			}
			r.reportUnknownAliases(unknown)
		}
		if err := rt.setAttributes(merged); err != nil {
			panic(err.Error())
		}
	}
	rt.compile()

	r.routes = append(r.routes, rt)
	return rt
}

// resolveAlias consults the application's alias table. Without an
// application capability every alias is unknown.
func (r *Router) resolveAlias(alias string) ([]string, bool) {
	if r.app == nil {
		return nil, false
	}
	targets, ok := r.app.RouteMiddleware()[alias]
	return targets, ok
}

// reportUnknownAliases emits one diagnostic event per skipped alias.
func (r *Router) reportUnknownAliases(unknown []string) {
	for _, alias := range unknown {
		r.emit(DiagUnknownAlias, "middleware alias skipped; no alias table entry", map[string]any{
			"alias": alias,
		})
	}
}

// registerNamedRoute records a route under its unique name.
func (r *Router) registerNamedRoute(name string, rt *Route) error {
	if _, taken := r.namedRoutes[name]; taken {
		return fmt.Errorf("%w: %q", ErrDuplicateRouteName, name)
	}
	r.namedRoutes[name] = rt
	return nil
}

// URL builds a URL for a named route by substituting params into its
// pattern. Extra query values may be supplied through query.
//
// Example:
//
//	r.GET("/users/:id", showUser).SetName("users.show")
//	u, err := r.URL("users.show", map[string]string{"id": "42"}, nil)
//	// u == "/users/42"
func (r *Router) URL(name string, params map[string]string, query url.Values) (string, error) {
	rt, ok := r.namedRoutes[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	return rt.buildURL(params, query)
}

// Ref returns a handler that resolves name through the application at
// dispatch time. The matched route's frozen namespace qualifies the name:
// inside a group with namespace "acme/blog", Ref("posts") resolves
// "acme/blog/posts". The resolved service must be a HandlerFunc.
//
// A failed resolution aborts the request with 500.
func (r *Router) Ref(name string) HandlerFunc {
	return func(c *Context) {
		if r.app == nil {
			c.Logger().Error("handler reference with no application capability", "ref", name)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		qualified := name
		if rt := c.Route(); rt != nil && rt.attrs.Namespace != "" {
			qualified = rt.attrs.Namespace + "/" + name
		}
		svc, err := r.app.Resolve(qualified)
		if err != nil {
			c.Logger().Error("handler reference resolution failed", "ref", qualified, "error", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		switch h := svc.(type) {
		case HandlerFunc:
			h(c)
		case func(*Context):
			h(c)
		default:
			c.Logger().Error("handler reference is not callable", "ref", qualified)
			c.AbortWithStatus(http.StatusInternalServerError)
		}
	}
}

// RouteInfo describes a registered route for introspection.
type RouteInfo struct {
	Kind       Kind
	Methods    []string
	Pattern    string
	Name       string
	Middleware []string // resolved identifiers frozen at registration
	Namespace  string
}

// Routes returns a snapshot of every registered route in registration order.
func (r *Router) Routes() []RouteInfo {
	infos := make([]RouteInfo, 0, len(r.routes))
	for _, rt := range r.routes {
		infos = append(infos, RouteInfo{
			Kind:       rt.kind,
			Methods:    slices.Clone(rt.methods),
			Pattern:    rt.pattern,
			Name:       rt.name,
			Middleware: slices.Clone(rt.attrs.Middleware),
			Namespace:  rt.attrs.Namespace,
		})
	}
	return infos
}

// App returns the configured application capability, or nil.
func (r *Router) App() App {
	return r.app
}
