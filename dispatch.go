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
	"bufio"
	"net"
	"net/http"
)

// notFoundPattern is the sentinel route template reported to observability
// when no route matches, keeping metric cardinality bounded.
const notFoundPattern = "_not_found"

// Dispatch walks the registered routes in registration order and executes
// the handler chain of each match: global middleware, then the route's
// resolved group middleware, then the route handlers. A middleware that
// calls Abort short-circuits the rest of its chain.
//
// Returns whether any route handled the request. A miss is not an error at
// this layer; producing a "not found" response is the caller's job.
//
// By default the first matching route wins; with WithDispatchAll every
// matching route executes.
func (r *Router) Dispatch(w http.ResponseWriter, req *http.Request) bool {
	_, handled := r.dispatch(w, req)
	return handled
}

// dispatch is the Dispatch core. It additionally reports the pattern of the
// first matched route for observability labeling.
func (r *Router) dispatch(w http.ResponseWriter, req *http.Request) (string, bool) {
	pattern := notFoundPattern
	handled := false

	for _, rt := range r.routes {
		if !rt.matchesMethod(req) {
			continue
		}
		c := acquireContext()
		c.begin(req, w, r)
		if !rt.matchPath(req.URL.Path, c) {
			releaseContext(c)
			continue
		}
		if !handled {
			pattern = rt.pattern
		}
		handled = true
		r.runRoute(c, rt)
		releaseContext(c)
		if !r.dispatchAll {
			break
		}
	}
	return pattern, handled
}

// runRoute composes and executes the handler chain for a matched route.
// Resolved middleware identifiers without a registered handler are skipped
// with a diagnostic event; the alias table promised them, the registry
// never delivered.
func (r *Router) runRoute(c *Context, rt *Route) {
	chain := make([]HandlerFunc, 0, len(r.globalMiddleware)+len(rt.attrs.Middleware)+len(rt.handlers))
	chain = append(chain, r.globalMiddleware...)
	for _, id := range rt.attrs.Middleware {
		h, ok := r.middleware[id]
		if !ok {
			r.emit(DiagUnknownMiddleware, "resolved middleware has no registered handler", map[string]any{
				"identifier": id,
				"pattern":    rt.pattern,
			})
			continue
		}
		chain = append(chain, h)
	}
	chain = append(chain, rt.handlers...)

	c.route = rt
	c.handlers = chain
	c.index = -1
	if r.observability != nil {
		c.logger = r.observability.BuildRequestLogger(c.Request.Context(), c.Request, rt.pattern)
	} else {
		c.logger = noopLogger
	}
	c.Next()
}

// ServeHTTP implements http.Handler. It runs the observability lifecycle
// around Dispatch and answers unmatched requests with the NoRoute handler
// (http.NotFound by default).
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	var obsState any

	if r.observability != nil {
		var enriched = ctx
		enriched, obsState = r.observability.OnRequestStart(ctx, req)
		if enriched != ctx {
			ctx = enriched
			req = req.WithContext(ctx)
		}
		if obsState != nil {
			w = r.observability.WrapResponseWriter(w, obsState)
		}
	}

	pattern, handled := r.dispatch(w, req)
	if !handled {
		r.handleNotFound(w, req)
	}

	if obsState != nil {
		r.observability.OnRequestEnd(ctx, obsState, w, pattern)
	}
}

// handleNotFound produces the adapter-level 404.
func (r *Router) handleNotFound(w http.ResponseWriter, req *http.Request) {
	if r.noRouteHandler == nil {
		http.NotFound(w, req)
		return
	}
	c := acquireContext()
	c.begin(req, w, r)
	c.handlers = []HandlerFunc{r.noRouteHandler}
	c.logger = noopLogger
	if r.observability != nil {
		c.logger = r.observability.BuildRequestLogger(req.Context(), req, notFoundPattern)
	}
	c.Next()
	releaseContext(c)
}

// responseWriter wraps http.ResponseWriter to capture status code and size.
// It also prevents "superfluous response.WriteHeader call" errors.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int64
	written    bool
}

// NewResponseWriter wraps w so status code and size can be read back through
// the ResponseInfo interface. Observability recorders use this from
// WrapResponseWriter.
func NewResponseWriter(w http.ResponseWriter) http.ResponseWriter {
	return &responseWriter{ResponseWriter: w}
}

// WriteHeader captures the status code and prevents duplicate calls.
func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.ResponseWriter.WriteHeader(code)
		rw.written = true
	}
}

// Write captures the response size and marks as written.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.written = true
	}
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)
	return n, err
}

// StatusCode returns the HTTP status code.
func (rw *responseWriter) StatusCode() int {
	if rw.statusCode == 0 {
		return http.StatusOK
	}
	return rw.statusCode
}

// Size returns the response size in bytes.
func (rw *responseWriter) Size() int64 {
	return rw.size
}

// Written returns true if headers have been written.
func (rw *responseWriter) Written() bool {
	return rw.written
}

// Hijack implements http.Hijacker.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, ErrResponseWriterNotHijacker
}

// Flush implements http.Flusher.
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Compile-time check that responseWriter implements ResponseInfo.
var _ ResponseInfo = (*responseWriter)(nil)
