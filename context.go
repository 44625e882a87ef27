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
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"
)

// Context carries one matched request through its handler chain: the
// request and response objects, extracted path parameters, and chain
// control.
//
// Contexts are pooled and reused. Do not retain a Context beyond the
// handler's lifetime and do not share it across goroutines; copy what you
// need first.
type Context struct {
	Request  *http.Request
	Response http.ResponseWriter

	router   *Router
	route    *Route
	handlers []HandlerFunc
	index    int
	aborted  bool

	paramKeys   []string
	paramValues []string

	logger *slog.Logger
}

var contextPool = sync.Pool{
	New: func() any {
		return &Context{}
	},
}

func acquireContext() *Context {
	return contextPool.Get().(*Context)
}

func releaseContext(c *Context) {
	c.Request = nil
	c.Response = nil
	c.router = nil
	c.route = nil
	c.handlers = nil
	c.logger = nil
	contextPool.Put(c)
}

// begin readies a pooled context for a new request.
func (c *Context) begin(req *http.Request, w http.ResponseWriter, r *Router) {
	c.Request = req
	c.Response = w
	c.router = r
	c.route = nil
	c.handlers = nil
	c.index = -1
	c.aborted = false
	c.paramKeys = c.paramKeys[:0]
	c.paramValues = c.paramValues[:0]
	c.logger = noopLogger
}

// addParam records a path parameter capture.
func (c *Context) addParam(key, value string) {
	c.paramKeys = append(c.paramKeys, key)
	c.paramValues = append(c.paramValues, value)
}

// Next executes the remaining handlers in the chain. Middleware calls it to
// hand control onward; an aborted chain stops where it is.
func (c *Context) Next() {
	c.index++
	for c.index < len(c.handlers) && !c.aborted {
		c.handlers[c.index](c)
		c.index++
	}
}

// Abort stops the handler chain. Remaining handlers, the action included,
// do not run. Typically called by middleware rejecting a request.
func (c *Context) Abort() {
	c.aborted = true
}

// AbortWithStatus writes the status code and aborts the chain.
func (c *Context) AbortWithStatus(code int) {
	c.Response.WriteHeader(code)
	c.Abort()
}

// IsAborted reports whether the chain has been aborted.
func (c *Context) IsAborted() bool {
	return c.aborted
}

// Param returns the value of a path parameter, or empty when absent.
//
//	r.GET("/users/:id", func(c *router.Context) {
//	    id := c.Param("id")
//	})
func (c *Context) Param(key string) string {
	for i, k := range c.paramKeys {
		if k == key {
			return c.paramValues[i]
		}
	}
	return ""
}

// ParamInt returns a path parameter parsed as int.
func (c *Context) ParamInt(key string) (int, error) {
	return strconv.Atoi(c.Param(key))
}

// Params returns all path parameters as a map.
func (c *Context) Params() map[string]string {
	if len(c.paramKeys) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.paramKeys))
	for i, k := range c.paramKeys {
		out[k] = c.paramValues[i]
	}
	return out
}

// Query returns the named URL query value.
func (c *Context) Query(key string) string {
	return c.Request.URL.Query().Get(key)
}

// Route returns the matched route, or nil outside a dispatched chain
// (e.g. in a NoRoute handler).
func (c *Context) Route() *Route {
	return c.route
}

// Logger returns the request-scoped logger. Without an observability
// recorder this is the no-op logger, so handlers can log unconditionally.
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// IsAjax reports whether the request carries the XMLHttpRequest header.
func (c *Context) IsAjax() bool {
	return c.Request.Header.Get(ajaxHeader) == ajaxHeaderValue
}

// Status writes the HTTP status code with no body.
func (c *Context) Status(code int) {
	c.Response.WriteHeader(code)
}

// NoContent writes 204 No Content.
func (c *Context) NoContent() {
	c.Response.WriteHeader(http.StatusNoContent)
}

// JSON writes obj as a JSON response with the given status code.
func (c *Context) JSON(code int, obj any) {
	c.Response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.Response.WriteHeader(code)
	if err := json.NewEncoder(c.Response).Encode(obj); err != nil {
		c.logger.Error("json encode failed", "error", err)
	}
}

// YAML writes obj as a YAML response with the given status code.
func (c *Context) YAML(code int, obj any) {
	data, err := yaml.Marshal(obj)
	if err != nil {
		c.logger.Error("yaml marshal failed", "error", err)
		c.Response.WriteHeader(http.StatusInternalServerError)
		return
	}
	c.Response.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	c.Response.WriteHeader(code)
	if _, err := c.Response.Write(data); err != nil {
		c.logger.Error("yaml write failed", "error", err)
	}
}

// String writes a formatted plain-text response with the given status code.
func (c *Context) String(code int, format string, values ...any) {
	c.Response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.Response.WriteHeader(code)
	fmt.Fprintf(c.Response, format, values...)
}

// Span returns the active trace span from the request context.
// Without tracing this is a no-op span.
func (c *Context) Span() trace.Span {
	return trace.SpanFromContext(c.Request.Context())
}

// TraceID returns the active trace ID, or empty when tracing is off.
func (c *Context) TraceID() string {
	sc := c.Span().SpanContext()
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

// SetSpanAttribute adds a string attribute to the active span.
// No-op when tracing is off.
func (c *Context) SetSpanAttribute(key, value string) {
	if span := c.Span(); span.SpanContext().IsValid() {
		span.SetAttributes(attribute.String(key, value))
	}
}
