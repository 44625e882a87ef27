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

// Package recovery turns handler panics into 500 responses instead of
// dropped connections.
package recovery

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/octavo-web/router"
)

// New returns a middleware that recovers from panics in request handlers.
// It logs the panic with a stack trace, marks the active span, responds
// with 500, and aborts the chain.
//
// Register it first (or early) so it catches panics from everything after it:
//
//	r := router.MustNew()
//	r.Use(recovery.New())
//
// Custom response:
//
//	r.Use(recovery.New(
//	    recovery.WithHandler(func(c *router.Context, err any) {
//	        c.JSON(http.StatusInternalServerError, map[string]any{"error": "boom"})
//	    }),
//	))
func New(opts ...Option) router.HandlerFunc {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *router.Context) {
		defer func() {
			if err := recover(); err != nil {
				if span := c.Span(); span.SpanContext().IsValid() {
					span.SetStatus(codes.Error, "panic recovered")
					span.SetAttributes(
						attribute.Bool("exception.escaped", true),
						attribute.String("exception.type", fmt.Sprintf("%T", err)),
						attribute.String("exception.message", fmt.Sprintf("%v", err)),
					)
				}

				var stack []byte
				if cfg.stackTrace {
					stack = debug.Stack()
					if len(stack) > cfg.stackSize {
						stack = stack[:cfg.stackSize]
					}
				}
				cfg.logger(c, err, stack)
				cfg.handler(c, err)
				c.Abort()
			}
		}()

		c.Next()
	}
}

// defaultLogger logs panic information through the request-scoped logger.
func defaultLogger(c *router.Context, err any, stack []byte) {
	c.Logger().Error("panic recovered",
		"error", fmt.Sprintf("%v", err),
		"stack", string(stack),
	)
}

// defaultHandler sends a 500 Internal Server Error response.
func defaultHandler(c *router.Context, _ any) {
	c.JSON(http.StatusInternalServerError, map[string]any{
		"error": "Internal server error",
		"code":  "INTERNAL_ERROR",
	})
}
