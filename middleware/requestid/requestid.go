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

// Package requestid attaches a unique ID to each request for log
// correlation. IDs ride in a response header and in the request context.
package requestid

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/octavo-web/router"
	"github.com/octavo-web/router/middleware"
)

// New returns a middleware that adds a unique request ID to each request.
//
// The middleware checks the configured header for a client-supplied ID,
// uses it if allowed, otherwise generates one; the ID is set on the
// response header and stored in the request context.
//
// Basic usage:
//
//	r := router.MustNew()
//	r.Use(requestid.New())
//
// With a UUID generator and custom header:
//
//	r.Use(requestid.New(
//	    requestid.WithUUID(),
//	    requestid.WithHeader("X-Correlation-ID"),
//	))
//
// It also works through the alias table:
//
//	r.RegisterMiddleware("requestid", requestid.New())
func New(opts ...Option) router.HandlerFunc {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *router.Context) {
		id := ""
		if cfg.allowClientID {
			id = c.Request.Header.Get(cfg.headerName)
		}
		if id == "" {
			id = cfg.generator()
		}

		c.Response.Header().Set(cfg.headerName, id)
		ctx := context.WithValue(c.Request.Context(), middleware.RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// FromContext returns the request ID stored by this middleware, or empty.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(middleware.RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// generateRandomID generates a random hex string for request IDs.
func generateRandomID() string {
	bytes := make([]byte, 16)
	// crypto/rand.Read never fails on supported platforms since Go 1.24.
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
