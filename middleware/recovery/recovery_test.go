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

package recovery

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octavo-web/router"
)

// TestRecoversFromPanic verifies a panicking handler produces a 500 JSON
// response instead of crashing the server.
func TestRecoversFromPanic(t *testing.T) {
	r := router.MustNew()
	r.Use(New())
	r.GET("/boom", func(c *router.Context) {
		panic("something broke")
	})

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error","code":"INTERNAL_ERROR"}`, w.Body.String())
}

// TestPanicAbortsChain verifies handlers after the panic never run.
func TestPanicAbortsChain(t *testing.T) {
	r := router.MustNew()
	r.Use(New())

	var afterRan bool
	r.GET("/boom", func(c *router.Context) {
		panic("stop here")
	}, func(c *router.Context) {
		afterRan = true
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.False(t, afterRan)
}

// TestHealthyRequestPassesThrough verifies non-panicking requests are
// untouched.
func TestHealthyRequestPassesThrough(t *testing.T) {
	r := router.MustNew()
	r.Use(New())
	r.GET("/ok", func(c *router.Context) {
		c.String(http.StatusOK, "fine")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fine", w.Body.String())
}

// TestCustomLogger verifies the logger hook receives the panic value and a
// stack trace.
func TestCustomLogger(t *testing.T) {
	var gotErr any
	var gotStack []byte

	r := router.MustNew()
	r.Use(New(WithLogger(func(c *router.Context, err any, stack []byte) {
		gotErr = err
		gotStack = stack
	})))
	r.GET("/boom", func(c *router.Context) {
		panic("observed")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, "observed", gotErr)
	assert.NotEmpty(t, gotStack)
	assert.Contains(t, string(gotStack), "goroutine")
}

// TestStackTraceDisabled verifies WithStackTrace(false) hands the logger an
// empty stack.
func TestStackTraceDisabled(t *testing.T) {
	var gotStack []byte
	captured := false

	r := router.MustNew()
	r.Use(New(
		WithStackTrace(false),
		WithLogger(func(c *router.Context, err any, stack []byte) {
			captured = true
			gotStack = stack
		}),
	))
	r.GET("/boom", func(c *router.Context) { panic("x") })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.True(t, captured)
	assert.Empty(t, gotStack)
}

// TestStackSizeCap verifies the captured stack never exceeds the cap.
func TestStackSizeCap(t *testing.T) {
	var gotStack []byte

	r := router.MustNew()
	r.Use(New(
		WithStackSize(64),
		WithLogger(func(c *router.Context, err any, stack []byte) {
			gotStack = stack
		}),
	))
	r.GET("/boom", func(c *router.Context) { panic("x") })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.LessOrEqual(t, len(gotStack), 64)
	assert.NotEmpty(t, gotStack)
}

// TestCustomHandler verifies the response hook replaces the default 500
// body.
func TestCustomHandler(t *testing.T) {
	r := router.MustNew()
	r.Use(New(WithHandler(func(c *router.Context, err any) {
		c.JSON(http.StatusServiceUnavailable, map[string]any{"retry": true})
	})))
	r.GET("/boom", func(c *router.Context) { panic("x") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"retry":true}`, w.Body.String())
}

// TestPanicWithError verifies non-string panic values flow through intact.
func TestPanicWithError(t *testing.T) {
	var gotErr any

	r := router.MustNew()
	r.Use(New(WithLogger(func(c *router.Context, err any, stack []byte) {
		gotErr = err
	})))

	type failure struct{ Code int }
	r.GET("/boom", func(c *router.Context) {
		panic(failure{Code: 42})
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, failure{Code: 42}, gotErr)
}
