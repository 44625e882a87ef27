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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestContextNext verifies middleware chaining order through Next.
func TestContextNext(t *testing.T) {
	r := MustNew()
	var order []string
	r.Use(func(c *Context) {
		order = append(order, "before")
		c.Next()
		order = append(order, "after")
	})
	r.GET("/chain", func(c *Context) {
		order = append(order, "handler")
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/chain", nil))
	assert.Equal(t, []string{"before", "handler", "after"}, order)
}

// TestContextAbort verifies Abort short-circuits the remaining chain,
// action included.
func TestContextAbort(t *testing.T) {
	r := MustNew()
	var order []string
	r.Use(func(c *Context) {
		order = append(order, "guard")
		c.AbortWithStatus(http.StatusForbidden)
	})
	r.GET("/secret", func(c *Context) {
		order = append(order, "handler")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secret", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, []string{"guard"}, order, "aborted chain must not reach the handler")
}

func TestContextIsAborted(t *testing.T) {
	r := MustNew()
	r.GET("/x", func(c *Context) {
		assert.False(t, c.IsAborted())
		c.Abort()
		assert.True(t, c.IsAborted())
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
}

// TestContextParams verifies parameter access helpers.
func TestContextParams(t *testing.T) {
	r := MustNew()
	r.GET("/users/:id/files/*path", func(c *Context) {
		assert.Equal(t, "42", c.Param("id"))
		assert.Equal(t, "docs/a.txt", c.Param("path"))
		assert.Empty(t, c.Param("missing"))

		id, err := c.ParamInt("id")
		require.NoError(t, err)
		assert.Equal(t, 42, id)

		_, err = c.ParamInt("path")
		assert.Error(t, err)

		assert.Equal(t, map[string]string{"id": "42", "path": "docs/a.txt"}, c.Params())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/42/files/docs/a.txt", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContextQuery(t *testing.T) {
	r := MustNew()
	r.GET("/search", func(c *Context) {
		assert.Equal(t, "golang", c.Query("q"))
		assert.Empty(t, c.Query("missing"))
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/search?q=golang", nil))
}

// TestContextRoute verifies the matched route is visible to handlers and
// nil in the NoRoute fallback.
func TestContextRoute(t *testing.T) {
	r := MustNew(WithNoRoute(func(c *Context) {
		assert.Nil(t, c.Route())
		c.Status(http.StatusNotFound)
	}))
	r.GET("/users/:id", func(c *Context) {
		require.NotNil(t, c.Route())
		assert.Equal(t, "/users/:id", c.Route().Pattern())
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
}

// TestContextJSON verifies content type and the encoder's trailing newline.
func TestContextJSON(t *testing.T) {
	r := MustNew()
	r.GET("/json", func(c *Context) {
		c.JSON(http.StatusCreated, map[string]string{"name": "octavo"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/json", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "{\"name\":\"octavo\"}\n", w.Body.String())
}

func TestContextYAML(t *testing.T) {
	r := MustNew()
	r.GET("/yaml", func(c *Context) {
		c.YAML(http.StatusOK, map[string]string{"name": "octavo"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/yaml", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/yaml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "name: octavo\n", w.Body.String())
}

func TestContextString(t *testing.T) {
	r := MustNew()
	r.GET("/text", func(c *Context) {
		c.String(http.StatusOK, "hello %s", "world")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/text", nil))

	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "hello world", w.Body.String())
}

func TestContextNoContent(t *testing.T) {
	r := MustNew()
	r.DELETE("/users/:id", func(c *Context) {
		c.NoContent()
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/9", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestContextIsAjax(t *testing.T) {
	r := MustNew()
	r.GET("/check", func(c *Context) {
		if c.IsAjax() {
			c.String(http.StatusOK, "ajax")
		} else {
			c.String(http.StatusOK, "plain")
		}
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	r.ServeHTTP(w, req)
	assert.Equal(t, "ajax", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/check", nil))
	assert.Equal(t, "plain", w.Body.String())
}

// TestContextLoggerDefaultsToNoop verifies handlers can log unconditionally
// without an observability recorder.
func TestContextLoggerDefaultsToNoop(t *testing.T) {
	r := MustNew()
	r.GET("/log", func(c *Context) {
		require.NotNil(t, c.Logger())
		c.Logger().Info("does not explode")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/log", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestContextTraceIDWithoutTracing verifies trace accessors are safe no-ops
// without a tracer.
func TestContextTraceIDWithoutTracing(t *testing.T) {
	r := MustNew()
	r.GET("/trace", func(c *Context) {
		assert.Empty(t, c.TraceID())
		c.SetSpanAttribute("key", "value")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/trace", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
