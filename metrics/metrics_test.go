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

package metrics

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/octavo-web/router"
)

// TestNewDefaults verifies the default configuration: Prometheus provider
// with a private registry and scrape handler.
func TestNewDefaults(t *testing.T) {
	rec, err := New()
	require.NoError(t, err)
	defer rec.Shutdown(context.Background())

	assert.NotNil(t, rec.Handler())
	assert.NotNil(t, rec.MeterProvider())
}

func TestNewUnsupportedProvider(t *testing.T) {
	_, err := New(func(r *Recorder) { r.provider = Provider("bogus") })
	assert.Error(t, err)
}

func TestMustNewPanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(WithMeterProvider(nil))
	})
}

// TestCustomMeterProvider verifies a caller-owned provider is used as-is:
// no Prometheus handler, no shutdown ownership.
func TestCustomMeterProvider(t *testing.T) {
	provider := sdkmetric.NewMeterProvider()
	defer provider.Shutdown(context.Background())

	rec, err := New(WithMeterProvider(provider))
	require.NoError(t, err)

	assert.Nil(t, rec.Handler())
	assert.Same(t, provider, rec.MeterProvider())
	require.NoError(t, rec.Shutdown(context.Background()))
}

// TestRecorderLifecycle drives real traffic through a router and checks the
// instruments land in the Prometheus scrape output labeled by route
// pattern, not raw path.
func TestRecorderLifecycle(t *testing.T) {
	rec, err := New(WithServiceName("test-service"))
	require.NoError(t, err)
	defer rec.Shutdown(context.Background())

	r := router.MustNew(router.WithObservability(rec))
	r.GET("/users/:id", func(c *router.Context) {
		c.String(http.StatusOK, "user")
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/42", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	scrape := httptest.NewRecorder()
	rec.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := scrape.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, "http_request_duration_seconds")
	assert.Contains(t, body, `http_route="/users/:id"`)
	assert.NotContains(t, body, "/users/42", "raw paths must never reach metric labels")
}

// TestExcludePaths verifies excluded requests leave no trace in the scrape
// output.
func TestExcludePaths(t *testing.T) {
	rec, err := New(WithExcludePaths("/health"))
	require.NoError(t, err)
	defer rec.Shutdown(context.Background())

	r := router.MustNew(router.WithObservability(rec))
	r.GET("/health", func(c *router.Context) { c.Status(http.StatusOK) })
	r.GET("/work", func(c *router.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/work", nil))

	scrape := httptest.NewRecorder()
	rec.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := scrape.Body.String()
	assert.Contains(t, body, `http_route="/work"`)
	assert.NotContains(t, body, "/health")
}

// TestNotFoundSentinel verifies unmatched requests are recorded under the
// bounded-cardinality sentinel.
func TestNotFoundSentinel(t *testing.T) {
	rec, err := New()
	require.NoError(t, err)
	defer rec.Shutdown(context.Background())

	r := router.MustNew(router.WithObservability(rec))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/this/does/not/exist", nil))

	scrape := httptest.NewRecorder()
	rec.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := scrape.Body.String()
	assert.Contains(t, body, `http_route="_not_found"`)
	assert.NotContains(t, body, "/this/does/not/exist")
}

// TestAccessLogging verifies the access log line and the request-scoped
// handler logger.
func TestAccessLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	rec, err := New(WithAccessLogger(logger))
	require.NoError(t, err)
	defer rec.Shutdown(context.Background())

	r := router.MustNew(router.WithObservability(rec))
	r.GET("/users/:id", func(c *router.Context) {
		c.Logger().Info("inside handler")
		c.String(http.StatusOK, "ok")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/7", nil))

	out := buf.String()
	assert.Contains(t, out, "inside handler")
	assert.Contains(t, out, `"route":"/users/:id"`)
	assert.Contains(t, out, `"method":"GET"`)
	assert.Contains(t, out, `"status":200`)
}

// TestBuildRequestLoggerWithoutAccessLogger verifies handlers get the no-op
// logger when access logging is off.
func TestBuildRequestLoggerWithoutAccessLogger(t *testing.T) {
	rec, err := New()
	require.NoError(t, err)
	defer rec.Shutdown(context.Background())

	logger := rec.BuildRequestLogger(context.Background(), httptest.NewRequest(http.MethodGet, "/x", nil), "/x")
	assert.Same(t, router.NoopLogger(), logger)
}

// TestOnRequestEndIgnoresForeignState verifies a state token this Recorder
// did not mint is ignored rather than crashing.
func TestOnRequestEndIgnoresForeignState(t *testing.T) {
	rec, err := New()
	require.NoError(t, err)
	defer rec.Shutdown(context.Background())

	assert.NotPanics(t, func() {
		rec.OnRequestEnd(context.Background(), "not-a-state", httptest.NewRecorder(), "/x")
		rec.OnRequestEnd(context.Background(), nil, httptest.NewRecorder(), "/x")
	})
}

// TestWrapResponseWriterNilState verifies the writer passes through
// untouched for excluded requests.
func TestWrapResponseWriterNilState(t *testing.T) {
	rec, err := New()
	require.NoError(t, err)
	defer rec.Shutdown(context.Background())

	w := httptest.NewRecorder()
	assert.Equal(t, http.ResponseWriter(w), rec.WrapResponseWriter(w, nil))
}
