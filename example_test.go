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

package router_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/octavo-web/router"
)

func Example() {
	r := router.MustNew()

	r.GET("/users/:id", func(c *router.Context) {
		c.String(http.StatusOK, "user %s", c.Param("id"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/42", nil))
	fmt.Println(w.Body.String())
	// Output: user 42
}

func ExampleRouter_Group() {
	r := router.MustNew()

	r.Group(router.Attributes{Prefix: "api"}, func(api *router.Group) {
		api.Group(router.Attributes{Prefix: "v1"}, func(v1 *router.Group) {
			v1.GET("/posts", func(c *router.Context) {
				c.String(http.StatusOK, "posts")
			})
		})
	})

	for _, rt := range r.Routes() {
		fmt.Println(rt.Pattern)
	}
	// Output: /api/v1/posts
}

func ExampleRouter_URL() {
	r := router.MustNew()

	r.GET("/users/:id", func(c *router.Context) {
		c.Status(http.StatusOK)
	}).SetName("users.show")

	u, _ := r.URL("users.show", map[string]string{"id": "42"}, nil)
	fmt.Println(u)
	// Output: /users/42
}

func ExampleGroup_Ajax() {
	r := router.MustNew()

	r.Group(router.Attributes{Prefix: "admin"}, func(admin *router.Group) {
		admin.Ajax("/refresh", func(c *router.Context) {
			c.String(http.StatusOK, "refreshed")
		})
	})

	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	fmt.Println(w.Body.String())
	// Output: refreshed
}
