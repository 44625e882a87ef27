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
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// Kind discriminates route variants. The set of kinds is closed: REST routes
// match by wire-level HTTP method, AJAX routes match by request header.
type Kind uint8

const (
	// KindREST is a route with an explicit HTTP method set.
	KindREST Kind = iota

	// KindAjax is a route registered under the AJAX pseudo-method.
	KindAjax
)

func (k Kind) String() string {
	switch k {
	case KindAjax:
		return "ajax"
	default:
		return "rest"
	}
}

// MethodAjax is the sentinel pseudo-method carried by AJAX routes. It is not
// a wire-level HTTP method: an AJAX route matches any request flagged with
// the XMLHttpRequest header, regardless of its actual verb.
const MethodAjax = "AJAX"

const (
	ajaxHeader      = "X-Requested-With"
	ajaxHeaderValue = "XMLHttpRequest"
)

// anyMethods is the method set produced by Any().
var anyMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// Route is a single registered path plus method set plus handler chain,
// together with the group attributes frozen at registration time.
//
// A Route is immutable once dispatch begins. Its attributes reflect the group
// stack active when it was registered, never the stack state at dispatch time.
type Route struct {
	router   *Router
	kind     Kind
	methods  []string // normalized: upper-case, deduplicated, order preserved
	uri      string   // slash-trimmed URI pattern as given at registration
	handlers []HandlerFunc

	attrs    Attributes // frozen group attributes (zero outside any group)
	attrsSet bool

	name     string
	pattern  string    // merged prefix + uri, with leading slash
	segments []segment // compiled pattern segments for matching and URL building
}

// segment is one compiled element of a route pattern.
type segment struct {
	literal  string // static text, or parameter name for param/wildcard segments
	param    bool
	wildcard bool
}

// normalizeMethods upper-cases and deduplicates the method set, preserving
// first-seen order, and pairs HEAD with GET the way the GET shortcut does.
func normalizeMethods(methods []string) []string {
	out := make([]string, 0, len(methods)+1)
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" || slices.Contains(out, m) {
			continue
		}
		out = append(out, m)
	}
	// GET and HEAD always travel together.
	if slices.Contains(out, http.MethodGet) && !slices.Contains(out, http.MethodHead) {
		out = append(out, http.MethodHead)
	}
	return out
}

// setAttributes freezes the merged group attributes onto the route. It may
// be called at most once, at registration time.
func (rt *Route) setAttributes(attrs Attributes) error {
	if rt.attrsSet {
		return fmt.Errorf("%w: %s %s", ErrAttributesFrozen, strings.Join(rt.methods, "|"), rt.uri)
	}
	rt.attrs = attrs
	rt.attrsSet = true
	return nil
}

// compile builds the full pattern from the frozen prefix and the URI and
// splits it into match segments. Called once, after attributes are decided.
func (rt *Route) compile() {
	joined := rt.uri
	if rt.attrs.Prefix != "" {
		if joined == "" {
			joined = rt.attrs.Prefix
		} else {
			joined = rt.attrs.Prefix + "/" + joined
		}
	}
	rt.pattern = "/" + joined

	if joined == "" {
		rt.segments = nil
		return
	}
	parts := strings.Split(joined, "/")
	rt.segments = make([]segment, 0, len(parts))
	for _, part := range parts {
		switch {
		case strings.HasPrefix(part, ":"):
			rt.segments = append(rt.segments, segment{literal: part[1:], param: true})
		case strings.HasPrefix(part, "*"):
			rt.segments = append(rt.segments, segment{literal: part[1:], wildcard: true})
		default:
			rt.segments = append(rt.segments, segment{literal: part})
		}
	}
}

// Matches reports whether the request's method and path satisfy this route.
// The path is matched against the route URI prefixed with the merged group
// prefix. Parameter and wildcard values are not extracted here; dispatch
// does that on its own context.
func (rt *Route) Matches(req *http.Request) bool {
	if !rt.matchesMethod(req) {
		return false
	}
	return rt.matchPath(req.URL.Path, nil)
}

// matchesMethod applies the kind-specific method predicate.
func (rt *Route) matchesMethod(req *http.Request) bool {
	if rt.kind == KindAjax {
		// AJAX is not a wire-level verb; the flag rides in a header.
		return req.Header.Get(ajaxHeader) == ajaxHeaderValue
	}
	return slices.Contains(rt.methods, req.Method)
}

// matchPath matches path against the compiled pattern. When c is non-nil,
// parameter and wildcard captures are stored on it.
func (rt *Route) matchPath(path string, c *Context) bool {
	path = strings.Trim(path, "/")

	if len(rt.segments) == 0 {
		return path == ""
	}

	rest := path
	for i, seg := range rt.segments {
		if seg.wildcard {
			// Trailing wildcard captures the remainder, slashes included.
			if c != nil && seg.literal != "" {
				c.addParam(seg.literal, rest)
			}
			return true
		}
		if rest == "" {
			return false
		}
		var part string
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			part, rest = rest[:idx], rest[idx+1:]
		} else {
			part, rest = rest, ""
		}
		switch {
		case seg.param:
			if c != nil {
				c.addParam(seg.literal, part)
			}
		case seg.literal != part:
			return false
		}
		if i == len(rt.segments)-1 {
			return rest == ""
		}
	}
	return true
}

// buildURL substitutes params into the route pattern for reverse routing.
func (rt *Route) buildURL(params map[string]string, query url.Values) (string, error) {
	var buf strings.Builder
	buf.WriteByte('/')

	for i, seg := range rt.segments {
		if i > 0 {
			buf.WriteByte('/')
		}
		switch {
		case seg.param, seg.wildcard:
			val, ok := params[seg.literal]
			if !ok {
				return "", fmt.Errorf("%w: %s", ErrMissingRouteParameter, seg.literal)
			}
			buf.WriteString(url.PathEscape(val))
		default:
			buf.WriteString(seg.literal)
		}
	}

	if len(query) > 0 {
		buf.WriteByte('?')
		buf.WriteString(query.Encode())
	}
	return buf.String(), nil
}

// SetName assigns a unique name to the route for reverse routing.
// Panics if the name is already taken, for early detection during boot.
// Returns the route for method chaining.
//
// Example:
//
//	r.GET("/users/:id", getUser).SetName("users.show")
//	url, _ := r.URL("users.show", map[string]string{"id": "42"})
func (rt *Route) SetName(name string) *Route {
	rt.name = name
	if err := rt.router.registerNamedRoute(name, rt); err != nil {
		panic(err.Error())
	}
	return rt
}

// Name returns the route name, or empty if the route is unnamed.
func (rt *Route) Name() string {
	return rt.name
}

// Kind returns the route variant.
func (rt *Route) Kind() Kind {
	return rt.kind
}

// Methods returns a copy of the normalized method set.
func (rt *Route) Methods() []string {
	return slices.Clone(rt.methods)
}

// URI returns the URI pattern as registered, without the group prefix.
func (rt *Route) URI() string {
	return rt.uri
}

// Pattern returns the full match pattern: merged group prefix plus URI.
func (rt *Route) Pattern() string {
	return rt.pattern
}

// Attributes returns a copy of the group attributes frozen at registration.
// A route registered outside any group carries the zero Attributes.
func (rt *Route) Attributes() Attributes {
	a := rt.attrs
	a.Middleware = slices.Clone(a.Middleware)
	return a
}
