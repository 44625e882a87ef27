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

import "strings"

// Attributes is one group frame: the middleware aliases, path prefix, and
// handler namespace a group contributes to every route registered inside it.
//
// Prefix and Namespace are trimmed of leading and trailing slashes when the
// frame enters a stack; no further normalization is applied.
type Attributes struct {
	// Middleware lists middleware aliases in execution order. Aliases are
	// resolved to concrete handler identifiers through the application's
	// alias table when a route is registered.
	Middleware []string

	// Prefix is prepended to the URI of every route in the group.
	Prefix string

	// Namespace qualifies handler references registered in the group.
	// Namespace segments accumulate across nested groups; they never override.
	Namespace string
}

// normalized returns a defensive copy with prefix and namespace slash-trimmed.
// The middleware slice is copied so later mutation of the caller's slice
// cannot leak into a frozen frame.
func (a Attributes) normalized() Attributes {
	a.Prefix = strings.Trim(a.Prefix, "/")
	a.Namespace = strings.Trim(a.Namespace, "/")
	if a.Middleware != nil {
		a.Middleware = append([]string(nil), a.Middleware...)
	}
	return a
}

// isZero reports whether the frame contributes nothing.
func (a Attributes) isZero() bool {
	return len(a.Middleware) == 0 && a.Prefix == "" && a.Namespace == ""
}

// aliasResolver maps a middleware alias to its concrete handler identifiers.
// The second return value reports whether the alias is known.
type aliasResolver func(alias string) ([]string, bool)

// groupStack is an ordered sequence of attribute frames, outermost frame
// first. A stack is an immutable snapshot owned by a single *Group value:
// nesting appends onto a copy, so sibling and parent groups never observe
// each other's frames and a panicking group callback cannot strand a frame.
type groupStack []Attributes

// push returns a new stack with frame appended. The receiver is not modified.
func (s groupStack) push(frame Attributes) groupStack {
	next := make(groupStack, len(s), len(s)+1)
	copy(next, s)
	return append(next, frame)
}

// mergedPrefix joins every frame's prefix with "/" in push order.
// Frames with an empty prefix contribute nothing.
func (s groupStack) mergedPrefix() string {
	return s.joined(func(a Attributes) string { return a.Prefix })
}

// mergedNamespace joins every frame's namespace with "/" in push order.
// Segments accumulate outermost to innermost; inner frames never override
// outer ones.
func (s groupStack) mergedNamespace() string {
	return s.joined(func(a Attributes) string { return a.Namespace })
}

func (s groupStack) joined(field func(Attributes) string) string {
	parts := make([]string, 0, len(s))
	for _, frame := range s {
		if v := field(frame); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "/")
}

// mergedMiddleware resolves every alias in every frame through resolve,
// flattens the results in push order, and deduplicates them keeping the
// first occurrence of each concrete identifier.
//
// Aliases the resolver does not know are returned in unknown; the caller
// decides whether that is a skip or a failure.
func (s groupStack) mergedMiddleware(resolve aliasResolver) (resolved, unknown []string) {
	seen := make(map[string]struct{})
	for _, frame := range s {
		for _, alias := range frame.Middleware {
			targets, ok := resolve(alias)
			if !ok {
				unknown = append(unknown, alias)
				continue
			}
			for _, target := range targets {
				if _, dup := seen[target]; dup {
					continue
				}
				seen[target] = struct{}{}
				resolved = append(resolved, target)
			}
		}
	}
	return resolved, unknown
}

// merged computes the effective attributes visible to a route registered
// right now: the joined prefix and namespace plus the resolved, deduplicated
// middleware list.
func (s groupStack) merged(resolve aliasResolver) (Attributes, []string) {
	resolved, unknown := s.mergedMiddleware(resolve)
	return Attributes{
		Middleware: resolved,
		Prefix:     s.mergedPrefix(),
		Namespace:  s.mergedNamespace(),
	}, unknown
}
