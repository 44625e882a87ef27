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

// Package middleware holds shared declarations for the middleware
// subpackages: context keys and common helpers.
package middleware

// ContextKey is a type for context keys to avoid collisions with other
// packages.
type ContextKey string

// Context keys used across middlewares. Defined here to ensure uniqueness.
const (
	// RequestIDKey is the context key for storing the request ID.
	// Set by the requestid middleware.
	RequestIDKey ContextKey = "middleware.request_id"
)
