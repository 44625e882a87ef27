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

package requestid

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Option defines functional options for requestid middleware configuration.
type Option func(*config)

// config holds the configuration for the requestid middleware.
type config struct {
	headerName    string
	generator     func() string
	allowClientID bool
}

// defaultConfig returns the default configuration for requestid middleware.
func defaultConfig() *config {
	return &config{
		headerName:    "X-Request-ID",
		generator:     generateRandomID,
		allowClientID: true,
	}
}

// WithHeader sets the header name carrying the request ID.
func WithHeader(name string) Option {
	return func(cfg *config) {
		cfg.headerName = name
	}
}

// WithGenerator sets a custom ID generator function.
func WithGenerator(generator func() string) Option {
	return func(cfg *config) {
		cfg.generator = generator
	}
}

// WithUUID generates request IDs as random (v4) UUIDs.
func WithUUID() Option {
	return func(cfg *config) {
		cfg.generator = func() string {
			return uuid.New().String()
		}
	}
}

// WithULID generates request IDs as ULIDs, which sort by creation time.
func WithULID() Option {
	return func(cfg *config) {
		cfg.generator = func() string {
			return ulid.Make().String()
		}
	}
}

// WithAllowClientID controls whether a client-supplied ID in the request
// header is trusted. Enabled by default; disable on public edges where
// clients should not choose their own correlation IDs.
func WithAllowClientID(allow bool) Option {
	return func(cfg *config) {
		cfg.allowClientID = allow
	}
}
