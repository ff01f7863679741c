// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"net/http"
	"time"
)

// DefaultMaxResponseBytes caps how much of a response body is read
const DefaultMaxResponseBytes int64 = 1 << 20

// Config holds the configuration for the HTTP client
type Config struct {
	// Timeout is the overall timeout of a single request
	Timeout time.Duration

	// MaxResponseBytes caps the response body read into memory
	MaxResponseBytes int64

	// Transport is the base transport, http.DefaultTransport when nil.
	// It is always wrapped with OpenTelemetry instrumentation.
	Transport http.RoundTripper
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:          30 * time.Second,
		MaxResponseBytes: DefaultMaxResponseBytes,
	}
}
