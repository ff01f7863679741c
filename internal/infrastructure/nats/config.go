// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Event encodings supported by the access event publisher
const (
	EncodingJSON    = "json"
	EncodingMsgpack = "msgpack"
)

// Config holds the NATS connection and publishing configuration
type Config struct {
	// URL is the NATS server URL
	URL string

	// Timeout is the connection timeout
	Timeout time.Duration

	// MaxReconnect is the maximum number of reconnection attempts
	MaxReconnect int

	// ReconnectWait is the time to wait between reconnection attempts
	ReconnectWait time.Duration

	// Encoding is the wire format of published events, json or msgpack
	Encoding string
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		URL:           "nats://localhost:4222",
		Timeout:       10 * time.Second,
		MaxReconnect:  3,
		ReconnectWait: 2 * time.Second,
		Encoding:      EncodingJSON,
	}
}

// NewConfigFromEnv creates a Config from environment variables.
// Unlike the optional Drive settings, a malformed NATS value is an error.
func NewConfigFromEnv() (Config, error) {
	config := DefaultConfig()

	if url := os.Getenv("NATS_URL"); url != "" {
		config.URL = url
	}

	if timeout := os.Getenv("NATS_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NATS timeout duration %q: %w", timeout, err)
		}
		config.Timeout = d
	}

	if maxReconnect := os.Getenv("NATS_MAX_RECONNECT"); maxReconnect != "" {
		n, err := strconv.Atoi(maxReconnect)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NATS max reconnect value %q: %w", maxReconnect, err)
		}
		config.MaxReconnect = n
	}

	if reconnectWait := os.Getenv("NATS_RECONNECT_WAIT"); reconnectWait != "" {
		d, err := time.ParseDuration(reconnectWait)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NATS reconnect wait duration %q: %w", reconnectWait, err)
		}
		config.ReconnectWait = d
	}

	if encoding := os.Getenv("EVENTS_ENCODING"); encoding != "" {
		if encoding != EncodingJSON && encoding != EncodingMsgpack {
			return Config{}, fmt.Errorf("unsupported events encoding %q", encoding)
		}
		config.Encoding = encoding
	}

	return config, nil
}
