// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package google

import (
	"os"
	"time"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/constants"
)

// Config holds the configuration for the Drive permission client and token provider
type Config struct {
	// BaseURL is the Google APIs base URL; Drive paths are appended to it
	BaseURL string

	// TokenURL overrides the token_uri from the service account key (tests, private endpoints)
	TokenURL string

	// Timeout is the HTTP client timeout for Drive and token requests
	Timeout time.Duration

	// ReuseToken keeps a token until it expires instead of issuing one per notification
	ReuseToken bool
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:    constants.DriveAPIBaseURL,
		Timeout:    30 * time.Second,
		ReuseToken: false,
	}
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() Config {
	config := DefaultConfig()

	if baseURL := os.Getenv("DRIVE_API_BASE_URL"); baseURL != "" {
		config.BaseURL = baseURL
	}

	if tokenURL := os.Getenv("GOOGLE_TOKEN_URL"); tokenURL != "" {
		config.TokenURL = tokenURL
	}

	if timeoutStr := os.Getenv("DRIVE_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			config.Timeout = timeout
		}
	}

	if reuse := os.Getenv("TOKEN_REUSE"); reuse == "true" {
		config.ReuseToken = true
	}

	return config
}
