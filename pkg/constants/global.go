// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants defines global constants used throughout the drive sync service.
package constants

// Service constants
const (
	// ServiceName is the name of this service
	ServiceName = "drive-sync"

	// OTelServiceName is the default OpenTelemetry service.name
	OTelServiceName = "lfx-v2-drive-sync-service"
)

// HTTP header constants
const (
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-Id"
)

// Environment variables
const (
	// EnvNATSURL is the environment variable for NATS server URL
	EnvNATSURL = "NATS_URL"
	// EnvPublisherSource selects the access event publisher implementation (nats|noop)
	EnvPublisherSource = "PUBLISHER_SOURCE"
	// EnvDriveIDs is a comma separated list of target drive or folder ids
	EnvDriveIDs = "DRIVE_IDS"
	// EnvSecretFile is the path to the Google service account key
	EnvSecretFile = "GOOGLE_SECRET_FILE"
	// EnvPort is the listening port of the HTTP server
	EnvPort = "PORT"
)
