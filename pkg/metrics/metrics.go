// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values
const (
	ResultSuccess     = "success"
	ResultFailure     = "failure"
	ResultUnsupported = "unsupported"
	ResultInvalid     = "invalid"
)

// Webhook metrics
var (
	WebhookNotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drive_sync_webhook_notifications_total",
			Help: "Total number of Mailchimp notifications received, by action and result",
		},
		[]string{"action", "result"},
	)
)

// Drive API metrics
var (
	DrivePermissionOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drive_sync_permission_operations_total",
			Help: "Total number of per-resource Drive permission operations",
		},
		[]string{"operation", "result"},
	)

	DriveRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "drive_sync_drive_request_duration_seconds",
			Help:    "Duration of Drive API requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"method", "status"},
	)

	TokenIssuanceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drive_sync_token_issuance_total",
			Help: "Total number of service account token requests",
		},
		[]string{"result"},
	)
)

// Event publishing metrics
var (
	AccessEventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drive_sync_access_events_published_total",
			Help: "Total number of access change events published",
		},
		[]string{"subject", "result"},
	)
)
