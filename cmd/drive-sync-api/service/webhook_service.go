// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service implements the HTTP endpoints of the drive sync API.
package service

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/metrics"
)

// WebhookService serves the Mailchimp webhook and the health endpoints
type WebhookService struct {
	handler   port.NotificationHandler
	publisher port.AccessEventPublisher
}

// NewWebhookService returns the webhook endpoint implementation
func NewWebhookService(handler port.NotificationHandler, publisher port.AccessEventPublisher) *WebhookService {
	return &WebhookService{
		handler:   handler,
		publisher: publisher,
	}
}

// Mailchimp handles POST /mailchimp
func (s *WebhookService) Mailchimp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, ok := ctx.Value(constants.WebhookBodyContextKey).([]byte)
	if !ok {
		var err error
		body, err = io.ReadAll(io.LimitReader(r.Body, constants.WebhookMaxBodyBytes))
		if err != nil {
			writeError(ctx, w, errors.NewValidation("failed to read request body", err))
			return
		}
	}

	notification, err := convertMailchimpPayload(r.Header.Get("Content-Type"), body)
	if err != nil {
		metrics.WebhookNotificationsTotal.WithLabelValues("unknown", metrics.ResultInvalid).Inc()
		writeError(ctx, w, err)
		return
	}

	slog.DebugContext(ctx, "mailchimp notification received",
		"action", notification.RawAction,
	)

	if err := s.handler.Handle(ctx, notification); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// MailchimpValidation answers the GET Mailchimp sends when a webhook URL is registered
func (s *WebhookService) MailchimpValidation(w http.ResponseWriter, r *http.Request) {
	slog.DebugContext(r.Context(), "mailchimp webhook validation request")
	w.WriteHeader(http.StatusOK)
}

// Livez implements the livez endpoint for liveness probes.
func (s *WebhookService) Livez(w http.ResponseWriter, r *http.Request) {
	slog.DebugContext(r.Context(), "liveness check completed successfully")
	_, _ = w.Write([]byte("OK"))
}

// Readyz implements the readyz endpoint for readiness probes.
func (s *WebhookService) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.publisher != nil {
		if err := s.publisher.IsReady(ctx); err != nil {
			slog.ErrorContext(ctx, "service not ready", "error", err)
			writeError(ctx, w, err)
			return
		}
	}

	_, _ = w.Write([]byte("OK\n"))
}
