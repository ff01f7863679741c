// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service holds the business logic that turns Mailchimp notifications into Drive
// permission changes.
package service

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/metrics"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/redaction"
)

// webhookTranslatorOption defines a function type for setting options on the translator
type webhookTranslatorOption func(*webhookTranslator)

// WithTokenProvider sets the credential provider
func WithTokenProvider(provider port.TokenProvider) webhookTranslatorOption {
	return func(w *webhookTranslator) {
		w.tokenProvider = provider
	}
}

// WithPermissionClient sets the Drive permission client
func WithPermissionClient(client port.PermissionClient) webhookTranslatorOption {
	return func(w *webhookTranslator) {
		w.permissionClient = client
	}
}

// WithAccessEventPublisher sets the publisher notified after a completed access change (may be nil)
func WithAccessEventPublisher(publisher port.AccessEventPublisher) webhookTranslatorOption {
	return func(w *webhookTranslator) {
		w.publisher = publisher
	}
}

// webhookTranslator maps notifications onto grant and revoke calls
type webhookTranslator struct {
	tokenProvider    port.TokenProvider
	permissionClient port.PermissionClient
	publisher        port.AccessEventPublisher // May be nil when events are disabled
}

// NewWebhookTranslator creates a new translator using the option pattern
func NewWebhookTranslator(opts ...webhookTranslatorOption) port.NotificationHandler {
	t := &webhookTranslator{}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Handle applies the permission change a notification asks for.
// Unsupported actions fail without requesting a token or touching Drive.
func (t *webhookTranslator) Handle(ctx context.Context, notification model.Notification) error {
	action := notification.Action.String()

	if !notification.IsActionable() {
		attrs := []any{"action", notification.RawAction}
		if body, ok := ctx.Value(constants.WebhookBodyContextKey).([]byte); ok {
			attrs = append(attrs, "body", string(body))
		}
		slog.InfoContext(ctx, "ignoring unsupported webhook action", attrs...)
		metrics.WebhookNotificationsTotal.WithLabelValues(action, metrics.ResultUnsupported).Inc()
		return errors.NewUnsupportedAction(notification.RawAction)
	}

	if notification.Email == "" {
		slog.WarnContext(ctx, "webhook notification has no subscriber email", "action", action)
		metrics.WebhookNotificationsTotal.WithLabelValues(action, metrics.ResultInvalid).Inc()
		return errors.NewValidation("subscriber email is required for " + action)
	}

	logger := slog.With("action", action, "email", redaction.RedactEmail(notification.Email))

	token, err := t.tokenProvider.Token(ctx)
	if err != nil {
		metrics.WebhookNotificationsTotal.WithLabelValues(action, metrics.ResultFailure).Inc()
		return err
	}

	var subject string
	switch notification.Action {
	case model.ActionSubscribe:
		err = t.permissionClient.Grant(ctx, notification.Email, token)
		subject = constants.AccessGrantedSubject
	case model.ActionUnsubscribe:
		err = t.permissionClient.Revoke(ctx, notification.Email, token)
		subject = constants.AccessRevokedSubject
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to apply Drive permission change", "error", err)
		metrics.WebhookNotificationsTotal.WithLabelValues(action, metrics.ResultFailure).Inc()
		return err
	}

	metrics.WebhookNotificationsTotal.WithLabelValues(action, metrics.ResultSuccess).Inc()
	logger.InfoContext(ctx, "Drive permission change applied",
		"resource_count", len(t.permissionClient.ResourceIDs()),
	)

	t.publish(ctx, subject, notification)

	return nil
}

// publish announces the change; failures are logged and never returned
func (t *webhookTranslator) publish(ctx context.Context, subject string, notification model.Notification) {
	if t.publisher == nil {
		return
	}

	operation := constants.OperationGrant
	if notification.Action == model.ActionUnsubscribe {
		operation = constants.OperationRevoke
	}

	event := model.NewAccessEvent(operation, notification.Email, t.permissionClient.ResourceIDs())
	if err := t.publisher.Publish(ctx, subject, event); err != nil {
		slog.WarnContext(ctx, "failed to publish access event",
			"error", err,
			"subject", subject,
			"event_id", event.ID,
		)
	}
}
