// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/metrics"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/redaction"
)

// natsConn is the subset of *nats.Conn the publisher needs
type natsConn interface {
	Publish(subject string, data []byte) error
}

// accessEventPublisher implements the AccessEventPublisher interface using NATS
type accessEventPublisher struct {
	client   NATSClientInterface
	conn     natsConn
	encoding string
}

// Publish encodes the event and publishes it on subject
func (p *accessEventPublisher) Publish(ctx context.Context, subject string, event *model.AccessEvent) error {
	if err := p.client.IsReady(ctx); err != nil {
		slog.ErrorContext(ctx, "NATS client is not ready for publishing",
			"error", err,
			"subject", subject,
		)
		metrics.AccessEventsPublishedTotal.WithLabelValues(subject, metrics.ResultFailure).Inc()
		return errors.NewServiceUnavailable("NATS client is not ready", err)
	}

	data, err := encodeEvent(p.encoding, event)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode access event",
			"error", err,
			"subject", subject,
			"encoding", p.encoding,
		)
		metrics.AccessEventsPublishedTotal.WithLabelValues(subject, metrics.ResultFailure).Inc()
		return errors.NewUnexpected("failed to encode access event", err)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		slog.ErrorContext(ctx, "failed to publish access event to NATS",
			"error", err,
			"subject", subject,
		)
		metrics.AccessEventsPublishedTotal.WithLabelValues(subject, metrics.ResultFailure).Inc()
		return errors.NewServiceUnavailable("failed to publish access event", err)
	}

	metrics.AccessEventsPublishedTotal.WithLabelValues(subject, metrics.ResultSuccess).Inc()
	slog.DebugContext(ctx, "access event published successfully",
		"subject", subject,
		"event_id", event.ID,
		"email", redaction.RedactEmail(event.Email),
		"message_size", len(data),
	)

	return nil
}

// IsReady delegates to the underlying NATS client
func (p *accessEventPublisher) IsReady(ctx context.Context) error {
	return p.client.IsReady(ctx)
}

func encodeEvent(encoding string, event *model.AccessEvent) ([]byte, error) {
	if encoding == EncodingMsgpack {
		return msgpack.Marshal(event)
	}
	return json.Marshal(event)
}

// NewAccessEventPublisher creates a new AccessEventPublisher using NATS
func NewAccessEventPublisher(client *NATSClient) port.AccessEventPublisher {
	encoding := client.config.Encoding
	if encoding == "" {
		encoding = EncodingJSON
	}
	return &accessEventPublisher{
		client:   client,
		conn:     client.conn,
		encoding: encoding,
	}
}
