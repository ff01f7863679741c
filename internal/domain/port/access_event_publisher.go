// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/model"
)

// AccessEventPublisher announces completed access changes to downstream consumers
type AccessEventPublisher interface {
	// Publish sends the event on the given subject
	Publish(ctx context.Context, subject string, event *model.AccessEvent) error

	// IsReady reports whether the publisher can currently deliver events
	IsReady(ctx context.Context) error
}
