// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/model"
)

// NotificationHandler translates a Mailchimp notification into Drive permission changes
type NotificationHandler interface {
	Handle(ctx context.Context, notification model.Notification) error
}
