// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package google

import (
	"context"
	"errors"
	"log/slog"

	pkgerrors "github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/httpclient"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/redaction"
)

// MapHTTPError maps httpclient errors from a create or delete call to a RemoteAPI error
// tagged with the resource and subject
func MapHTTPError(ctx context.Context, err error, operation, resourceID, email string) error {
	if err == nil {
		return nil
	}

	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		slog.WarnContext(ctx, "Drive API returned an error status",
			"operation", operation,
			"resource_id", resourceID,
			"email", redaction.RedactEmail(email),
			"status_code", statusErr.StatusCode,
			"message", statusErr.Message,
		)
		return pkgerrors.NewRemoteAPI(operation, resourceID, email, statusErr.StatusCode, err)
	}

	slog.ErrorContext(ctx, "Drive API request failed with non-HTTP error",
		"operation", operation,
		"resource_id", resourceID,
		"email", redaction.RedactEmail(email),
		"error", err.Error(),
	)
	return pkgerrors.NewRemoteAPI(operation, resourceID, email, 0, err)
}
