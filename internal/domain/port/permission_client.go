// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/model"
)

// PermissionClient grants and revokes reader access on every target resource
type PermissionClient interface {
	// Grant creates a reader permission for email on each resource.
	// Fails with errors.RemoteAPI naming the first resource that failed.
	Grant(ctx context.Context, email string, token model.AccessToken) error

	// Revoke resolves email to its permission id once, then deletes that permission on each resource.
	// Fails with errors.IDResolution before any delete, or errors.RemoteAPI.
	Revoke(ctx context.Context, email string, token model.AccessToken) error

	// ResourceIDs returns the configured target resources
	ResourceIDs() []string
}
