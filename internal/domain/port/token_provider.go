// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/model"
)

// TokenProvider issues bearer tokens for the Drive permission API
type TokenProvider interface {
	// Token returns a token scoped to Drive access, or an errors.Auth
	Token(ctx context.Context) (model.AccessToken, error)
}
