// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/infrastructure/google"
	infrastructure "github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/infrastructure/nats"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/constants"
)

// Publisher sources accepted in PUBLISHER_SOURCE
const (
	PublisherSourceNATS = "nats"
	PublisherSourceNoop = "noop"
)

// TokenProvider initializes the service account credential provider from the key file
func TokenProvider(ctx context.Context, secretFile string, cfg google.Config) (port.TokenProvider, error) {
	key, err := os.ReadFile(secretFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account key %s: %w", secretFile, err)
	}

	slog.InfoContext(ctx, "initializing service account credential provider", "secret_file", secretFile)
	return google.NewCredentialProvider(key, cfg)
}

// PermissionClient initializes the Drive permission client for the configured drive ids
func PermissionClient(ctx context.Context, driveIDs []string, cfg google.Config) (port.PermissionClient, error) {
	resources, err := model.NewTargetResourceSet(driveIDs)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "initializing Drive permission client", "drive_ids", resources.IDs())
	return google.NewClient(cfg, resources), nil
}

// AccessEventPublisher initializes the access event publisher based on PUBLISHER_SOURCE.
// It defaults to nats when NATS_URL is set and to noop otherwise. The returned close
// function releases the underlying connection.
func AccessEventPublisher(ctx context.Context) (port.AccessEventPublisher, func() error, error) {
	source := os.Getenv(constants.EnvPublisherSource)
	if source == "" {
		source = PublisherSourceNoop
		if os.Getenv(constants.EnvNATSURL) != "" {
			source = PublisherSourceNATS
		}
	}

	switch source {
	case PublisherSourceNoop:
		slog.InfoContext(ctx, "access event publishing disabled")
		return infrastructure.NewNoopAccessEventPublisher(), func() error { return nil }, nil

	case PublisherSourceNATS:
		config, err := nats.NewConfigFromEnv()
		if err != nil {
			return nil, nil, err
		}

		slog.InfoContext(ctx, "initializing NATS access event publisher", "encoding", config.Encoding)
		natsClient, err := nats.NewClient(ctx, config)
		if err != nil {
			return nil, nil, err
		}
		return nats.NewAccessEventPublisher(natsClient), natsClient.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported access event publisher implementation: %s", source)
	}
}
