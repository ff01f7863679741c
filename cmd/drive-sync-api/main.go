// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package main is the entrypoint of the drive sync API, which mirrors Mailchimp list
// membership onto Google Drive reader permissions.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/cmd/drive-sync-api/service"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/infrastructure/google"
	internalservice "github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/log"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/utils"
)

func main() {
	cfg, err := loadConfig(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
		os.Exit(2)
	}

	log.InitStructureLogConfig()

	if err := run(cfg); err != nil {
		slog.Error("drive sync API stopped with an error", "error", err)
		os.Exit(1)
	}
}

func run(cfg serviceConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelShutdown, err := utils.SetupOTelSDK(ctx)
	if err != nil {
		return fmt.Errorf("failed to set up OpenTelemetry: %w", err)
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			slog.Error("failed to shut down OpenTelemetry", "error", err)
		}
	}()

	googleConfig := google.NewConfigFromEnv()

	tokenProvider, err := service.TokenProvider(ctx, cfg.SecretFile, googleConfig)
	if err != nil {
		return err
	}

	permissionClient, err := service.PermissionClient(ctx, cfg.DriveIDs, googleConfig)
	if err != nil {
		return err
	}

	publisher, closePublisher, err := service.AccessEventPublisher(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := closePublisher(); err != nil {
			slog.Warn("failed to close access event publisher", "error", err)
		}
	}()

	translator := internalservice.NewWebhookTranslator(
		internalservice.WithTokenProvider(tokenProvider),
		internalservice.WithPermissionClient(permissionClient),
		internalservice.WithAccessEventPublisher(publisher),
	)

	svc := service.NewWebhookService(translator, publisher)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runHTTPServer(gctx, cfg.addr(), newRouter(svc), cfg.ShutdownTimeout)
	})

	slog.InfoContext(ctx, "drive sync API started",
		"addr", cfg.addr(),
		"drive_ids", cfg.DriveIDs,
	)

	if err := g.Wait(); err != nil {
		return err
	}

	slog.InfoContext(context.Background(), "drive sync API stopped")
	return nil
}
