// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/cmd/drive-sync-api/service"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/constants"
)

// newRouter wires the webhook, health and metrics routes
func newRouter(svc *service.WebhookService) http.Handler {
	router := mux.NewRouter()

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.WebhookBodyCaptureMiddleware(constants.WebhookMaxBodyBytes))

	router.HandleFunc(constants.MailchimpWebhookPath, svc.Mailchimp).Methods(http.MethodPost)
	router.HandleFunc(constants.MailchimpWebhookPath, svc.MailchimpValidation).Methods(http.MethodGet)
	router.HandleFunc("/livez", svc.Livez).Methods(http.MethodGet)
	router.HandleFunc("/readyz", svc.Readyz).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return otelhttp.NewHandler(router, constants.ServiceName)
}

// runHTTPServer serves until ctx is cancelled, then shuts down gracefully
func runHTTPServer(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "HTTP server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.InfoContext(ctx, "shutting down HTTP server", "timeout", shutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
