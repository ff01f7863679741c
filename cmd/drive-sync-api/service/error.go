// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	lfxerrors "github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/errors"
)

// errorResponse is the JSON body returned for every failed request
type errorResponse struct {
	Message string `json:"message"`
}

// statusForError maps the error taxonomy onto HTTP status codes
func statusForError(err error) int {
	var (
		unsupported  lfxerrors.UnsupportedAction
		validation   lfxerrors.Validation
		auth         lfxerrors.Auth
		idResolution lfxerrors.IDResolution
		remoteAPI    lfxerrors.RemoteAPI
		unavailable  lfxerrors.ServiceUnavailable
	)

	switch {
	case errors.As(err, &unsupported), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &auth):
		return http.StatusInternalServerError
	case errors.As(err, &idResolution), errors.As(err, &remoteAPI):
		return http.StatusBadGateway
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "request failed", "error", err, "status", status)
	} else {
		slog.InfoContext(ctx, "request rejected", "error", err, "status", status)
	}

	writeJSON(ctx, w, status, errorResponse{Message: err.Error()})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.WarnContext(ctx, "failed to write response body", "error", err)
	}
}
