// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package middleware provides HTTP middleware for the webhook server.
package middleware

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/constants"
)

// WebhookBodyCaptureMiddleware captures the raw Mailchimp request body before it is parsed
// so the exact payload can be logged when an action is not supported
func WebhookBodyCaptureMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = constants.WebhookMaxBodyBytes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Only capture body for the Mailchimp webhook endpoint
			if r.URL.Path == constants.MailchimpWebhookPath {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

				body, err := io.ReadAll(r.Body)
				if err != nil {
					var maxBytesErr *http.MaxBytesError
					if errors.As(err, &maxBytesErr) {
						http.Error(w, fmt.Sprintf("request body too large, max %d bytes allowed", maxBytes), http.StatusRequestEntityTooLarge)
						return
					}
					http.Error(w, "Failed to read request body", http.StatusBadRequest)
					return
				}

				// Replace body so the handler can still read it
				r.Body = io.NopCloser(bytes.NewReader(body))

				ctx := context.WithValue(r.Context(), constants.WebhookBodyContextKey, body)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}
