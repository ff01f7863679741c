// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package google

import (
	"context"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/log"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/metrics"
)

// CredentialProvider issues Drive-scoped access tokens for a Google service account
type CredentialProvider struct {
	jwtConfig  *jwt.Config
	httpClient *http.Client

	// shared is only set when token reuse is enabled
	shared oauth2.TokenSource
}

// NewCredentialProvider parses a service account JSON key and prepares a token source
// limited to the Drive scope. A malformed key fails with errors.Auth.
func NewCredentialProvider(serviceAccountKey []byte, cfg Config) (*CredentialProvider, error) {
	jwtConfig, err := googleoauth.JWTConfigFromJSON(serviceAccountKey, constants.DriveScope)
	if err != nil {
		return nil, errors.NewAuth("invalid service account key", err)
	}

	if cfg.TokenURL != "" {
		jwtConfig.TokenURL = cfg.TokenURL
	}

	provider := &CredentialProvider{
		jwtConfig: jwtConfig,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	if cfg.ReuseToken {
		provider.shared = jwtConfig.TokenSource(provider.clientContext(context.Background()))
	}

	slog.InfoContext(context.Background(), "service account credential provider initialized",
		"client_email", jwtConfig.Email,
		"token_reuse", cfg.ReuseToken,
	)

	return provider, nil
}

// Token requests an access token from the identity provider.
// Unless reuse is enabled every call performs a full issuance round trip.
func (p *CredentialProvider) Token(ctx context.Context) (model.AccessToken, error) {
	source := p.shared
	if source == nil {
		source = p.jwtConfig.TokenSource(p.clientContext(ctx))
	}

	token, err := source.Token()
	if err != nil {
		metrics.TokenIssuanceTotal.WithLabelValues(metrics.ResultFailure).Inc()
		slog.ErrorContext(ctx, "failed to obtain Drive access token",
			"error", err,
			"client_email", p.jwtConfig.Email,
			log.PriorityCritical(),
		)
		return model.AccessToken{}, errors.NewAuth("failed to obtain Drive access token", err)
	}

	metrics.TokenIssuanceTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	slog.DebugContext(ctx, "obtained Drive access token", "expiry", token.Expiry)

	return model.AccessToken{
		Value:  token.AccessToken,
		Type:   token.Type(),
		Expiry: token.Expiry,
	}, nil
}

// clientContext makes the oauth2 package use our instrumented client for token requests
func (p *CredentialProvider) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

var _ port.TokenProvider = (*CredentialProvider)(nil)
