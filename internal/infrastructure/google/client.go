// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package google implements the Drive permission API client and the service account
// credential provider.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/httpclient"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/metrics"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/redaction"
)

// driveMetricsRoundTripper records the duration and status of every Drive request
type driveMetricsRoundTripper struct{}

// RoundTrip observes the request latency, labelled by method and status
func (driveMetricsRoundTripper) RoundTrip(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	start := time.Now()
	resp, err := next(req)

	status := "error"
	if resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	metrics.DriveRequestDuration.WithLabelValues(req.Method, status).Observe(time.Since(start).Seconds())

	slog.DebugContext(req.Context(), "Drive API request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"status", status,
	)

	return resp, err
}

// Client grants and revokes Drive reader permissions across the target resource set
type Client struct {
	config     Config
	httpClient *httpclient.Client
	resources  model.TargetResourceSet
}

// NewClient creates a new Drive permission client for the given resources
func NewClient(cfg Config, resources model.TargetResourceSet) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.DriveAPIBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	httpConfig := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		httpConfig.Timeout = cfg.Timeout
	}

	client := &Client{
		config:     cfg,
		httpClient: httpclient.NewClient(httpConfig),
		resources:  resources,
	}
	client.httpClient.AddRoundTripper(driveMetricsRoundTripper{})

	slog.InfoContext(context.Background(), "Drive permission client initialized",
		"base_url", cfg.BaseURL,
		"resource_count", resources.Len(),
	)

	return client
}

// ResourceIDs returns the configured target resources
func (c *Client) ResourceIDs() []string {
	return c.resources.IDs()
}

// Grant creates a reader permission for email on every resource, in order.
// The first failure stops the loop; resources granted before it stay granted.
func (c *Client) Grant(ctx context.Context, email string, token model.AccessToken) error {
	for _, resourceID := range c.resources.IDs() {
		if err := c.createPermission(ctx, resourceID, email, token); err != nil {
			metrics.DrivePermissionOperationsTotal.WithLabelValues(constants.OperationGrant, metrics.ResultFailure).Inc()
			return err
		}
		metrics.DrivePermissionOperationsTotal.WithLabelValues(constants.OperationGrant, metrics.ResultSuccess).Inc()
	}
	return nil
}

// Revoke resolves the permission id for email once, then deletes it on every resource.
// No delete is issued when resolution fails.
func (c *Client) Revoke(ctx context.Context, email string, token model.AccessToken) error {
	permissionID, err := c.resolvePermissionID(ctx, email, token)
	if err != nil {
		return err
	}

	for _, resourceID := range c.resources.IDs() {
		if err := c.deletePermission(ctx, resourceID, permissionID, email, token); err != nil {
			metrics.DrivePermissionOperationsTotal.WithLabelValues(constants.OperationRevoke, metrics.ResultFailure).Inc()
			return err
		}
		metrics.DrivePermissionOperationsTotal.WithLabelValues(constants.OperationRevoke, metrics.ResultSuccess).Inc()
	}
	return nil
}

func (c *Client) createPermission(ctx context.Context, resourceID, email string, token model.AccessToken) error {
	slog.InfoContext(ctx, "granting Drive reader permission",
		"resource_id", resourceID,
		"email", redaction.RedactEmail(email),
	)

	params, err := query.Values(permissionQuery{SupportsAllDrives: true, Alt: "json"})
	if err != nil {
		return fmt.Errorf("failed to encode query: %w", err)
	}

	body, err := json.Marshal(PermissionCreateRequest{
		Role:         constants.DrivePermissionRoleReader,
		Type:         constants.DrivePermissionTypeUser,
		EmailAddress: email,
	})
	if err != nil {
		return fmt.Errorf("failed to encode permission: %w", err)
	}

	reqURL := fmt.Sprintf("%s/drive/v3/files/%s/permissions?%s",
		c.config.BaseURL, url.PathEscape(resourceID), params.Encode())

	headers := map[string]string{
		"Authorization": token.AuthorizationHeader(),
		"Content-Type":  "application/json",
	}

	if _, err := c.httpClient.Request(ctx, http.MethodPost, reqURL, bytes.NewReader(body), headers); err != nil {
		return MapHTTPError(ctx, err, constants.OperationGrant, resourceID, email)
	}

	return nil
}

func (c *Client) deletePermission(ctx context.Context, resourceID, permissionID, email string, token model.AccessToken) error {
	slog.InfoContext(ctx, "removing Drive permission",
		"resource_id", resourceID,
		"permission_id", permissionID,
		"email", redaction.RedactEmail(email),
	)

	params, err := query.Values(permissionQuery{SupportsAllDrives: true})
	if err != nil {
		return fmt.Errorf("failed to encode query: %w", err)
	}

	reqURL := fmt.Sprintf("%s/drive/v3/files/%s/permissions/%s?%s",
		c.config.BaseURL, url.PathEscape(resourceID), url.PathEscape(permissionID), params.Encode())

	headers := map[string]string{
		"Authorization": token.AuthorizationHeader(),
	}

	if _, err := c.httpClient.Request(ctx, http.MethodDelete, reqURL, nil, headers); err != nil {
		return MapHTTPError(ctx, err, constants.OperationRevoke, resourceID, email)
	}

	return nil
}

// resolvePermissionID looks up the permission id Drive associates with email.
// Drive v3 has no such lookup, so this uses the v2 permissionIds endpoint.
func (c *Client) resolvePermissionID(ctx context.Context, email string, token model.AccessToken) (string, error) {
	reqURL := fmt.Sprintf("%s/drive/v2/permissionIds/%s", c.config.BaseURL, url.PathEscape(email))

	headers := map[string]string{
		"Authorization": token.AuthorizationHeader(),
	}

	resp, err := c.httpClient.Request(ctx, http.MethodGet, reqURL, nil, headers)
	if err != nil {
		slog.WarnContext(ctx, "permission id lookup failed",
			"email", redaction.RedactEmail(email),
			"error", err,
		)
		return "", errors.NewIDResolution(email, errors.IDResolutionLookupFailed, "lookup request did not succeed", err)
	}

	permissionID, err := parsePermissionID(email, resp.Body)
	if err != nil {
		slog.WarnContext(ctx, "permission id lookup returned an unusable body",
			"email", redaction.RedactEmail(email),
			"error", err,
		)
		return "", err
	}

	slog.DebugContext(ctx, "resolved permission id",
		"email", redaction.RedactEmail(email),
		"permission_id", permissionID,
	)

	return permissionID, nil
}

// parsePermissionID requires a JSON object with a non-empty string "id" field.
// Each way of failing maps to its own IDResolution reason.
func parsePermissionID(email string, body []byte) (string, error) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", errors.NewIDResolution(email, errors.IDResolutionUnparseableBody, "response is not valid JSON", err)
	}

	object, ok := decoded.(map[string]any)
	if !ok {
		return "", errors.NewIDResolution(email, errors.IDResolutionUnparseableBody, "response is not a JSON object")
	}

	rawID, ok := object["id"]
	if !ok {
		return "", errors.NewIDResolution(email, errors.IDResolutionMissingField, "response has no id field")
	}

	id, ok := rawID.(string)
	if !ok {
		return "", errors.NewIDResolution(email, errors.IDResolutionWrongType,
			fmt.Sprintf("id field is %T, not a string", rawID))
	}

	if id == "" {
		return "", errors.NewIDResolution(email, errors.IDResolutionMissingField, "id field is empty")
	}

	return id, nil
}

var _ port.PermissionClient = (*Client)(nil)
