// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/cmd/drive-sync-api/service"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/infrastructure/mock"
	internalservice "github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/constants"
)

func newTestRouter(t *testing.T) (http.Handler, *mock.MockPermissionClient) {
	t.Helper()

	permissions := mock.NewMockPermissionClient("driveA")
	publisher := mock.NewMockAccessEventPublisher()
	translator := internalservice.NewWebhookTranslator(
		internalservice.WithTokenProvider(mock.NewMockTokenProvider("ya29.token")),
		internalservice.WithPermissionClient(permissions),
		internalservice.WithAccessEventPublisher(publisher),
	)

	return newRouter(service.NewWebhookService(translator, publisher)), permissions
}

func TestRouter(t *testing.T) {
	router, permissions := newTestRouter(t)

	t.Run("webhook post", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mailchimp", strings.NewReader("type=subscribe&data%5Bemail%5D=a%40b.com"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(constants.RequestIDHeader))
		assert.Len(t, permissions.Calls(), 1)
	})

	t.Run("unsupported action", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mailchimp", strings.NewReader("type=profile&data%5Bemail%5D=a%40b.com"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	tests := []struct {
		method   string
		path     string
		expected int
	}{
		{http.MethodGet, "/mailchimp", http.StatusOK},
		{http.MethodGet, "/livez", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodPut, "/mailchimp", http.StatusMethodNotAllowed},
		{http.MethodGet, "/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestRunHTTPServer_Shutdown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	router, _ := newTestRouter(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- runHTTPServer(ctx, addr, router, time.Second)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/livez")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
