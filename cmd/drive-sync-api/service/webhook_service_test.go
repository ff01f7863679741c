// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/infrastructure/google"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/infrastructure/mock"
	internalservice "github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/constants"
	pkgerrors "github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/errors"
)

// recordedCall is one request seen by the fake Drive API
type recordedCall struct {
	Method string
	Path   string
	Body   string
}

// driveServer is a minimal Drive permission API
type driveServer struct {
	mu           sync.Mutex
	calls        []recordedCall
	permissionID string
	server       *httptest.Server
}

func newDriveServer(t *testing.T) *driveServer {
	t.Helper()

	ds := &driveServer{permissionID: "perm123"}
	ds.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		ds.mu.Lock()
		ds.calls = append(ds.calls, recordedCall{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		ds.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]string{"id": ds.permissionID})
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"id":"created"}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	t.Cleanup(ds.server.Close)

	return ds
}

func (ds *driveServer) Calls() []recordedCall {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return append([]recordedCall(nil), ds.calls...)
}

type endToEnd struct {
	drive     *driveServer
	tokens    *mock.MockTokenProvider
	publisher *mock.MockAccessEventPublisher
	service   *WebhookService
}

func newEndToEnd(t *testing.T, driveIDs ...string) *endToEnd {
	t.Helper()

	drive := newDriveServer(t)
	resources, err := model.NewTargetResourceSet(driveIDs)
	require.NoError(t, err)

	client := google.NewClient(google.Config{BaseURL: drive.server.URL, Timeout: 5 * time.Second}, resources)
	tokens := mock.NewMockTokenProvider("ya29.token")
	publisher := mock.NewMockAccessEventPublisher()

	translator := internalservice.NewWebhookTranslator(
		internalservice.WithTokenProvider(tokens),
		internalservice.WithPermissionClient(client),
		internalservice.WithAccessEventPublisher(publisher),
	)

	return &endToEnd{
		drive:     drive,
		tokens:    tokens,
		publisher: publisher,
		service:   NewWebhookService(translator, publisher),
	}
}

func postForm(svc *WebhookService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/mailchimp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	svc.Mailchimp(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	return body.Message
}

func TestMailchimp_SubscribeGrantsReader(t *testing.T) {
	e := newEndToEnd(t, "driveA")

	rec := postForm(e.service, "type=subscribe&data%5Bemail%5D=a%40b.com&data%5Blist_id%5D=abc")
	assert.Equal(t, http.StatusOK, rec.Code)

	calls := e.drive.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/drive/v3/files/driveA/permissions", calls[0].Path)
	assert.JSONEq(t, `{"role":"reader","type":"user","emailAddress":"a@b.com"}`, calls[0].Body)

	assert.Len(t, e.publisher.Events(), 1)
}

func TestMailchimp_UnsubscribeRevokesEverywhere(t *testing.T) {
	e := newEndToEnd(t, "driveA", "driveB")

	rec := postForm(e.service, "type=unsubscribe&data%5Bemail%5D=a%40b.com")
	assert.Equal(t, http.StatusOK, rec.Code)

	calls := e.drive.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, recordedCall{Method: http.MethodGet, Path: "/drive/v2/permissionIds/a@b.com"}, calls[0])
	assert.Equal(t, recordedCall{Method: http.MethodDelete, Path: "/drive/v3/files/driveA/permissions/perm123"}, calls[1])
	assert.Equal(t, recordedCall{Method: http.MethodDelete, Path: "/drive/v3/files/driveB/permissions/perm123"}, calls[2])
}

func TestMailchimp_UnsupportedActionMakesNoCalls(t *testing.T) {
	e := newEndToEnd(t, "driveA")

	rec := postForm(e.service, "type=cleaned&data%5Bemail%5D=a%40b.com")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeMessage(t, rec), `unsupported webhook action: "cleaned"`)

	assert.Empty(t, e.drive.Calls())
	assert.Equal(t, 0, e.tokens.Calls())
}

func TestMailchimp_JSONPayload(t *testing.T) {
	e := newEndToEnd(t, "driveA")

	req := httptest.NewRequest(http.MethodPost, "/mailchimp", strings.NewReader(`{"type":"subscribe","data":{"email":"a@b.com"}}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	e.service.Mailchimp(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, e.drive.Calls(), 1)
}

func TestMailchimp_ErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(e *endToEnd)
		expected int
	}{
		{
			name:     "missing email",
			body:     "type=subscribe",
			expected: http.StatusBadRequest,
		},
		{
			name:     "malformed form",
			body:     "type=%zz",
			expected: http.StatusBadRequest,
		},
		{
			name: "token failure",
			body: "type=subscribe&data%5Bemail%5D=a%40b.com",
			setup: func(e *endToEnd) {
				e.tokens.SetGlobalError(pkgerrors.NewAuth("failed to obtain Drive access token"))
			},
			expected: http.StatusInternalServerError,
		},
		{
			name: "permission id not resolvable",
			body: "type=unsubscribe&data%5Bemail%5D=a%40b.com",
			setup: func(e *endToEnd) {
				e.drive.permissionID = ""
			},
			expected: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEndToEnd(t, "driveA")
			if tt.setup != nil {
				tt.setup(e)
			}

			rec := postForm(e.service, tt.body)
			assert.Equal(t, tt.expected, rec.Code)
			assert.NotEmpty(t, decodeMessage(t, rec))
		})
	}
}

func TestMailchimp_UsesCapturedBody(t *testing.T) {
	e := newEndToEnd(t, "driveA")

	// The body capture middleware already drained r.Body
	req := httptest.NewRequest(http.MethodPost, "/mailchimp", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	ctx := context.WithValue(req.Context(), constants.WebhookBodyContextKey, []byte("type=subscribe&data%5Bemail%5D=a%40b.com"))
	rec := httptest.NewRecorder()
	e.service.Mailchimp(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, e.drive.Calls(), 1)
}

func TestHealthEndpoints(t *testing.T) {
	publisher := mock.NewMockAccessEventPublisher()
	svc := NewWebhookService(nil, publisher)

	rec := httptest.NewRecorder()
	svc.Livez(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	svc.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	publisher.SetReadyError(pkgerrors.NewServiceUnavailable("NATS client is not ready"))
	rec = httptest.NewRecorder()
	svc.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	svc.MailchimpValidation(rec, httptest.NewRequest(http.MethodGet, "/mailchimp", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
