// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package mock provides in-memory implementations of the domain ports for tests and local runs.
package mock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/redaction"
)

// Operation names accepted by SetErrorForOperation
const (
	OperationToken  = "Token"
	OperationGrant  = "Grant"
	OperationRevoke = "Revoke"
)

// errorSimulation holds configured failures. A global error takes precedence over
// an operation error.
type errorSimulation struct {
	mu              sync.RWMutex
	globalError     error
	operationErrors map[string]error
}

// SetGlobalError makes every operation fail with err
func (s *errorSimulation) SetGlobalError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalError = err
}

// SetErrorForOperation makes the named operation fail with err
func (s *errorSimulation) SetErrorForOperation(operation string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.operationErrors == nil {
		s.operationErrors = make(map[string]error)
	}
	s.operationErrors[operation] = err
}

// ClearErrorSimulation removes every configured failure
func (s *errorSimulation) ClearErrorSimulation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalError = nil
	s.operationErrors = nil
}

func (s *errorSimulation) errorFor(operation string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.globalError != nil {
		return s.globalError
	}
	return s.operationErrors[operation]
}

// MockTokenProvider issues static tokens and counts issuances
type MockTokenProvider struct {
	errorSimulation

	mu    sync.Mutex
	calls int
	value string
}

// NewMockTokenProvider creates a token provider that returns value on every call
func NewMockTokenProvider(value string) *MockTokenProvider {
	return &MockTokenProvider{value: value}
}

// Token returns the configured token or the simulated error
func (m *MockTokenProvider) Token(ctx context.Context) (model.AccessToken, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if err := m.errorFor(OperationToken); err != nil {
		return model.AccessToken{}, err
	}

	slog.DebugContext(ctx, "mock access token issued")
	return model.AccessToken{
		Value:  m.value,
		Type:   "Bearer",
		Expiry: time.Now().Add(time.Hour),
	}, nil
}

// Calls returns how many tokens were requested
func (m *MockTokenProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// PermissionCall is one Grant or Revoke observed by MockPermissionClient
type PermissionCall struct {
	Operation string
	Email     string
	Token     string
}

// MockPermissionClient records permission changes instead of calling Drive
type MockPermissionClient struct {
	errorSimulation

	mu        sync.Mutex
	calls     []PermissionCall
	resources []string
}

// NewMockPermissionClient creates a permission client for the given resource ids
func NewMockPermissionClient(resourceIDs ...string) *MockPermissionClient {
	return &MockPermissionClient{resources: append([]string(nil), resourceIDs...)}
}

// Grant records the call or returns the simulated error
func (m *MockPermissionClient) Grant(ctx context.Context, email string, token model.AccessToken) error {
	return m.record(ctx, OperationGrant, email, token)
}

// Revoke records the call or returns the simulated error
func (m *MockPermissionClient) Revoke(ctx context.Context, email string, token model.AccessToken) error {
	return m.record(ctx, OperationRevoke, email, token)
}

// ResourceIDs returns the configured resource ids
func (m *MockPermissionClient) ResourceIDs() []string {
	return append([]string(nil), m.resources...)
}

// Calls returns every recorded call in order
func (m *MockPermissionClient) Calls() []PermissionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PermissionCall(nil), m.calls...)
}

func (m *MockPermissionClient) record(ctx context.Context, operation, email string, token model.AccessToken) error {
	m.mu.Lock()
	m.calls = append(m.calls, PermissionCall{Operation: operation, Email: email, Token: token.Value})
	m.mu.Unlock()

	if err := m.errorFor(operation); err != nil {
		return err
	}

	slog.InfoContext(ctx, "mock permission change applied",
		"operation", operation,
		"email", redaction.RedactEmail(email),
		"resource_count", len(m.resources),
	)
	return nil
}

var (
	_ port.TokenProvider    = (*MockTokenProvider)(nil)
	_ port.PermissionClient = (*MockPermissionClient)(nil)
)
