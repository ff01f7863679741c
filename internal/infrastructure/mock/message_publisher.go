// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"
	"sync"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/port"
)

// PublishedEvent is one event handed to MockAccessEventPublisher
type PublishedEvent struct {
	Subject string
	Event   *model.AccessEvent
}

// MockAccessEventPublisher keeps published events in memory
type MockAccessEventPublisher struct {
	mu         sync.Mutex
	events     []PublishedEvent
	publishErr error
	readyErr   error
}

// Ensure MockAccessEventPublisher implements the AccessEventPublisher interface
var _ port.AccessEventPublisher = (*MockAccessEventPublisher)(nil)

// NewMockAccessEventPublisher creates a new in-memory publisher
func NewMockAccessEventPublisher() *MockAccessEventPublisher {
	return &MockAccessEventPublisher{}
}

// Publish stores the event (mock implementation - logs only)
func (m *MockAccessEventPublisher) Publish(ctx context.Context, subject string, event *model.AccessEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.publishErr != nil {
		return m.publishErr
	}

	m.events = append(m.events, PublishedEvent{Subject: subject, Event: event})
	slog.DebugContext(ctx, "mock access event published",
		"subject", subject,
		"event_id", event.ID,
	)
	return nil
}

// IsReady returns the configured readiness error
func (m *MockAccessEventPublisher) IsReady(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readyErr
}

// SetPublishError makes Publish fail with err
func (m *MockAccessEventPublisher) SetPublishError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishErr = err
}

// SetReadyError makes IsReady fail with err
func (m *MockAccessEventPublisher) SetReadyError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readyErr = err
}

// Events returns the published events in order
func (m *MockAccessEventPublisher) Events() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PublishedEvent(nil), m.events...)
}

// noopAccessEventPublisher discards events. Used when NATS is not configured.
type noopAccessEventPublisher struct{}

// NewNoopAccessEventPublisher creates a publisher that only logs
func NewNoopAccessEventPublisher() port.AccessEventPublisher {
	return noopAccessEventPublisher{}
}

// Publish logs the event subject and drops it
func (noopAccessEventPublisher) Publish(ctx context.Context, subject string, event *model.AccessEvent) error {
	slog.DebugContext(ctx, "access event publishing disabled, dropping event",
		"subject", subject,
		"event_id", event.ID,
	)
	return nil
}

// IsReady always succeeds
func (noopAccessEventPublisher) IsReady(context.Context) error {
	return nil
}
