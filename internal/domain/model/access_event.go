// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"time"

	"github.com/google/uuid"
)

// AccessEvent is published after a subscriber's Drive access changed on every target resource
type AccessEvent struct {
	ID          string    `json:"id" msgpack:"id"`
	Action      string    `json:"action" msgpack:"action"`
	Email       string    `json:"email" msgpack:"email"`
	ResourceIDs []string  `json:"resource_ids" msgpack:"resource_ids"`
	OccurredAt  time.Time `json:"occurred_at" msgpack:"occurred_at"`
}

// NewAccessEvent creates an event with a fresh id
func NewAccessEvent(action, email string, resourceIDs []string) *AccessEvent {
	return &AccessEvent{
		ID:          uuid.New().String(),
		Action:      action,
		Email:       email,
		ResourceIDs: append([]string(nil), resourceIDs...),
		OccurredAt:  time.Now().UTC(),
	}
}
