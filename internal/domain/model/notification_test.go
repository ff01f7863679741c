// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Action
	}{
		{"subscribe", "subscribe", ActionSubscribe},
		{"unsubscribe", "unsubscribe", ActionUnsubscribe},
		{"cleaned is tolerated", "cleaned", ActionOther},
		{"profile update is tolerated", "profile", ActionOther},
		{"email change is tolerated", "upemail", ActionOther},
		{"matching is case sensitive", "Subscribe", ActionOther},
		{"surrounding space is not trimmed", " subscribe", ActionOther},
		{"empty", "", ActionOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAction(tt.raw))
		})
	}
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "subscribe", ActionSubscribe.String())
	assert.Equal(t, "unsubscribe", ActionUnsubscribe.String())
	assert.Equal(t, "other", ActionOther.String())
}

func TestNewNotification(t *testing.T) {
	t.Run("keeps raw action and trims email", func(t *testing.T) {
		n := NewNotification("cleaned", "  a@b.com ")
		assert.Equal(t, ActionOther, n.Action)
		assert.Equal(t, "cleaned", n.RawAction)
		assert.Equal(t, "a@b.com", n.Email)
		assert.False(t, n.ReceivedAt.IsZero())
		assert.False(t, n.IsActionable())
	})

	t.Run("subscribe and unsubscribe are actionable", func(t *testing.T) {
		assert.True(t, NewNotification("subscribe", "a@b.com").IsActionable())
		assert.True(t, NewNotification("unsubscribe", "a@b.com").IsActionable())
	})
}

func TestAccessTokenAuthorizationHeader(t *testing.T) {
	assert.Equal(t, "Bearer abc", AccessToken{Value: "abc"}.AuthorizationHeader())
	assert.Equal(t, "Bearer abc", AccessToken{Value: "abc", Type: "Bearer"}.AuthorizationHeader())
}
