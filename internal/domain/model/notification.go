// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/constants"
)

// Action classifies a Mailchimp notification
type Action int

// Supported actions. Any unrecognized type decodes to ActionOther.
const (
	ActionOther Action = iota
	ActionSubscribe
	ActionUnsubscribe
)

// ParseAction maps the Mailchimp "type" field to an Action.
// Matching is case-sensitive; unknown values are tolerated and become ActionOther.
func ParseAction(raw string) Action {
	switch raw {
	case constants.MailchimpSubscribeAction:
		return ActionSubscribe
	case constants.MailchimpUnsubscribeAction:
		return ActionUnsubscribe
	default:
		return ActionOther
	}
}

// String returns the label used in logs and metrics
func (a Action) String() string {
	switch a {
	case ActionSubscribe:
		return constants.MailchimpSubscribeAction
	case ActionUnsubscribe:
		return constants.MailchimpUnsubscribeAction
	default:
		return "other"
	}
}

// Notification represents a parsed list membership change from Mailchimp
type Notification struct {
	Action     Action
	RawAction  string
	Email      string
	ReceivedAt time.Time
}

// NewNotification builds a Notification from the raw webhook fields
func NewNotification(rawAction, email string) Notification {
	return Notification{
		Action:     ParseAction(rawAction),
		RawAction:  rawAction,
		Email:      strings.TrimSpace(email),
		ReceivedAt: time.Now().UTC(),
	}
}

// IsActionable reports whether the notification maps to a permission change
func (n Notification) IsActionable() bool {
	return n.Action == ActionSubscribe || n.Action == ActionUnsubscribe
}
