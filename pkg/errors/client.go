// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// Validation represents a malformed or incomplete inbound request.
type Validation struct {
	base
}

// Error returns the error message for Validation.
func (v Validation) Error() string {
	return v.error()
}

// NewValidation creates a new Validation error with the provided message.
func NewValidation(message string, err ...error) Validation {
	return Validation{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// UnsupportedAction represents a webhook action this service does not act on.
// It is an expected outcome when the upstream list is configured to send more
// event types than subscribe and unsubscribe.
type UnsupportedAction struct {
	base
	Action string
}

// Error returns the error message for UnsupportedAction.
func (u UnsupportedAction) Error() string {
	return u.error()
}

// NewUnsupportedAction creates a new UnsupportedAction error for the given raw action.
func NewUnsupportedAction(action string) UnsupportedAction {
	return UnsupportedAction{
		base: base{
			message: "unsupported webhook action: " + quoteAction(action),
		},
		Action: action,
	}
}

func quoteAction(action string) string {
	if action == "" {
		return `""`
	}
	return `"` + action + `"`
}
