// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Webhook action types from Mailchimp
const (
	MailchimpSubscribeAction   = "subscribe"
	MailchimpUnsubscribeAction = "unsubscribe"
)

// Mailchimp payload field names
const (
	MailchimpTypeField      = "type"
	MailchimpDataEmailField = "data[email]"
)

// Webhook endpoint
const (
	MailchimpWebhookPath = "/mailchimp"

	// WebhookMaxBodyBytes caps the inbound webhook body
	WebhookMaxBodyBytes = 1 << 20
)
