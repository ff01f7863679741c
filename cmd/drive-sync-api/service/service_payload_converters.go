// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"encoding/json"
	"mime"
	"net/url"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/errors"
)

// mailchimpJSONPayload accepts both the nested and the flattened form of the email field
type mailchimpJSONPayload struct {
	Type      any `json:"type"`
	Data      any `json:"data"`
	FlatEmail any `json:"data[email]"`
}

// convertMailchimpPayload decodes a Mailchimp webhook body into a Notification.
// Mailchimp posts application/x-www-form-urlencoded; JSON is accepted as well.
func convertMailchimpPayload(contentType string, body []byte) (model.Notification, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "application/json" {
		return convertJSONPayload(body)
	}
	return convertFormPayload(body)
}

func convertFormPayload(body []byte) (model.Notification, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return model.Notification{}, errors.NewValidation("malformed form payload", err)
	}

	return model.NewNotification(
		values.Get(constants.MailchimpTypeField),
		values.Get(constants.MailchimpDataEmailField),
	), nil
}

func convertJSONPayload(body []byte) (model.Notification, error) {
	var payload mailchimpJSONPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return model.Notification{}, errors.NewValidation("malformed JSON payload", err)
	}

	action, err := optionalString(payload.Type, constants.MailchimpTypeField)
	if err != nil {
		return model.Notification{}, err
	}

	email, err := optionalString(payload.FlatEmail, constants.MailchimpDataEmailField)
	if err != nil {
		return model.Notification{}, err
	}

	if email == "" {
		if data, ok := payload.Data.(map[string]any); ok {
			email, err = optionalString(data["email"], "data.email")
			if err != nil {
				return model.Notification{}, err
			}
		}
	}

	return model.NewNotification(action, email), nil
}

// optionalString treats an absent or null field as empty and rejects non-string values
func optionalString(value any, field string) (string, error) {
	if value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", errors.NewValidation(field + " must be a string")
	}
	return s, nil
}
