// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"fmt"
)

// Auth represents a failure to obtain a bearer token for the Drive API.
type Auth struct {
	base
}

// Error returns the error message for Auth.
func (a Auth) Error() string {
	return a.error()
}

// NewAuth creates a new Auth error with the provided message.
func NewAuth(message string, err ...error) Auth {
	return Auth{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// IDResolutionReason names why an email could not be resolved to a permission id.
type IDResolutionReason string

// Reasons for IDResolution errors
const (
	// IDResolutionMissingField means the lookup response had no "id" field
	IDResolutionMissingField IDResolutionReason = "missing_field"
	// IDResolutionWrongType means the "id" field was present but not a string
	IDResolutionWrongType IDResolutionReason = "wrong_type"
	// IDResolutionUnparseableBody means the lookup response was not a JSON object
	IDResolutionUnparseableBody IDResolutionReason = "unparseable_body"
	// IDResolutionLookupFailed means the lookup call itself did not succeed
	IDResolutionLookupFailed IDResolutionReason = "lookup_failed"
)

// IDResolution represents a failure translating an email to a Drive permission id.
type IDResolution struct {
	base
	Email  string
	Reason IDResolutionReason
}

// Error returns the error message for IDResolution.
func (r IDResolution) Error() string {
	return r.error()
}

// NewIDResolution creates a new IDResolution error.
func NewIDResolution(email string, reason IDResolutionReason, detail string, err ...error) IDResolution {
	return IDResolution{
		base: base{
			message: fmt.Sprintf("permission id resolution failed (%s): %s", reason, detail),
			err:     errors.Join(err...),
		},
		Email:  email,
		Reason: reason,
	}
}

// RemoteAPI represents a non-success response from a Drive permission create or delete call.
type RemoteAPI struct {
	base
	Operation  string
	ResourceID string
	Email      string
	StatusCode int
}

// Error returns the error message for RemoteAPI.
func (r RemoteAPI) Error() string {
	return r.error()
}

// NewRemoteAPI creates a new RemoteAPI error tagged with the resource and subject.
// statusCode is zero when no response was received.
func NewRemoteAPI(operation, resourceID, email string, statusCode int, err ...error) RemoteAPI {
	message := fmt.Sprintf("drive %s failed on resource %s", operation, resourceID)
	if statusCode != 0 {
		message = fmt.Sprintf("%s (status %d)", message, statusCode)
	}
	return RemoteAPI{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
		Operation:  operation,
		ResourceID: resourceID,
		Email:      email,
		StatusCode: statusCode,
	}
}
