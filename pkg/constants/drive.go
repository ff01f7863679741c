// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Google Drive API constants
const (
	// DriveScope is the single OAuth scope requested for the service account
	DriveScope = "https://www.googleapis.com/auth/drive"

	// DriveAPIBaseURL is the default Google APIs host
	DriveAPIBaseURL = "https://www.googleapis.com"

	// DrivePermissionRoleReader is the role granted to subscribers
	DrivePermissionRoleReader = "reader"
	// DrivePermissionTypeUser is the grantee type for subscribers
	DrivePermissionTypeUser = "user"
)

// Permission operations, used in errors, metrics and events
const (
	OperationGrant  = "grant"
	OperationRevoke = "revoke"
	OperationLookup = "lookup"
)
