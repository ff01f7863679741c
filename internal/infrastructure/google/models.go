// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package google

// PermissionCreateRequest is the body of a Drive v3 permissions.create call
type PermissionCreateRequest struct {
	Role         string `json:"role"`
	Type         string `json:"type"`
	EmailAddress string `json:"emailAddress"`
}

// permissionQuery holds the query parameters shared by create and delete calls
type permissionQuery struct {
	SupportsAllDrives bool   `url:"supportsAllDrives"`
	Alt               string `url:"alt,omitempty"`
}
