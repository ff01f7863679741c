// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "time"

// AccessToken is a bearer credential for the Drive API
type AccessToken struct {
	Value  string
	Type   string
	Expiry time.Time
}

// AuthorizationHeader returns the value for the Authorization header
func (t AccessToken) AuthorizationHeader() string {
	tokenType := t.Type
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return tokenType + " " + t.Value
}
