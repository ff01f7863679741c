// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// NATS subject constants for message publishing
const (
	// AccessGrantedSubject is published after a subscriber was granted access on every drive
	AccessGrantedSubject = "lfx.drive-sync.access_granted"
	// AccessRevokedSubject is published after a subscriber's access was removed from every drive
	AccessRevokedSubject = "lfx.drive-sync.access_revoked"
)
