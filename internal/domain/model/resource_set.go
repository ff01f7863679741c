// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"strings"

	"github.com/linuxfoundation/lfx-v2-drive-sync-service/pkg/errors"
)

// TargetResourceSet is the ordered, non-empty set of Drive folder or shared drive ids
// that every grant and revoke fans out across. It is fixed at startup.
type TargetResourceSet struct {
	ids []string
}

// NewTargetResourceSet trims and de-duplicates ids, preserving first-seen order
func NewTargetResourceSet(ids []string) (TargetResourceSet, error) {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	if len(unique) == 0 {
		return TargetResourceSet{}, errors.NewValidation("at least one drive id is required")
	}

	return TargetResourceSet{ids: unique}, nil
}

// IDs returns a copy of the resource ids in order
func (s TargetResourceSet) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Len returns the number of resources
func (s TargetResourceSet) Len() int {
	return len(s.ids)
}
