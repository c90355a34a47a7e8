package domain

import (
	"time"

	"github.com/google/uuid"
)

// Action is the kind of operation recorded in the activity log.
type Action string

const (
	ActionUpload   Action = "upload"
	ActionDownload Action = "download"
	ActionShare    Action = "share"
	ActionRevoke   Action = "revoke"
	ActionView     Action = "view"
	ActionDelete   Action = "delete"
)

func (a Action) String() string { return string(a) }

func (a Action) IsValid() bool {
	switch a {
	case ActionUpload, ActionDownload, ActionShare, ActionRevoke, ActionView, ActionDelete:
		return true
	}
	return false
}

// ActivityDetails is the closed set of keys an activity entry may carry.
// Which fields are set depends on the action: share sets SharedWith and
// ExpiresAt, revoke sets RevokedFrom, upload sets FileSize.
type ActivityDetails struct {
	SharedWith  *uuid.UUID `json:"shared_with,omitempty"`
	RevokedFrom *uuid.UUID `json:"revoked_from,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	FileSize    *int64     `json:"file_size,omitempty"`
}

// IsZero reports whether no detail field is set.
func (d ActivityDetails) IsZero() bool {
	return d.SharedWith == nil && d.RevokedFrom == nil && d.ExpiresAt == nil && d.FileSize == nil
}

// ActivityEntry is one append-only audit record. Entries are never mutated
// or deleted, and survive deletion of the document they reference.
type ActivityEntry struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	DocumentID *uuid.UUID
	Action     Action
	IPAddress  string
	UserAgent  string
	Details    ActivityDetails
	CreatedAt  time.Time
}
