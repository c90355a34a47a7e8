package domain

import (
	"time"

	"github.com/google/uuid"
)

// Share duration bounds, in days. Every grant carries an expiry; the cap
// keeps sharing windows to a practical review period instead of letting
// unbounded grants accumulate.
const (
	MinShareDays     = 1
	MaxShareDays     = 90
	DefaultShareDays = 7
)

// Document is an encrypted file registered in the vault. The ciphertext
// lives in the content network under ContentAddress; the symmetric key that
// decrypts it is stored with the record and released only to the owner.
type Document struct {
	ID             uuid.UUID
	Title          string
	Description    string
	ContentAddress string
	// EncryptionKey is the raw symmetric key for the document's ciphertext.
	// It must never cross the service boundary for anyone but the owner.
	EncryptionKey []byte
	OwnerID       uuid.UUID
	// LedgerTxHash references the transaction that registered the document
	// on the ledger. Empty when registration failed; the document is still
	// valid, the mirror just lags.
	LedgerTxHash string
	IsPublic     bool
	FileType     string
	FileSize     int64
	AccessList   []AccessGrant
	CreatedAt    time.Time
}

// AccessGrant is a time-bounded permission for one principal to read one
// document. A document holds at most one grant per principal; re-sharing
// replaces the existing grant.
type AccessGrant struct {
	DocumentID uuid.UUID
	UserID     uuid.UUID
	GrantedAt  time.Time
	ExpiresAt  time.Time
}

// Active reports whether the grant is valid at the given instant.
func (g AccessGrant) Active(now time.Time) bool {
	return now.Before(g.ExpiresAt)
}

// AccessDecision is the branch of the access rule that applied.
type AccessDecision string

const (
	AccessOwner   AccessDecision = "OWNER"
	AccessGranted AccessDecision = "GRANTED"
	AccessPublic  AccessDecision = "PUBLIC"
	AccessDenied  AccessDecision = "DENIED"
)

func (d AccessDecision) String() string { return string(d) }

// Allows reports whether the decision permits reading the document.
func (d AccessDecision) Allows() bool { return d != AccessDenied }

// AccessFor evaluates the access rule for a principal at the given instant:
// owner, else active grant, else public, else denied. Expiry is checked
// lazily here, so expired grants may still be present in AccessList.
func (d *Document) AccessFor(userID uuid.UUID, now time.Time) AccessDecision {
	if d.OwnerID == userID {
		return AccessOwner
	}
	for _, g := range d.AccessList {
		if g.UserID == userID && g.Active(now) {
			return AccessGranted
		}
	}
	if d.IsPublic {
		return AccessPublic
	}
	return AccessDenied
}

// GrantFor returns the grant held by the given principal, if any, regardless
// of expiry.
func (d *Document) GrantFor(userID uuid.UUID) (AccessGrant, bool) {
	for _, g := range d.AccessList {
		if g.UserID == userID {
			return g, true
		}
	}
	return AccessGrant{}, false
}

// ValidShareDays reports whether the duration is inside the allowed window.
func ValidShareDays(days int) bool {
	return days >= MinShareDays && days <= MaxShareDays
}
