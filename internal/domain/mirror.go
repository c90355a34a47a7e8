package domain

import (
	"time"

	"github.com/google/uuid"
)

// MirrorOp is the kind of ledger write queued for reconciliation.
type MirrorOp string

const (
	MirrorOpRegister MirrorOp = "register"
	MirrorOpGrant    MirrorOp = "grant"
	MirrorOpRevoke   MirrorOp = "revoke"
)

func (o MirrorOp) String() string { return string(o) }

func (o MirrorOp) IsValid() bool {
	switch o {
	case MirrorOpRegister, MirrorOpGrant, MirrorOpRevoke:
		return true
	}
	return false
}

// MirrorTask is a ledger write that failed inline and awaits retry by the
// reconciliation worker. Tasks are advisory: dropping one after the retry
// budget is exhausted leaves the ledger lagging, which the design accepts.
type MirrorTask struct {
	ID             uuid.UUID
	DocumentID     uuid.UUID
	ContentAddress string
	Op             MirrorOp
	WalletAddress  string
	ExpiresAt      *time.Time
	Attempts       int
	NextAttemptAt  time.Time
	CreatedAt      time.Time
}
