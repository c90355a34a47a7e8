package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated principal.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	// WalletAddress is the principal's ledger identity. Optional: users
	// without one still get local grants, the ledger mirror is just skipped.
	WalletAddress string
	Role          UserRole
	CreatedAt     time.Time
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
