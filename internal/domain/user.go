package domain

import (
	"context"
	"time"
)

// AccountStatus is the lifecycle state of a user account.
type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
)

// User represents a domain user object. The ID is the subject identifier
// asserted by the external identity provider; the row is created on first
// verified login and updated on every subsequent one.
type User struct {
	ID            string
	Email         string
	Phone         string
	AccountStatus AccountStatus
	QuotaLimit    int
	QuotaUsed     int
	CreatedAt     time.Time
	LastLogin     time.Time
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	// UpsertUser inserts the user on first login and refreshes email, phone
	// and last_login on subsequent ones. Returns the stored profile row.
	UpsertUser(ctx context.Context, userID, email, phone string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
}
