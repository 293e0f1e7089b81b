package keepimport

import (
	"context"
	"time"
)

// MaxUserIDLen is the maximum length of an external user identifier.
const MaxUserIDLen = 255

// User represents an owner of imported notes. Users are keyed by the
// external identifier supplied with each import request; no identity
// validation happens beyond existence-or-create.
type User struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"externalId"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Validate returns an error if the user contains invalid fields.
func (u *User) Validate() error {
	if u.ExternalID == "" {
		return Errorf(EINVALID, "user external ID required")
	}
	if len(u.ExternalID) > MaxUserIDLen {
		return Errorf(EINVALID, "user external ID exceeds %d characters", MaxUserIDLen)
	}
	return nil
}

// UserService represents a service for managing users.
type UserService interface {
	// CreateUser creates a new user.
	// Returns ECONFLICT if the external ID is already taken.
	CreateUser(ctx context.Context, user *User) error

	// FindUserByExternalID retrieves a user by external identifier.
	// Returns ENOTFOUND if user does not exist.
	FindUserByExternalID(ctx context.Context, externalID string) (*User, error)

	// FindOrCreateUser retrieves the user with the given external identifier,
	// lazily creating one with a synthetic placeholder email if none exists.
	FindOrCreateUser(ctx context.Context, externalID string) (*User, error)

	// DeleteUser permanently removes a user and all associated notes.
	// Returns ENOTFOUND if user does not exist.
	DeleteUser(ctx context.Context, id string) error
}
