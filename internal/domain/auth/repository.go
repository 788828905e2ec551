// Package auth provides authentication and authorization domain logic.
package auth

import (
	"context"
)

// UserRepository defines user storage operations.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves user by ID.
	GetByID(ctx context.Context, userID int64) (*User, error)

	// GetByUsername retrieves user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// List retrieves all users ordered by username.
	List(ctx context.Context) ([]User, error)

	// Exists checks if username or email is already taken.
	Exists(ctx context.Context, username, email string) (bool, error)
}
